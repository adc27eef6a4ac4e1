package main

import (
	"github.com/spf13/cobra"

	"github.com/henrytill/simplenote-go/internal/client/simplenote"
)

func newSearchCmd(c *cli) *cobra.Command {
	opts := simplenote.SearchOptions{}

	cmd := &cobra.Command{
		Use:   "search TERM",
		Short: "Search notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.login(cmd.Context()); err != nil {
				return err
			}

			result, err := c.client.Search(cmd.Context(), args[0], &opts)
			if err != nil {
				return err
			}

			return c.formatter.FormatSearch(c.out, result)
		},
	}

	cmd.Flags().IntVar(&opts.MaxResults, "results", simplenote.DefaultSearchResults, "Maximum number of results")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "Offset of the first result")

	return cmd
}
