package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"index"},
		Short:   "List the note index",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.login(cmd.Context()); err != nil {
				return err
			}

			entries, err := c.client.Index(cmd.Context())
			if err != nil {
				return err
			}

			return c.formatter.FormatIndex(c.out, entries)
		},
	}
}

func newGetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Fetch a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.login(cmd.Context()); err != nil {
				return err
			}

			note, err := c.client.GetNote(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return c.formatter.FormatNote(c.out, note)
		},
	}
}

func newSaveCmd(c *cli) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "save [FILE]",
		Short: "Create or update a note from FILE or stdin",
		Long: `Create or update a note from FILE or stdin.

Without --key a new note is created. The key of the saved note is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := c.readContent(args)
			if err != nil {
				return err
			}

			if err := c.login(cmd.Context()); err != nil {
				return err
			}

			saved, err := c.client.SaveNote(cmd.Context(), content, key)
			if err != nil {
				return err
			}

			return c.formatter.FormatKey(c.out, saved)
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "Key of the note to update")

	return cmd
}

func (c *cli) readContent(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(c.in)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read note file: %w", err)
	}
	return string(data), nil
}

func newDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete KEY",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.login(cmd.Context()); err != nil {
				return err
			}

			if err := c.client.DeleteNote(cmd.Context(), args[0]); err != nil {
				return err
			}

			color.New(color.FgGreen).Fprintf(c.out, "Note %s deleted\n", args[0])
			return nil
		},
	}
}
