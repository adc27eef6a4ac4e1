package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/henrytill/simplenote-go/internal"
	"github.com/henrytill/simplenote-go/internal/client/simplenote"
	"github.com/henrytill/simplenote-go/internal/config"
	"github.com/henrytill/simplenote-go/internal/formatter"
	"github.com/henrytill/simplenote-go/internal/logger"
)

type cli struct {
	in           io.Reader
	out          io.Writer
	errOut       io.Writer
	readPassword func(prompt string) (string, error)

	configPath string
	output     internal.Format

	cfg       *config.Config
	log       *slog.Logger
	client    *simplenote.Client
	formatter formatter.Formatter
}

func newCLI() *cli {
	return &cli{
		in:           os.Stdin,
		out:          os.Stdout,
		errOut:       os.Stderr,
		readPassword: promptPassword,
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "simplenote",
		Short: "Simplenote API client for exercising the API",
		Long: `Simplenote API client for exercising the API.

Credentials are read from SIMPLENOTE_EMAIL and SIMPLENOTE_PASSWORD, a .env
file in the working directory, or the config file
($XDG_CONFIG_HOME/simplenote/config.yaml):

  email: you@example.com
  password: secret

When no password is configured it is prompted for on the terminal.`,
		Example: `  simplenote list
  simplenote get agtzaW1wbGUtbm90ZXINCxIETm90ZRiJ
  echo "hello" | simplenote save
  simplenote search --results 5 groceries -o yaml`,
		PersistentPreRunE: c.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	root.SetIn(c.in)
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/simplenote/config.yaml)")
	flags.String("base-url", "", "API base URL")
	flags.String("email", "", "Account email")
	flags.VarP(&c.output, "output", "o", "Output format (json, yaml, text, html)")
	flags.Duration("timeout", 0, "Request timeout (0 means none)")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-format", "", "Log format (text, json)")
	flags.String("query-encoding", "", "Search term encoding (double, single)")

	root.AddCommand(
		newLoginCmd(c),
		newListCmd(c),
		newGetCmd(c),
		newSaveCmd(c),
		newDeleteCmd(c),
		newSearchCmd(c),
		newVersionCmd(c),
	)

	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath, cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	c.cfg = cfg

	c.log = logger.New(cfg.SlogLevel(), cfg.LogFormat, c.errOut)
	if cfg.File != "" {
		c.log.Debug("loaded config file", "path", cfg.File)
	}

	format, err := internal.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}
	c.formatter, err = internal.NewFormatter(format)
	if err != nil {
		return err
	}

	encoding := simplenote.DoubleEncode
	if cfg.QueryEncoding == simplenote.SingleEncode.String() {
		encoding = simplenote.SingleEncode
	}

	c.client = simplenote.NewClient(
		simplenote.WithBaseURL(cfg.BaseURL),
		simplenote.WithTimeout(cfg.Timeout),
		simplenote.WithLogger(c.log),
		simplenote.WithQueryEncoding(encoding),
	)

	return nil
}

func newVersionCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(c.out, "simplenote %s\n", Version)
		},
	}
}
