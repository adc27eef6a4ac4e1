package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNoTerminal = errors.New("stdin is not a terminal")

func promptPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errNoTerminal
	}

	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return string(password), nil
}

// login authenticates the client with the configured credentials, prompting
// for the password when none is configured.
func (c *cli) login(ctx context.Context) error {
	if c.cfg.Email == "" {
		return errors.New("no email configured: set SIMPLENOTE_EMAIL, --email or email in the config file")
	}

	password := c.cfg.Password
	if password == "" {
		p, err := c.readPassword(fmt.Sprintf("Password for %s: ", c.cfg.Email))
		if err != nil {
			if errors.Is(err, errNoTerminal) {
				return errors.New("no password configured: set SIMPLENOTE_PASSWORD or password in the config file")
			}
			return err
		}
		password = p
	}

	if err := c.client.Login(ctx, c.cfg.Email, password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	return nil
}

func newLoginCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Check that the configured credentials are accepted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.login(cmd.Context()); err != nil {
				return err
			}

			color.New(color.FgGreen).Fprintf(c.out, "Logged in as %s\n", c.client.Session().Email)
			return nil
		},
	}
}
