package commands

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newUsersCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage staff accounts",
	}
	cmd.AddCommand(newUsersAddCommand(e), newUsersPasswdCommand(e))
	return cmd
}

// readPassword takes the flag value, or the first stdin line when
// --password-stdin is set.
func readPassword(cmd *cobra.Command, flagValue string, fromStdin bool) (string, error) {
	if !fromStdin {
		if flagValue == "" {
			return "", errors.New("--password or --password-stdin is required")
		}
		return flagValue, nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newUsersAddCommand(e *env) *cobra.Command {
	var (
		name          string
		email         string
		password      string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Create a staff account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readPassword(cmd, password, passwordStdin)
			if err != nil {
				return err
			}
			rt, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			user, err := rt.Auth.CreateUser(cmd.Context(), args[0], name, email, pw)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), user)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (default: username)")
	cmd.Flags().StringVar(&email, "email", "", "contact e-mail")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	return cmd
}

func newUsersPasswdCommand(e *env) *cobra.Command {
	var (
		password      string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "passwd <username>",
		Short: "Reset a staff account password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readPassword(cmd, password, passwordStdin)
			if err != nil {
				return err
			}
			rt, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.Auth.ResetPassword(cmd.Context(), args[0], pw); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "password updated for %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "new password")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	return cmd
}
