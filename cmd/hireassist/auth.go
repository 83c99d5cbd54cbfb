package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/hiring-assistant/internal/session"
	"github.com/jonathan/hiring-assistant/internal/workspace"
	"github.com/spf13/cobra"
)

func newLoginCmd(opts *rootOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			return a.submitAuth(cmd, workspace.ModeLogin, workspace.Credentials{Email: email, Password: password})
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email (required)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newRegisterCmd(opts *rootOptions) *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			return a.submitAuth(cmd, workspace.ModeRegister, workspace.Credentials{Email: email, Password: password, Name: name})
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email (required)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Full name (required)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// submitAuth runs the auth form in the requested mode, prompting for a
// missing password.
func (a *app) submitAuth(cmd *cobra.Command, mode workspace.Mode, creds workspace.Credentials) error {
	if creds.Password == "" {
		pw, err := a.prompt("Password: ")
		if err != nil {
			return err
		}
		creds.Password = pw
	}

	if a.auth.Mode() != mode {
		a.auth.Toggle()
	}
	if err := a.auth.Submit(cmd.Context(), creds); err != nil {
		switch {
		case errors.Is(err, workspace.ErrSessionNotSaved):
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		case a.auth.Error() == "" || errors.Is(err, workspace.ErrSubmitInFlight):
			return err
		default:
			return errors.New(a.auth.Error())
		}
	}

	if mode == workspace.ModeRegister {
		a.printer.PrintNotice(a.auth.Notice())
		return nil
	}
	if cur := a.session.Current(); cur != nil {
		a.printer.PrintNotice(fmt.Sprintf("Welcome, %s", cur.Name))
	}
	return nil
}

func newLogoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			if err := a.session.Logout(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			a.printer.PrintNotice("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			return a.printWhoami(time.Now())
		},
	}
}

func (a *app) printWhoami(now time.Time) error {
	cur := a.session.Current()
	if cur == nil {
		return workspace.ErrNotAuthenticated
	}

	_, _ = fmt.Fprintf(a.out, "Name:   %s\n", cur.Name)
	_, _ = fmt.Fprintf(a.out, "Server: %s\n", a.client.BaseURL())

	info, err := session.InspectToken(cur.Token)
	if err != nil {
		_, _ = fmt.Fprintf(a.out, "Token:  opaque\n")
		return nil
	}
	if info.UserID != "" {
		_, _ = fmt.Fprintf(a.out, "User:   %s\n", info.UserID)
	}
	if !info.ExpiresAt.IsZero() {
		state := "valid"
		if info.Expired(now) {
			state = "expired"
		}
		_, _ = fmt.Fprintf(a.out, "Token:  %s until %s\n", state, info.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}
