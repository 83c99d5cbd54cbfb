package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/hiring-assistant/internal/config"
	"github.com/jonathan/hiring-assistant/internal/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type stubServerOptions struct {
	port           int
	requireAuth    bool
	loginRateLimit int
	maxUploadMB    int
}

func newStubServerCmd(opts *rootOptions) *cobra.Command {
	so := &stubServerOptions{}

	cmd := &cobra.Command{
		Use:   "stub-server",
		Short: "Run a local stand-in for the hiring-assistant backend",
		Long: `Start an HTTP server implementing the register, login, extract-skills and
resume upload endpoints with keyword-based analysis. Accounts live in memory.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStubServer(cmd, opts, so)
		},
	}

	cmd.Flags().IntVar(&so.port, "port", 5000, "Port to listen on")
	cmd.Flags().BoolVar(&so.requireAuth, "require-auth", true, "Reject skill and upload requests without a valid token")
	cmd.Flags().IntVar(&so.loginRateLimit, "login-rate-limit", 10, "Login attempts allowed per client per minute (0 disables)")
	cmd.Flags().IntVar(&so.maxUploadMB, "max-upload-mb", config.DefaultMaxFileSizeMB, "Largest accepted resume in MB")
	return cmd
}

func runStubServer(cmd *cobra.Command, opts *rootOptions, so *stubServerOptions) error {
	authCfg, err := config.NewServerAuthConfig()
	if err != nil {
		return fmt.Errorf("failed to create auth config: %w", err)
	}
	if authCfg.GeneratedSecret {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "JWT_SECRET not set; using a random secret, tokens will not survive a restart")
	}

	srv, err := server.New(server.Config{
		Auth:           authCfg,
		RequireAuth:    so.requireAuth,
		MaxUploadBytes: int64(so.maxUploadMB) << 20,
		LoginRateLimit: so.loginRateLimit,
		Verbose:        opts.verbose,
		LogOutput:      cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf(":%d", so.port)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stub backend listening on http://localhost%s\n", addr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Listen(addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		return srv.Shutdown()
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
