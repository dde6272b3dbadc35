package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/conduit-lang/metamodel/internal/cli/config"
	"github.com/conduit-lang/metamodel/internal/server"
	"github.com/conduit-lang/metamodel/internal/server/cache"
	"github.com/conduit-lang/metamodel/internal/server/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(a *app) *cobra.Command {
	var (
		port  int
		host  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a model over a read-only HTTP API",
		Long: `Build the model and serve introspection reports as JSON.

Routes:
  GET  /healthz                   liveness
  GET  /model                     model summary
  GET  /classifiers[?kind=class]  classifier list
  GET  /classifiers/{name}        classifier report
  GET  /classifiers/{name}/path   resolution path
  GET  /objects, /objects/{name}
  GET  /associations, /associations/{name}
  GET  /find/{name}               classifier, object or association
  POST /reload                    rebuild from the definition file
  GET  /events                    websocket reload notifications

With --watch the model is rebuilt whenever the definition or one of its
imports changes. A failed rebuild keeps the previous model.`,
		Example: `  metamodel serve
  metamodel serve --port 9000 --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.config.Server
			flags := cmd.Flags()
			if flags.Changed("port") {
				cfg.Port = port
			}
			if flags.Changed("host") {
				cfg.Host = host
			}
			if flags.Changed("watch") {
				cfg.Watch = watch
			}

			path := a.config.Model.File
			m, err := a.load(path)
			if err != nil {
				return err
			}

			srvConfig, err := serverConfig(cfg, path)
			if err != nil {
				return err
			}
			srv := server.New(m, srvConfig, a.logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- srv.ListenAndServe() }()

			fmt.Fprintf(cmd.OutOrStdout(), "Serving model '%s' on http://%s\n", m.Name(), cfg.Addr())

			select {
			case err := <-errc:
				srv.Shutdown(context.Background())
				return err
			case <-ctx.Done():
			}

			a.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Warn("shutdown incomplete", zap.Error(err))
				return err
			}
			return <-errc
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (default: server.port from config)")
	cmd.Flags().StringVar(&host, "host", "", "Listen host (default: server.host from config)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Rebuild the model when its definition files change")

	return cmd
}

// serverConfig translates the server section of the configuration
func serverConfig(cfg config.ServerConfig, file string) (server.Config, error) {
	cacheConfig := cache.DefaultConfig()
	cacheConfig.DefaultTTL = cfg.Cache.TTL

	c, err := cache.New(cfg.Cache.Backend, cfg.Cache.RedisURL, cacheConfig)
	if err != nil {
		return server.Config{}, fmt.Errorf("failed to set up response cache: %w", err)
	}

	sc := server.Config{
		Addr:         cfg.Addr(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		File:         file,
		Watch:        cfg.Watch,
		Cache:        c,
		CacheTTL:     cfg.Cache.TTL,
	}
	if cfg.Auth.Secret != "" {
		sc.Tokens = middleware.NewTokens(cfg.Auth.Secret, cfg.Auth.Issuer)
	}
	return sc, nil
}

func newTokenCommand(a *app) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the HTTP API",
		Long: `Sign a token with server.auth.secret. The server only checks tokens
when a secret is configured.`,
		Example: `  METAMODEL_SERVER_AUTH_SECRET=s3cret metamodel token --subject ci --ttl 1h`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			auth := a.config.Server.Auth
			if auth.Secret == "" {
				return errors.New("server.auth.secret is not set")
			}
			token, err := middleware.NewTokens(auth.Secret, auth.Issuer).Generate(subject, ttl)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "metamodel", "Token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")

	return cmd
}
