package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/PrayerWall/controllers"
	"github.com/PrayerWall/initializers"
	"github.com/PrayerWall/seed"
	"github.com/PrayerWall/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}

	rootCmd := &cobra.Command{
		Use:   "prayerwall",
		Short: "PrayerWall - prayer requests, comments and engagement",
		Long: `PrayerWall serves a community prayer wall: members post prayer items with
photos, pray for them, and discuss them in threaded comments with images and
voice notes. Running without a subcommand starts the API server.`,
		SilenceUsage: true,
		RunE:         runServe,
	}

	rootCmd.AddCommand(serveCmd, newSeedCheckCmd())
	return rootCmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	initializers.LoadEnv()

	cfg, err := initializers.LoadConfig()
	if err != nil {
		return err
	}
	logger := initializers.NewLogger(cfg.Log)
	gin.SetMode(cfg.Server.Mode)

	app, err := initializers.NewApp(cfg, logger)
	if err != nil {
		return err
	}

	router := controllers.NewRouter(controllers.NewHandlers(app, cfg.Server.MaxUploadBytes), controllers.RouterOptions{
		Secret:         []byte(cfg.Auth.Secret),
		ModeratorRole:  cfg.Auth.ModeratorRole,
		Metrics:        app.Metrics,
		StaticDir:      cfg.Server.StaticDir,
		PublicRate:     rate.Limit(cfg.RateLimit.PublicRate),
		PublicBurst:    cfg.RateLimit.PublicBurst,
		AuthRate:       rate.Limit(cfg.RateLimit.AuthRate),
		AuthBurst:      cfg.RateLimit.AuthBurst,
		ModeratorRate:  rate.Limit(cfg.RateLimit.ModeratorRate),
		ModeratorBurst: cfg.RateLimit.ModeratorBurst,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", srv.Addr, "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newSeedCheckCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "seed-check",
		Short: "Validate a sample content fixture without starting the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			seeds, err := seed.Load(path)
			if err != nil {
				return err
			}

			registry := store.NewRegistry(store.NewCommentStore(nil), store.RegistryOptions{})
			if err := registry.Restore(seeds); err != nil {
				return fmt.Errorf("seed: restore: %w", err)
			}

			slog.Debug("fixture restored", "path", path)
			fmt.Fprintf(cmd.OutOrStdout(), "%d prayer items, %d categories\n", registry.Len(), len(registry.Categories()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "", "Fixture file (defaults to the built-in sample content)")
	return cmd
}
