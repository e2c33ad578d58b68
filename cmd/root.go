package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventory/internal/core/config"
	"inventory/internal/core/container"
	"inventory/internal/core/logger"
	"inventory/internal/core/routes"
	"inventory/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := logger.NewLogger()
		defer log.Sync()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if cfg.StoreBackend == config.BackendPostgres {
			if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir, log); err != nil {
				return fmt.Errorf("migrate database: %w", err)
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := container.NewAppContainer(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("build application: %w", err)
		}
		defer app.Close()

		if cfg.SeedOnStart {
			if _, err := app.AssetService.SeedIfEmpty(ctx); err != nil {
				log.Warn("Seeding skipped", zap.Error(err))
			}
		}

		gin.SetMode(gin.ReleaseMode)
		router, err := routes.NewRouter(app)
		if err != nil {
			return err
		}
		server := &http.Server{
			Addr:              cfg.AppHost,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("Starting server", zap.String("addr", cfg.AppHost), zap.String("backend", cfg.StoreBackend))
			errCh <- server.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	},
}

var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run migrations manually.",
	Long:  `Applies pending Postgres migrations. The serve command does this on start as well.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := logger.NewLogger()
		defer log.Sync()

		migrationDir, _ := cmd.Flags().GetString("dir")
		if err := database.RunMigrations(os.Getenv("DATABASE_URL"), migrationDir, log); err != nil {
			log.Error("Migration failed", zap.Error(err))
			return fmt.Errorf("migrate database: %w", err)
		}

		return nil
	},
}

var SeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo inventory when the store is empty.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := logger.NewLogger()
		defer log.Sync()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		app, err := container.NewAppContainer(cmd.Context(), cfg, log)
		if err != nil {
			return fmt.Errorf("build application: %w", err)
		}
		defer app.Close()

		inserted, err := app.AssetService.SeedIfEmpty(cmd.Context())
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		log.Info("Seed finished", zap.Int("inserted", inserted))

		return nil
	},
}

func Execute(ctx context.Context) {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: could not read .env file:", err)
	}

	rootCmd := &cobra.Command{
		Use:   "inventory",
		Short: "Tech inventory management service",
	}
	MigrateCmd.Flags().String("dir", "migrations", "Directory containing the migration files")
	rootCmd.AddCommand(ServeCmd, MigrateCmd, SeedCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
