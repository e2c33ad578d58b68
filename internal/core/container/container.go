package container

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	auditLogRepo "inventory/internal/auditlog"
	"inventory/internal/core/config"
	"inventory/internal/database"
	"inventory/internal/integrations/googlesheets"
	"inventory/internal/inventory/assets"
	"inventory/internal/inventory/reports"
	"inventory/internal/middleware"
	"inventory/internal/notifications"
	"inventory/internal/rate_limiter"
	"inventory/internal/repository"
	"inventory/internal/users"
	"inventory/pkg/auditlog"
	"inventory/pkg/notify"
	"inventory/pkg/security"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	notificationTTL      = 10 * time.Minute
	notificationCapacity = 50
	loginAttempts        = 10
	loginWindow          = 5 * time.Minute
)

type Container struct {
	Config               *config.Config
	Logger               *zap.Logger
	AssetService         *assets.AssetService
	Session              *security.Session
	Health               *middleware.HealthChecker
	LoginHandler         *security.LoginHandler
	AssetsHandler        *assets.AssetsHandler
	ReportsHandler       *reports.ReportsHandler
	UsersHandler         *users.UsersHandler
	NotificationsHandler *notifications.NotificationsHandler
	// SheetsHandler is nil when the Google Sheets export is not configured.
	SheetsHandler *googlesheets.GoogleSheetsHandler
	// HistoryHandler is only set for the postgres backend.
	HistoryHandler *auditLogRepo.HistoryHandler

	closers []func() error
}

func NewAppContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	backend, auditLog, pinger, err := c.newBackend(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}

	feed := notifications.NewFeed(notificationTTL, notificationCapacity)
	c.onClose(func() error { feed.Stop(); return nil })
	notifier := notify.Multi(notify.NewLogNotifier(logger), feed)

	c.AssetService = assets.NewAssetService(backend, auditLog, notifier, logger)

	passwordHash := cfg.PasswordHash
	if passwordHash == "" {
		if passwordHash, err = security.HashPassword(cfg.Password); err != nil {
			c.Close()
			return nil, fmt.Errorf("hash APP_PASSWORD: %w", err)
		}
	}
	c.Session, err = security.NewSession(passwordHash, []byte(cfg.JWTSecret), cfg.SessionTTL)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.onClose(func() error { c.Session.Close(); return nil })

	limiter := rate_limiter.NewRateLimiter(loginAttempts, loginWindow)
	c.onClose(func() error { limiter.Stop(); return nil })

	c.Health = middleware.NewHealthChecker(cfg.StoreBackend, pinger, "1.0.0", logger)
	c.LoginHandler = security.NewLoginHandler(c.Session, limiter, logger)
	c.AssetsHandler = assets.NewAssetsHandler(c.AssetService)
	c.ReportsHandler = reports.NewReportsHandler(c.AssetService)
	c.UsersHandler = users.NewUsersHandler(c.AssetService)
	c.NotificationsHandler = notifications.NewNotificationsHandler(feed)

	if cfg.Sheets.Enabled() {
		sheetsService, err := googlesheets.NewSheetsService(ctx, []byte(cfg.Sheets.CredentialsJSON))
		if err != nil {
			c.Close()
			return nil, err
		}
		exporter := googlesheets.NewExportService(sheetsService, cfg.Sheets.SpreadsheetID, cfg.Sheets.Range, logger)
		c.SheetsHandler = googlesheets.NewGoogleSheetsHandler(exporter, c.AssetService, notifier, logger)
	} else {
		logger.Info("Google Sheets export disabled")
	}

	return c, nil
}

// newBackend connects the configured store. Only the postgres backend keeps an audit log.
func (c *Container) newBackend(ctx context.Context) (assets.Backend, assets.AuditLogger, middleware.Pinger, error) {
	switch c.Config.StoreBackend {
	case config.BackendPostgres:
		db, err := database.NewPostgresConnection(ctx, c.Config.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		c.onClose(db.Close)
		repo := repository.NewRepository(db)
		auditLogRepository := auditLogRepo.NewRepository(repo)
		auditLog := auditlog.NewAuditLog(auditLogRepository, c.Logger)
		c.HistoryHandler = auditLogRepo.NewHistoryHandler(auditLogRepository, c.Logger)
		return assets.NewRepository(repo), auditLog, pingDB(db), nil

	case config.BackendRedis:
		client, err := database.NewRedisConnection(ctx, c.Config.RedisAddr)
		if err != nil {
			return nil, nil, nil, err
		}
		c.onClose(client.Close)
		return assets.NewRedisBackend(client, c.Config.RedisPrefix), nil, pingRedis(client), nil

	case config.BackendMemory:
		return assets.NewMemoryBackend(), nil, nil, nil
	}

	return nil, nil, nil, fmt.Errorf("unknown store backend %q", c.Config.StoreBackend)
}

func (c *Container) onClose(fn func() error) {
	c.closers = append(c.closers, fn)
}

// Close releases resources in reverse order of acquisition.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

func pingDB(db *sql.DB) middleware.Pinger {
	return middleware.PingerFunc(db.PingContext)
}

func pingRedis(client *redis.Client) middleware.Pinger {
	return middleware.PingerFunc(func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
}
