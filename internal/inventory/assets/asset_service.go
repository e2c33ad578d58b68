package assets

import (
	"context"
	"fmt"
	"time"

	"inventory/internal/core/metrics"
	"inventory/pkg/auditlog"
	"inventory/pkg/metadata"
	"inventory/pkg/models"
	"inventory/pkg/notify"

	"go.uber.org/zap"
)

type AuditLogger interface {
	Log(ctx context.Context, action string, data interface{}, item auditlog.Auditable)
}

// AssetService owns the active/trash lifecycle of assets on top of a Backend. Every
// mutation is logged, counted and reported to the notifier; failures are returned to
// the caller unchanged.
type AssetService struct {
	backend  Backend
	auditLog AuditLogger
	notifier notify.Notifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewAssetService(backend Backend, auditLog AuditLogger, notifier notify.Notifier, logger *zap.Logger) *AssetService {
	if notifier == nil {
		notifier = notify.Nop()
	}
	return &AssetService{
		backend:  backend,
		auditLog: auditLog,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// ListActive never fails: a backend error is reported and an empty list returned.
func (s *AssetService) ListActive(ctx context.Context) []models.Asset {
	assets, err := s.backend.ListAssets(ctx)
	metrics.ObserveStoreOperation("list_active", err)
	if err != nil {
		s.logger.Error("Error loading assets", zap.Error(err))
		s.notifier.Notify(notify.Failure("Error loading inventory", "There was a problem loading your inventory data."))
		return []models.Asset{}
	}
	if assets == nil {
		return []models.Asset{}
	}
	return assets
}

// LoadActive is ListActive for callers that must not mistake a backend failure for an
// empty inventory. The error is returned instead of reported.
func (s *AssetService) LoadActive(ctx context.Context) ([]models.Asset, error) {
	assets, err := s.backend.ListAssets(ctx)
	metrics.ObserveStoreOperation("list_active", err)
	if err != nil {
		return nil, err
	}
	if assets == nil {
		return []models.Asset{}, nil
	}
	return assets, nil
}

func (s *AssetService) ListTrashed(ctx context.Context) []models.TrashedAsset {
	trashed, err := s.backend.ListTrashed(ctx)
	metrics.ObserveStoreOperation("list_trashed", err)
	if err != nil {
		s.logger.Error("Error loading trash", zap.Error(err))
		s.notifier.Notify(notify.Failure("Error loading trash", "There was a problem loading deleted assets."))
		return []models.TrashedAsset{}
	}
	if trashed == nil {
		return []models.TrashedAsset{}
	}
	return trashed
}

func (s *AssetService) Get(ctx context.Context, id string) (*models.Asset, error) {
	asset, err := s.backend.FindAsset(ctx, id)
	metrics.ObserveStoreOperation("get", err)
	if err != nil {
		s.logger.Debug("Unable to get asset", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return asset, nil
}

func (s *AssetService) Create(ctx context.Context, req models.AssetRequest) (*models.Asset, error) {
	asset, err := NewAssetFromRequest(req)
	if err != nil {
		return nil, s.fail("create", "", err, "Error adding asset", "The asset could not be added.")
	}

	asset.ID = metadata.NewID()
	asset.LastUpdated = s.today()

	if err := s.backend.InsertAsset(ctx, asset); err != nil {
		return nil, s.fail("create", asset.ID, err, "Error adding asset", "The asset could not be added.")
	}

	s.succeed(ctx, "create", &asset, map[string]interface{}{
		"name": asset.Name,
		"type": asset.Type,
		"msg":  "Asset created successfully",
	}, "Asset added", fmt.Sprintf("%s has been added to the inventory.", asset.Name))

	return &asset, nil
}

// Update replaces every field of the active asset id except the id itself.
// lastUpdated is always re-stamped.
func (s *AssetService) Update(ctx context.Context, id string, req models.AssetRequest) (*models.Asset, error) {
	asset, err := NewAssetFromRequest(req)
	if err != nil {
		return nil, s.fail("update", id, err, "Error updating asset", "The asset could not be updated.")
	}

	asset.ID = id
	asset.LastUpdated = s.today()

	if err := s.backend.UpdateAsset(ctx, asset); err != nil {
		return nil, s.fail("update", id, err, "Error updating asset", "The asset could not be updated.")
	}

	s.succeed(ctx, "update", &asset, map[string]interface{}{
		"name":   asset.Name,
		"status": asset.Status,
		"msg":    "Asset updated successfully",
	}, "Asset updated", fmt.Sprintf("%s has been updated.", asset.Name))

	return &asset, nil
}

func (s *AssetService) SoftDelete(ctx context.Context, id string) error {
	asset, err := s.backend.FindAsset(ctx, id)
	if err != nil {
		return s.fail("trash", id, err, "Error deleting asset", "The asset could not be moved to the trash.")
	}

	trashed := models.TrashedAsset{Asset: *asset, DeletedAt: s.now().UTC()}
	if err := s.backend.MoveToTrash(ctx, trashed); err != nil {
		return s.fail("trash", id, err, "Error deleting asset", "The asset could not be moved to the trash.")
	}

	s.succeed(ctx, "trash", &trashed, map[string]interface{}{
		"deleted_at": trashed.DeletedAt,
		"msg":        "Asset moved to trash",
	}, "Asset moved to trash", fmt.Sprintf("%s can be restored from the trash.", asset.Name))

	return nil
}

func (s *AssetService) Restore(ctx context.Context, id string) error {
	trashed, err := s.backend.FindTrashed(ctx, id)
	if err != nil {
		return s.fail("restore", id, err, "Error restoring asset", "The asset could not be restored.")
	}

	asset := trashed.Asset
	asset.LastUpdated = s.today()
	if err := s.backend.RestoreFromTrash(ctx, asset); err != nil {
		return s.fail("restore", id, err, "Error restoring asset", "The asset could not be restored.")
	}

	s.succeed(ctx, "restore", &asset, map[string]interface{}{
		"msg": "Asset restored from trash",
	}, "Asset restored", fmt.Sprintf("%s is back in the inventory.", asset.Name))

	return nil
}

// Purge permanently removes id from the trash. Purging an id that is not in the trash
// is not an error.
func (s *AssetService) Purge(ctx context.Context, id string) error {
	if err := s.backend.DeleteTrashed(ctx, id); err != nil {
		return s.fail("purge", id, err, "Error deleting asset", "The asset could not be permanently deleted.")
	}

	s.succeed(ctx, "purge", &models.Asset{ID: id}, map[string]interface{}{
		"msg": "Asset permanently deleted",
	}, "Asset permanently deleted", "The asset has been removed from the trash.")

	return nil
}

func (s *AssetService) today() string {
	return metadata.FormatDate(s.now())
}

func (s *AssetService) fail(op, id string, err error, title, description string) error {
	metrics.ObserveStoreOperation(op, err)
	s.logger.Error("Asset store operation failed",
		zap.String("operation", op),
		zap.String("id", id),
		zap.Error(err),
	)
	s.notifier.Notify(notify.Failure(title, description))
	return err
}

func (s *AssetService) succeed(ctx context.Context, action string, item auditlog.Auditable, data map[string]interface{}, title, description string) {
	metrics.ObserveStoreOperation(action, nil)
	if s.auditLog != nil {
		s.auditLog.Log(ctx, action, data, item)
	}
	s.notifier.Notify(notify.Success(title, description))
}
