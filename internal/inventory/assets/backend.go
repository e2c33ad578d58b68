package assets

import (
	"context"

	"inventory/pkg/models"
)

// Backend is the persistence contract the asset store depends on: two logical tables,
// assets and trashed_assets, with ordered reads, a count and atomic moves between them.
//
// FindAsset, FindTrashed, UpdateAsset, MoveToTrash and RestoreFromTrash return an error
// wrapping custom_error.ErrNotFound when the referenced row does not exist. Every other
// failure is reported as a custom_error.BackendError.
type Backend interface {
	ListAssets(ctx context.Context) ([]models.Asset, error)
	ListTrashed(ctx context.Context) ([]models.TrashedAsset, error)
	CountAssets(ctx context.Context) (int, error)
	FindAsset(ctx context.Context, id string) (*models.Asset, error)
	FindTrashed(ctx context.Context, id string) (*models.TrashedAsset, error)
	InsertAsset(ctx context.Context, asset models.Asset) error
	UpdateAsset(ctx context.Context, asset models.Asset) error
	// MoveToTrash removes the active row and stores the trashed record in one step.
	MoveToTrash(ctx context.Context, trashed models.TrashedAsset) error
	// RestoreFromTrash removes the trashed row and stores asset as active in one step.
	RestoreFromTrash(ctx context.Context, asset models.Asset) error
	// DeleteTrashed is a no-op when id is not in the trash.
	DeleteTrashed(ctx context.Context, id string) error
}
