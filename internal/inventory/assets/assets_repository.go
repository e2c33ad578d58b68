package assets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inventory/internal/repository"
	custom_error "inventory/pkg/errors"
	"inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

const (
	assetsTable  = "assets"
	trashedTable = "trashed_assets"
)

var assetColumns = []string{
	"id",
	"name",
	"type",
	"model",
	"serial_number",
	"purchase_date",
	"status",
	"assigned_to",
	"notes",
	"last_updated",
}

// AssetsRepository is the PostgreSQL backend.
type AssetsRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AssetsRepository {
	return &AssetsRepository{
		repository: r,
	}
}

func (r *AssetsRepository) ListAssets(ctx context.Context) ([]models.Asset, error) {
	var flatAssets []models.FlatAssetRecord
	if err := r.listAssetsQuery().Executor().ScanStructsContext(ctx, &flatAssets); err != nil {
		return nil, custom_error.NewBackendError("list assets", fmt.Errorf("unable to select assets from database: %w", err))
	}

	assets := make([]models.Asset, 0, len(flatAssets))
	for _, flatAsset := range flatAssets {
		assets = append(assets, flatAsset.TransformToAsset())
	}

	return assets, nil
}

func (r *AssetsRepository) ListTrashed(ctx context.Context) ([]models.TrashedAsset, error) {
	var flatAssets []models.FlatTrashedAssetRecord
	if err := r.listTrashedQuery().Executor().ScanStructsContext(ctx, &flatAssets); err != nil {
		return nil, custom_error.NewBackendError("list trashed assets", fmt.Errorf("unable to select trashed assets from database: %w", err))
	}

	trashed := make([]models.TrashedAsset, 0, len(flatAssets))
	for _, flatAsset := range flatAssets {
		trashed = append(trashed, flatAsset.TransformToTrashedAsset())
	}

	return trashed, nil
}

func (r *AssetsRepository) CountAssets(ctx context.Context) (int, error) {
	var count int
	if _, err := r.countAssetsQuery().Executor().ScanValContext(ctx, &count); err != nil {
		return 0, custom_error.NewBackendError("count assets", fmt.Errorf("failed to count assets: %w", err))
	}

	return count, nil
}

func (r *AssetsRepository) FindAsset(ctx context.Context, id string) (*models.Asset, error) {
	var flatAsset models.FlatAssetRecord
	found, err := r.findAssetQuery(id).Executor().ScanStructContext(ctx, &flatAsset)
	if err != nil {
		return nil, custom_error.NewBackendError("find asset", fmt.Errorf("unable to select asset from database: %w", err))
	}
	if !found {
		return nil, fmt.Errorf("asset %s: %w", id, custom_error.ErrNotFound)
	}

	asset := flatAsset.TransformToAsset()
	return &asset, nil
}

func (r *AssetsRepository) FindTrashed(ctx context.Context, id string) (*models.TrashedAsset, error) {
	var flatAsset models.FlatTrashedAssetRecord
	found, err := r.findTrashedQuery(id).Executor().ScanStructContext(ctx, &flatAsset)
	if err != nil {
		return nil, custom_error.NewBackendError("find trashed asset", fmt.Errorf("unable to select trashed asset from database: %w", err))
	}
	if !found {
		return nil, fmt.Errorf("trashed asset %s: %w", id, custom_error.ErrNotFound)
	}

	trashed := flatAsset.TransformToTrashedAsset()
	return &trashed, nil
}

// InsertAsset adds asset to the active set. An id already present in either set is a
// unique violation.
func (r *AssetsRepository) InsertAsset(ctx context.Context, asset models.Asset) error {
	result, err := r.insertAssetQuery(asset).Executor().ExecContext(ctx)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return custom_error.WrapDBError("Duplicate asset id "+asset.ID, string(pqErr.Code))
		}
		return custom_error.NewBackendError("insert asset", fmt.Errorf("failed to insert asset record: %w", err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return custom_error.NewBackendError("insert asset", fmt.Errorf("failed to get rows affected: %w", err))
	}
	if rowsAffected == 0 {
		return custom_error.WrapDBError("Duplicate asset id "+asset.ID+" in trash", "23505")
	}

	return nil
}

func (r *AssetsRepository) UpdateAsset(ctx context.Context, asset models.Asset) error {
	result, err := r.updateAssetQuery(asset).Executor().ExecContext(ctx)
	if err != nil {
		return custom_error.NewBackendError("update asset", fmt.Errorf("failed to update asset: %w", err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return custom_error.NewBackendError("update asset", fmt.Errorf("failed to get rows affected: %w", err))
	}

	if rowsAffected == 0 {
		return fmt.Errorf("asset %s: %w", asset.ID, custom_error.ErrNotFound)
	}

	return nil
}

func (r *AssetsRepository) MoveToTrash(ctx context.Context, trashed models.TrashedAsset) error {
	err := repository.WithTransaction(ctx, r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		result, err := tx.Insert(trashedTable).
			Cols(trashedColumns()...).
			FromQuery(moveToTrashSource(tx.From(assetsTable), trashed.ID, trashed.DeletedAt)).
			Executor().
			ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to copy asset into trash: %w", err)
		}

		if rowsAffected, err := result.RowsAffected(); err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		} else if rowsAffected == 0 {
			return fmt.Errorf("asset %s: %w", trashed.ID, custom_error.ErrNotFound)
		}

		if _, err := tx.Delete(assetsTable).
			Where(goqu.Ex{"id": trashed.ID}).
			Executor().
			ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to remove asset from active set: %w", err)
		}

		return nil
	})

	return custom_error.NewBackendError("move asset to trash", err)
}

func (r *AssetsRepository) RestoreFromTrash(ctx context.Context, asset models.Asset) error {
	err := repository.WithTransaction(ctx, r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		result, err := tx.Insert(assetsTable).
			Cols(restoredColumns()...).
			FromQuery(restoreSource(tx.From(trashedTable), asset.ID, asset.LastUpdated)).
			Executor().
			ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to copy asset out of trash: %w", err)
		}

		if rowsAffected, err := result.RowsAffected(); err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		} else if rowsAffected == 0 {
			return fmt.Errorf("trashed asset %s: %w", asset.ID, custom_error.ErrNotFound)
		}

		if _, err := tx.Delete(trashedTable).
			Where(goqu.Ex{"id": asset.ID}).
			Executor().
			ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to remove asset from trash: %w", err)
		}

		return nil
	})

	return custom_error.NewBackendError("restore asset", err)
}

func (r *AssetsRepository) DeleteTrashed(ctx context.Context, id string) error {
	if _, err := r.deleteTrashedQuery(id).Executor().ExecContext(ctx); err != nil {
		return custom_error.NewBackendError("purge asset", fmt.Errorf("failed to delete trashed asset: %w", err))
	}

	return nil
}

func (r *AssetsRepository) listAssetsQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		From(assetsTable).
		Select(columns(assetColumns)...).
		Order(goqu.I("last_updated").Desc(), goqu.I("created_at").Asc())
}

func (r *AssetsRepository) listTrashedQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		From(trashedTable).
		Select(columns(append(assetColumns, "deleted_at"))...).
		Order(goqu.I("deleted_at").Desc())
}

func (r *AssetsRepository) countAssetsQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		From(assetsTable).
		Select(goqu.COUNT("*"))
}

func (r *AssetsRepository) findAssetQuery(id string) *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		From(assetsTable).
		Select(columns(assetColumns)...).
		Where(goqu.Ex{"id": id})
}

func (r *AssetsRepository) findTrashedQuery(id string) *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		From(trashedTable).
		Select(columns(append(assetColumns, "deleted_at"))...).
		Where(goqu.Ex{"id": id})
}

// insertAssetQuery inserts through a SELECT so the row is skipped when the id is in
// the trash.
func (r *AssetsRepository) insertAssetQuery(asset models.Asset) *goqu.InsertDataset {
	inTrash := r.repository.GoquDBWrapper.
		From(trashedTable).
		Select(goqu.L("1")).
		Where(goqu.Ex{"id": asset.ID})

	source := r.repository.GoquDBWrapper.
		Select(insertValues(asset)...).
		Where(goqu.L("NOT EXISTS ?", inTrash))

	return r.repository.GoquDBWrapper.
		Insert(assetsTable).
		Cols(columns(assetColumns)...).
		FromQuery(source)
}

func (r *AssetsRepository) updateAssetQuery(asset models.Asset) *goqu.UpdateDataset {
	return r.repository.GoquDBWrapper.
		Update(assetsTable).
		Set(assetRecord(asset)).
		Where(goqu.Ex{"id": asset.ID})
}

func (r *AssetsRepository) deleteTrashedQuery(id string) *goqu.DeleteDataset {
	return r.repository.GoquDBWrapper.
		Delete(trashedTable).
		Where(goqu.Ex{"id": id})
}

// moveToTrashSource selects the active row with created_at preserved and deleted_at set.
func moveToTrashSource(from *goqu.SelectDataset, id string, deletedAt time.Time) *goqu.SelectDataset {
	selected := columns(append(assetColumns, "created_at"))
	selected = append(selected, goqu.Cast(goqu.V(deletedAt.UTC()), "TIMESTAMPTZ"))

	return from.Select(selected...).Where(goqu.Ex{"id": id})
}

// restoreSource selects the trashed row with last_updated replaced by the restore date.
func restoreSource(from *goqu.SelectDataset, id string, lastUpdated string) *goqu.SelectDataset {
	selected := make([]interface{}, 0, len(assetColumns)+1)
	for _, column := range assetColumns {
		if column == "last_updated" {
			selected = append(selected, goqu.Cast(goqu.V(lastUpdated), "DATE"))
			continue
		}
		selected = append(selected, goqu.C(column))
	}
	selected = append(selected, goqu.C("created_at"))

	return from.Select(selected...).Where(goqu.Ex{"id": id})
}

func trashedColumns() []interface{} {
	return columns(append(append([]string{}, assetColumns...), "created_at", "deleted_at"))
}

func restoredColumns() []interface{} {
	return columns(append(append([]string{}, assetColumns...), "created_at"))
}

func assetRecord(asset models.Asset) goqu.Record {
	return goqu.Record{
		"name":          asset.Name,
		"type":          string(asset.Type),
		"model":         nullable(asset.Model),
		"serial_number": nullable(asset.SerialNumber),
		"purchase_date": nullable(asset.PurchaseDate),
		"status":        string(asset.Status),
		"assigned_to":   nullable(asset.AssignedTo),
		"notes":         nullable(asset.Notes),
		"last_updated":  asset.LastUpdated,
	}
}

// insertValues follows the order of assetColumns. Enum and date values are cast since
// a SELECT list does not take its types from the target columns.
func insertValues(asset models.Asset) []interface{} {
	return []interface{}{
		goqu.V(asset.ID),
		goqu.V(asset.Name),
		goqu.Cast(goqu.V(string(asset.Type)), "asset_type"),
		goqu.V(nullable(asset.Model)),
		goqu.V(nullable(asset.SerialNumber)),
		goqu.V(nullable(asset.PurchaseDate)),
		goqu.Cast(goqu.V(string(asset.Status)), "asset_status"),
		goqu.V(nullable(asset.AssignedTo)),
		goqu.V(nullable(asset.Notes)),
		goqu.Cast(goqu.V(asset.LastUpdated), "DATE"),
	}
}

func columns(names []string) []interface{} {
	cols := make([]interface{}, 0, len(names))
	for _, name := range names {
		cols = append(cols, goqu.C(name))
	}
	return cols
}

func nullable(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
