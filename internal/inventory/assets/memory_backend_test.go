package assets

import (
	"context"
	"testing"
	"time"

	custom_error "inventory/pkg/errors"
	"inventory/pkg/metadata"
	"inventory/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackendMoveToTrashUsesCurrentRow(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()

	stale := models.Asset{ID: "a-1", Name: "HP LaserJet", Type: metadata.TypePrinter, Status: metadata.StatusAvailable, LastUpdated: "2024-05-01"}
	require.NoError(t, backend.InsertAsset(ctx, stale))

	current := stale
	current.Status = metadata.StatusMaintenance
	current.Notes = "Needs toner replacement"
	current.LastUpdated = "2024-05-02"
	require.NoError(t, backend.UpdateAsset(ctx, current))

	deletedAt := time.Date(2024, 5, 3, 8, 0, 0, 0, time.UTC)
	require.NoError(t, backend.MoveToTrash(ctx, models.TrashedAsset{Asset: stale, DeletedAt: deletedAt}))

	trashed, err := backend.FindTrashed(ctx, "a-1")
	require.NoError(t, err)
	assert.Equal(t, current, trashed.Asset)
	assert.True(t, deletedAt.Equal(trashed.DeletedAt))
}

func TestMemoryBackendRejectsIDInTrash(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()

	asset := models.Asset{ID: "a-1", Name: "LG UltraWide", Type: metadata.TypeMonitor, Status: metadata.StatusAvailable, LastUpdated: "2024-05-01"}
	require.NoError(t, backend.InsertAsset(ctx, asset))
	require.NoError(t, backend.MoveToTrash(ctx, models.TrashedAsset{Asset: asset, DeletedAt: time.Now()}))

	err := backend.InsertAsset(ctx, asset)
	var duplicate *custom_error.UniqueViolationError
	assert.ErrorAs(t, err, &duplicate)
}
