package assets

import (
	"context"
	"os"
	"testing"
	"time"

	custom_error "inventory/pkg/errors"
	"inventory/pkg/metadata"
	"inventory/pkg/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisBackend(t *testing.T) *RedisBackend {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	prefix := "test-" + uuid.NewString()
	backend := NewRedisBackend(client, prefix)
	t.Cleanup(func() {
		client.Del(context.Background(), backend.assetsKey, backend.trashedKey)
		client.Close()
	})
	return backend
}

func TestRedisBackendLifecycle(t *testing.T) {
	backend := newTestRedisBackend(t)
	ctx := context.Background()

	older := models.Asset{ID: "a-1", Name: "Cisco IP Phone", Type: metadata.TypeTelephone, Status: metadata.StatusAssigned, LastUpdated: "2024-01-01"}
	newer := models.Asset{ID: "a-2", Name: "iPhone 13", Type: metadata.TypeMobile, Status: metadata.StatusAvailable, LastUpdated: "2024-02-01"}
	require.NoError(t, backend.InsertAsset(ctx, older))
	require.NoError(t, backend.InsertAsset(ctx, newer))

	count, err := backend.CountAssets(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assets, err := backend.ListAssets(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, "a-2", assets[0].ID)

	assert.Error(t, backend.InsertAsset(ctx, older))

	deletedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, backend.MoveToTrash(ctx, models.TrashedAsset{Asset: older, DeletedAt: deletedAt}))

	_, err = backend.FindAsset(ctx, "a-1")
	assert.ErrorIs(t, err, custom_error.ErrNotFound)
	trashed, err := backend.FindTrashed(ctx, "a-1")
	require.NoError(t, err)
	assert.True(t, deletedAt.Equal(trashed.DeletedAt))

	restored := older
	restored.LastUpdated = "2024-03-02"
	require.NoError(t, backend.RestoreFromTrash(ctx, restored))

	found, err := backend.FindAsset(ctx, "a-1")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02", found.LastUpdated)

	assert.ErrorIs(t, backend.RestoreFromTrash(ctx, restored), custom_error.ErrNotFound)
	assert.NoError(t, backend.DeleteTrashed(ctx, "missing"))
	assert.ErrorIs(t, backend.UpdateAsset(ctx, models.Asset{ID: "missing"}), custom_error.ErrNotFound)
}

func TestRedisBackendMoveToTrashUsesCurrentDocument(t *testing.T) {
	backend := newTestRedisBackend(t)
	ctx := context.Background()

	stale := models.Asset{ID: "a-1", Name: "HP LaserJet", Type: metadata.TypePrinter, Status: metadata.StatusAvailable, LastUpdated: "2024-05-01"}
	require.NoError(t, backend.InsertAsset(ctx, stale))

	current := stale
	current.Status = metadata.StatusMaintenance
	current.LastUpdated = "2024-05-02"
	require.NoError(t, backend.UpdateAsset(ctx, current))

	deletedAt := time.Date(2024, 5, 3, 8, 0, 0, 0, time.UTC)
	require.NoError(t, backend.MoveToTrash(ctx, models.TrashedAsset{Asset: stale, DeletedAt: deletedAt}))

	trashed, err := backend.FindTrashed(ctx, "a-1")
	require.NoError(t, err)
	assert.Equal(t, current, trashed.Asset)
}
