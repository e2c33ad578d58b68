package assets

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	custom_error "inventory/pkg/errors"
	"inventory/pkg/metadata"
	"inventory/pkg/models"
)

// MemoryBackend keeps both sets in process memory. Nothing survives a restart.
type MemoryBackend struct {
	mu      sync.RWMutex
	seq     int
	active  map[string]memoryRow
	trashed map[string]memoryTrashRow
}

type memoryRow struct {
	asset models.Asset
	seq   int
}

type memoryTrashRow struct {
	asset models.TrashedAsset
	seq   int
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		active:  make(map[string]memoryRow),
		trashed: make(map[string]memoryTrashRow),
	}
}

func (m *MemoryBackend) ListAssets(_ context.Context) ([]models.Asset, error) {
	m.mu.RLock()
	rows := make([]memoryRow, 0, len(m.active))
	for _, row := range m.active {
		rows = append(rows, row)
	}
	m.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		left, right := parseOrZero(rows[i].asset.LastUpdated), parseOrZero(rows[j].asset.LastUpdated)
		if !left.Equal(right) {
			return left.After(right)
		}
		return rows[i].seq < rows[j].seq
	})

	assets := make([]models.Asset, 0, len(rows))
	for _, row := range rows {
		assets = append(assets, row.asset)
	}
	return assets, nil
}

func (m *MemoryBackend) ListTrashed(_ context.Context) ([]models.TrashedAsset, error) {
	m.mu.RLock()
	rows := make([]memoryTrashRow, 0, len(m.trashed))
	for _, row := range m.trashed {
		rows = append(rows, row)
	}
	m.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].asset.DeletedAt.Equal(rows[j].asset.DeletedAt) {
			return rows[i].asset.DeletedAt.After(rows[j].asset.DeletedAt)
		}
		return rows[i].seq < rows[j].seq
	})

	trashed := make([]models.TrashedAsset, 0, len(rows))
	for _, row := range rows {
		trashed = append(trashed, row.asset)
	}
	return trashed, nil
}

func (m *MemoryBackend) CountAssets(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.active), nil
}

func (m *MemoryBackend) FindAsset(_ context.Context, id string) (*models.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.active[id]
	if !ok {
		return nil, fmt.Errorf("asset %s: %w", id, custom_error.ErrNotFound)
	}
	asset := row.asset
	return &asset, nil
}

func (m *MemoryBackend) FindTrashed(_ context.Context, id string) (*models.TrashedAsset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.trashed[id]
	if !ok {
		return nil, fmt.Errorf("trashed asset %s: %w", id, custom_error.ErrNotFound)
	}
	trashed := row.asset
	return &trashed, nil
}

func (m *MemoryBackend) InsertAsset(_ context.Context, asset models.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.exists(asset.ID) {
		return custom_error.WrapDBError("Duplicate asset id "+asset.ID, "23505")
	}
	m.seq++
	m.active[asset.ID] = memoryRow{asset: asset, seq: m.seq}
	return nil
}

func (m *MemoryBackend) UpdateAsset(_ context.Context, asset models.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.active[asset.ID]
	if !ok {
		return fmt.Errorf("asset %s: %w", asset.ID, custom_error.ErrNotFound)
	}
	row.asset = asset
	m.active[asset.ID] = row
	return nil
}

// MoveToTrash trashes the current active row; only DeletedAt is taken from trashed.
func (m *MemoryBackend) MoveToTrash(_ context.Context, trashed models.TrashedAsset) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.active[trashed.ID]
	if !ok {
		return fmt.Errorf("asset %s: %w", trashed.ID, custom_error.ErrNotFound)
	}
	delete(m.active, trashed.ID)
	m.seq++
	m.trashed[trashed.ID] = memoryTrashRow{
		asset: models.TrashedAsset{Asset: row.asset, DeletedAt: trashed.DeletedAt},
		seq:   m.seq,
	}
	return nil
}

func (m *MemoryBackend) RestoreFromTrash(_ context.Context, asset models.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.trashed[asset.ID]; !ok {
		return fmt.Errorf("trashed asset %s: %w", asset.ID, custom_error.ErrNotFound)
	}
	delete(m.trashed, asset.ID)
	m.seq++
	m.active[asset.ID] = memoryRow{asset: asset, seq: m.seq}
	return nil
}

func (m *MemoryBackend) DeleteTrashed(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.trashed, id)
	return nil
}

func (m *MemoryBackend) exists(id string) bool {
	_, active := m.active[id]
	_, trashed := m.trashed[id]
	return active || trashed
}

// parseOrZero sorts unparsable dates after every real one.
func parseOrZero(value string) time.Time {
	t, err := metadata.ParseDate(value)
	if err != nil {
		return time.Time{}
	}
	return t
}
