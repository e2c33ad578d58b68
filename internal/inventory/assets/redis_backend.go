package assets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	custom_error "inventory/pkg/errors"
	"inventory/pkg/models"

	"github.com/go-redis/redis/v8"
)

// RedisBackend stores each set as a hash of id -> JSON document, the key-value layout a
// browser's local storage would hold.
type RedisBackend struct {
	client     *redis.Client
	assetsKey  string
	trashedKey string
}

func NewRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	return &RedisBackend{
		client:     client,
		assetsKey:  fmt.Sprintf("%s:assets", prefix),
		trashedKey: fmt.Sprintf("%s:trashed_assets", prefix),
	}
}

func (s *RedisBackend) ListAssets(ctx context.Context) ([]models.Asset, error) {
	values, err := s.client.HVals(ctx, s.assetsKey).Result()
	if err != nil {
		return nil, custom_error.NewBackendError("list assets", err)
	}

	assets := make([]models.Asset, 0, len(values))
	for _, value := range values {
		var asset models.Asset
		if err := json.Unmarshal([]byte(value), &asset); err != nil {
			return nil, custom_error.NewBackendError("list assets", fmt.Errorf("corrupt asset document: %w", err))
		}
		assets = append(assets, asset)
	}

	sort.SliceStable(assets, func(i, j int) bool {
		left, right := parseOrZero(assets[i].LastUpdated), parseOrZero(assets[j].LastUpdated)
		if !left.Equal(right) {
			return left.After(right)
		}
		return assets[i].ID < assets[j].ID
	})
	return assets, nil
}

func (s *RedisBackend) ListTrashed(ctx context.Context) ([]models.TrashedAsset, error) {
	values, err := s.client.HVals(ctx, s.trashedKey).Result()
	if err != nil {
		return nil, custom_error.NewBackendError("list trashed assets", err)
	}

	trashed := make([]models.TrashedAsset, 0, len(values))
	for _, value := range values {
		var asset models.TrashedAsset
		if err := json.Unmarshal([]byte(value), &asset); err != nil {
			return nil, custom_error.NewBackendError("list trashed assets", fmt.Errorf("corrupt trashed asset document: %w", err))
		}
		trashed = append(trashed, asset)
	}

	sort.SliceStable(trashed, func(i, j int) bool {
		if !trashed[i].DeletedAt.Equal(trashed[j].DeletedAt) {
			return trashed[i].DeletedAt.After(trashed[j].DeletedAt)
		}
		return trashed[i].ID < trashed[j].ID
	})
	return trashed, nil
}

func (s *RedisBackend) CountAssets(ctx context.Context) (int, error) {
	count, err := s.client.HLen(ctx, s.assetsKey).Result()
	if err != nil {
		return 0, custom_error.NewBackendError("count assets", err)
	}
	return int(count), nil
}

func (s *RedisBackend) FindAsset(ctx context.Context, id string) (*models.Asset, error) {
	var asset models.Asset
	if err := s.get(ctx, s.assetsKey, id, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s *RedisBackend) FindTrashed(ctx context.Context, id string) (*models.TrashedAsset, error) {
	var trashed models.TrashedAsset
	if err := s.get(ctx, s.trashedKey, id, &trashed); err != nil {
		return nil, err
	}
	return &trashed, nil
}

func (s *RedisBackend) InsertAsset(ctx context.Context, asset models.Asset) error {
	data, err := json.Marshal(asset)
	if err != nil {
		return err
	}

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		inTrash, err := tx.HExists(ctx, s.trashedKey, asset.ID).Result()
		if err != nil {
			return err
		}
		if inTrash {
			return custom_error.WrapDBError("Duplicate asset id "+asset.ID, "23505")
		}

		var created *redis.BoolCmd
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			created = pipe.HSetNX(ctx, s.assetsKey, asset.ID, data)
			return nil
		})
		if err != nil {
			return err
		}
		if !created.Val() {
			return custom_error.WrapDBError("Duplicate asset id "+asset.ID, "23505")
		}
		return nil
	}, s.trashedKey)

	var duplicate *custom_error.UniqueViolationError
	if errors.As(err, &duplicate) {
		return err
	}
	return custom_error.NewBackendError("insert asset", err)
}

func (s *RedisBackend) UpdateAsset(ctx context.Context, asset models.Asset) error {
	data, err := json.Marshal(asset)
	if err != nil {
		return err
	}

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		exists, err := tx.HExists(ctx, s.assetsKey, asset.ID).Result()
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("asset %s: %w", asset.ID, custom_error.ErrNotFound)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, s.assetsKey, asset.ID, data)
			return nil
		})
		return err
	}, s.assetsKey)

	return custom_error.NewBackendError("update asset", err)
}

// MoveToTrash trashes the current active document; only DeletedAt is taken from trashed.
func (s *RedisBackend) MoveToTrash(ctx context.Context, trashed models.TrashedAsset) error {
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.HGet(ctx, s.assetsKey, trashed.ID).Result()
		if err == redis.Nil {
			return fmt.Errorf("asset %s: %w", trashed.ID, custom_error.ErrNotFound)
		}
		if err != nil {
			return err
		}

		var current models.Asset
		if err := json.Unmarshal([]byte(data), &current); err != nil {
			return fmt.Errorf("corrupt asset document: %w", err)
		}
		doc, err := json.Marshal(models.TrashedAsset{Asset: current, DeletedAt: trashed.DeletedAt})
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HDel(ctx, s.assetsKey, trashed.ID)
			pipe.HSet(ctx, s.trashedKey, trashed.ID, doc)
			return nil
		})
		return err
	}, s.assetsKey, s.trashedKey)

	return custom_error.NewBackendError("move asset to trash", err)
}

func (s *RedisBackend) RestoreFromTrash(ctx context.Context, asset models.Asset) error {
	data, err := json.Marshal(asset)
	if err != nil {
		return err
	}

	err = s.move(ctx, s.trashedKey, s.assetsKey, asset.ID, data)
	return custom_error.NewBackendError("restore asset", err)
}

func (s *RedisBackend) DeleteTrashed(ctx context.Context, id string) error {
	if err := s.client.HDel(ctx, s.trashedKey, id).Err(); err != nil {
		return custom_error.NewBackendError("purge asset", err)
	}
	return nil
}

// move deletes id from the source hash and writes data to the destination hash inside a
// MULTI/EXEC block guarded by WATCH on both keys.
func (s *RedisBackend) move(ctx context.Context, from, to, id string, data []byte) error {
	return s.client.Watch(ctx, func(tx *redis.Tx) error {
		exists, err := tx.HExists(ctx, from, id).Result()
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("asset %s: %w", id, custom_error.ErrNotFound)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HDel(ctx, from, id)
			pipe.HSet(ctx, to, id, data)
			return nil
		})
		return err
	}, from, to)
}

func (s *RedisBackend) get(ctx context.Context, key, id string, target interface{}) error {
	data, err := s.client.HGet(ctx, key, id).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("asset %s: %w", id, custom_error.ErrNotFound)
		}
		return custom_error.NewBackendError("find asset", err)
	}
	if err := json.Unmarshal([]byte(data), target); err != nil {
		return custom_error.NewBackendError("find asset", fmt.Errorf("corrupt asset document: %w", err))
	}
	return nil
}
