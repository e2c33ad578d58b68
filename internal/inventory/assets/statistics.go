package assets

import (
	"context"
	"sort"
	"time"

	"inventory/pkg/metadata"
	"inventory/pkg/models"

	"github.com/samber/lo"
)

const recentlyUpdatedLimit = 5

func (s *AssetService) Statistics(ctx context.Context) models.Statistics {
	return ComputeStatistics(s.ListActive(ctx))
}

// ComputeStatistics counts assets by status and type in one pass. Every status and type
// has an entry, zero when unused. RecentlyUpdated holds the most recently updated
// assets, ties kept in input order.
func ComputeStatistics(assets []models.Asset) models.Statistics {
	stats := models.Statistics{
		Total:    len(assets),
		ByStatus: make(map[metadata.Status]int, len(metadata.Statuses)),
		ByType:   make(map[metadata.AssetType]int, len(metadata.AssetTypes)),
	}
	for _, status := range metadata.Statuses {
		stats.ByStatus[status] = 0
	}
	for _, assetType := range metadata.AssetTypes {
		stats.ByType[assetType] = 0
	}

	updated := make([]time.Time, len(assets))
	for i, asset := range assets {
		stats.ByStatus[asset.Status]++
		stats.ByType[asset.Type]++
		updated[i] = parseOrZero(asset.LastUpdated)
	}

	order := lo.Range(len(assets))
	sort.SliceStable(order, func(i, j int) bool {
		return updated[order[i]].After(updated[order[j]])
	})
	recent := lo.Subset(order, 0, recentlyUpdatedLimit)
	stats.RecentlyUpdated = lo.Map(recent, func(i int, _ int) models.Asset {
		return assets[i]
	})

	return stats
}
