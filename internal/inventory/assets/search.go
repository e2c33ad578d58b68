package assets

import (
	"context"
	"strings"

	"inventory/pkg/metadata"
	"inventory/pkg/models"

	"github.com/samber/lo"
)

// Filter narrows the active asset list. An empty Type or "all" matches every type;
// Search is matched case-insensitively against name, model, serial number and assignee.
type Filter struct {
	Type   string `form:"type"`
	Search string `form:"search"`
}

func (s *AssetService) Search(ctx context.Context, filter Filter) []models.Asset {
	return filter.Apply(s.ListActive(ctx))
}

func (f Filter) Apply(assets []models.Asset) []models.Asset {
	assetType := metadata.AssetType(strings.ToLower(strings.TrimSpace(f.Type)))
	term := strings.ToLower(strings.TrimSpace(f.Search))

	return lo.Filter(assets, func(asset models.Asset, _ int) bool {
		if assetType != "" && assetType != "all" && asset.Type != assetType {
			return false
		}
		if term == "" {
			return true
		}
		return lo.SomeBy([]string{asset.Name, asset.Model, asset.SerialNumber, asset.AssignedTo}, func(field string) bool {
			return strings.Contains(strings.ToLower(field), term)
		})
	})
}
