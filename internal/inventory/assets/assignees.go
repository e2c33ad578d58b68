package assets

import (
	"context"
	"sort"
	"strings"

	"inventory/pkg/metadata"
	"inventory/pkg/models"

	"github.com/samber/lo"
)

// ListAssignees returns the distinct trimmed assignedTo values of active assets,
// sorted ascending. Empty names are skipped.
func (s *AssetService) ListAssignees(ctx context.Context) []string {
	return Assignees(s.ListActive(ctx))
}

// AssetsForAssignee returns the active assets currently assigned to name. Assets that
// still carry the name but are no longer in the assigned status are left out.
func (s *AssetService) AssetsForAssignee(ctx context.Context, name string) []models.Asset {
	return AssignedTo(s.ListActive(ctx), name)
}

// AssigneeSummaries pairs every assignee with the number of assets assigned to them.
func (s *AssetService) AssigneeSummaries(ctx context.Context) []models.Assignee {
	active := s.ListActive(ctx)
	return lo.Map(Assignees(active), func(name string, _ int) models.Assignee {
		return models.Assignee{Name: name, AssetCount: len(AssignedTo(active, name))}
	})
}

func Assignees(assets []models.Asset) []string {
	names := lo.Uniq(lo.FilterMap(assets, func(asset models.Asset, _ int) (string, bool) {
		name := strings.TrimSpace(asset.AssignedTo)
		return name, name != ""
	}))
	sort.Strings(names)
	return names
}

func AssignedTo(assets []models.Asset, name string) []models.Asset {
	name = strings.TrimSpace(name)
	if name == "" {
		return []models.Asset{}
	}
	return lo.Filter(assets, func(asset models.Asset, _ int) bool {
		return asset.Status == metadata.StatusAssigned && strings.TrimSpace(asset.AssignedTo) == name
	})
}
