package assets

import (
	"context"
	"testing"

	"inventory/pkg/metadata"
	"inventory/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssigneesAreTrimmedDistinctAndSorted(t *testing.T) {
	assets := []models.Asset{
		{AssignedTo: "Beto", Status: metadata.StatusAssigned},
		{AssignedTo: "Ana", Status: metadata.StatusAssigned},
		{AssignedTo: " Ana ", Status: metadata.StatusAssigned},
		{AssignedTo: "   ", Status: metadata.StatusAvailable},
		{AssignedTo: "", Status: metadata.StatusAvailable},
	}

	assert.Equal(t, []string{"Ana", "Beto"}, Assignees(assets))
}

func TestAssigneesEmpty(t *testing.T) {
	assert.Empty(t, Assignees(nil))
}

func TestAssignedToRequiresAssignedStatus(t *testing.T) {
	assets := []models.Asset{
		{ID: "1", AssignedTo: "Ana", Status: metadata.StatusAssigned},
		{ID: "2", AssignedTo: "Ana", Status: metadata.StatusMaintenance},
		{ID: "3", AssignedTo: " Ana", Status: metadata.StatusAssigned},
		{ID: "4", AssignedTo: "Beto", Status: metadata.StatusAssigned},
	}

	matched := AssignedTo(assets, "Ana ")

	require.Len(t, matched, 2)
	assert.Equal(t, "1", matched[0].ID)
	assert.Equal(t, "3", matched[1].ID)
	assert.Empty(t, AssignedTo(assets, "  "))
}

func TestAssigneeSummaries(t *testing.T) {
	service, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.Create(ctx, models.AssetRequest{Name: "Laptop", Type: "laptop", Status: "assigned", AssignedTo: "Ana"})
	require.NoError(t, err)
	_, err = service.Create(ctx, models.AssetRequest{Name: "Phone", Type: "mobile", Status: "assigned", AssignedTo: "Ana"})
	require.NoError(t, err)
	_, err = service.Create(ctx, models.AssetRequest{Name: "Monitor", Type: "monitor", Status: "maintenance", AssignedTo: "Beto"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Ana", "Beto"}, service.ListAssignees(ctx))
	assert.Len(t, service.AssetsForAssignee(ctx, "Ana"), 2)
	assert.Empty(t, service.AssetsForAssignee(ctx, "Beto"))
	assert.Equal(t, []models.Assignee{
		{Name: "Ana", AssetCount: 2},
		{Name: "Beto", AssetCount: 0},
	}, service.AssigneeSummaries(ctx))
}
