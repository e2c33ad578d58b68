package assets

import (
	"strings"

	custom_error "inventory/pkg/errors"
	"inventory/pkg/metadata"
	"inventory/pkg/models"
	"inventory/pkg/notes"

	"github.com/samber/lo"
)

// NewAssetFromRequest validates req and builds the asset it describes, without id or
// lastUpdated. An empty status means available. When Details is set, the notes column
// is encoded from it with req.Notes as the general notes; license assignments are
// normalised like SetLicenseAssignments and the first one becomes assignedTo.
func NewAssetFromRequest(req models.AssetRequest) (models.Asset, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Asset{}, custom_error.InvalidInput("name is required")
	}

	assetType, err := metadata.NewAssetType(req.Type)
	if err != nil {
		return models.Asset{}, custom_error.InvalidInput("%v", err)
	}

	status := metadata.StatusAvailable
	if strings.TrimSpace(req.Status) != "" {
		if status, err = metadata.NewStatus(req.Status); err != nil {
			return models.Asset{}, custom_error.InvalidInput("%v", err)
		}
	}

	purchaseDate := strings.TrimSpace(req.PurchaseDate)
	if purchaseDate != "" {
		parsed, err := metadata.ParseDate(purchaseDate)
		if err != nil {
			return models.Asset{}, custom_error.InvalidInput("purchaseDate: %v", err)
		}
		purchaseDate = metadata.FormatDate(parsed)
	}

	assetNotes := req.Notes
	assignedTo := req.AssignedTo
	if req.Details != nil {
		fields := *req.Details
		if assetType == metadata.TypeLicense {
			fields.Assignments = normalizeUsernames(fields.Assignments)
			assignedTo = lo.FirstOr(fields.Assignments, "")
		}
		assetNotes, err = notes.Encode(notes.FromFields(assetType, fields, req.Notes))
		if err != nil {
			return models.Asset{}, custom_error.InvalidInput("details: %v", err)
		}
	}

	return models.Asset{
		Name:         name,
		Type:         assetType,
		Model:        strings.TrimSpace(req.Model),
		SerialNumber: strings.TrimSpace(req.SerialNumber),
		PurchaseDate: purchaseDate,
		Status:       status,
		AssignedTo:   assignedTo,
		Notes:        assetNotes,
	}, nil
}

// RequestFromAsset is the inverse of NewAssetFromRequest for an already stored asset.
func RequestFromAsset(asset models.Asset) models.AssetRequest {
	return models.AssetRequest{
		Name:         asset.Name,
		Type:         asset.Type.String(),
		Model:        asset.Model,
		SerialNumber: asset.SerialNumber,
		PurchaseDate: asset.PurchaseDate,
		Status:       asset.Status.String(),
		AssignedTo:   asset.AssignedTo,
		Notes:        asset.Notes,
	}
}
