package assets

import (
	"context"
	"strings"

	custom_error "inventory/pkg/errors"
	"inventory/pkg/metadata"
	"inventory/pkg/models"
	"inventory/pkg/notes"

	"github.com/samber/lo"
)

// SetLicenseAssignments replaces the users a license asset is assigned to. The general
// notes are kept and assignedTo becomes the first username.
func (s *AssetService) SetLicenseAssignments(ctx context.Context, id string, usernames []string) (*models.Asset, error) {
	asset, err := s.Get(ctx, id)
	if err != nil {
		return nil, s.fail("set_licenses", id, err, "Error updating license", "The license assignments could not be saved.")
	}
	if asset.Type != metadata.TypeLicense {
		err = custom_error.InvalidInput("asset %s is a %s, not a license", id, asset.Type)
		return nil, s.fail("set_licenses", id, err, "Error updating license", "Only license assets can be assigned to users.")
	}

	usernames = normalizeUsernames(usernames)
	general := notes.GeneralNotes(asset.Type, asset.Notes)
	encoded, err := notes.Encode(notes.NewLicenseAssignments(usernames, general))
	if err != nil {
		return nil, s.fail("set_licenses", id, err, "Error updating license", "The license assignments could not be saved.")
	}

	req := RequestFromAsset(*asset)
	req.Notes = encoded
	req.AssignedTo = lo.FirstOr(usernames, "")

	return s.Update(ctx, id, req)
}

// normalizeUsernames trims every name and drops the empty ones.
func normalizeUsernames(usernames []string) []string {
	return lo.Compact(lo.Map(usernames, func(username string, _ int) string {
		return strings.TrimSpace(username)
	}))
}
