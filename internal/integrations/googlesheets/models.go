package googlesheets

import (
	"inventory/pkg/models"
	"inventory/pkg/notes"
)

// Headers is the first row written to the sheet, one column per exported field.
var Headers = []interface{}{
	"ID",
	"Name",
	"Type",
	"Model",
	"Serial number",
	"Purchase date",
	"Status",
	"Assigned to",
	"Notes",
	"Last updated",
}

// AssetRows renders assets as sheet rows preceded by Headers. Structured notes are
// flattened to their general notes.
func AssetRows(assets []models.Asset) [][]interface{} {
	rows := make([][]interface{}, 0, len(assets)+1)
	rows = append(rows, Headers)
	for _, asset := range assets {
		rows = append(rows, []interface{}{
			asset.ID,
			asset.Name,
			asset.Type.String(),
			asset.Model,
			asset.SerialNumber,
			asset.PurchaseDate,
			asset.Status.String(),
			asset.AssignedTo,
			notes.GeneralNotes(asset.Type, asset.Notes),
			asset.LastUpdated,
		})
	}
	return rows
}

type ExportResult struct {
	SpreadsheetID string `json:"spreadsheet_id"`
	UpdatedRange  string `json:"updated_range"`
	UpdatedRows   int64  `json:"updated_rows"`
}
