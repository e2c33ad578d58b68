package googlesheets

import (
	"context"
	"fmt"

	"inventory/pkg/models"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

// NewSheetsService builds a Sheets client from service-account credentials.
func NewSheetsService(ctx context.Context, credentialsJSON []byte) (*sheets.Service, error) {
	credentials, err := google.CredentialsFromJSON(ctx, credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to load Google credentials: %w", err)
	}

	client := oauth2.NewClient(ctx, credentials.TokenSource)
	sheetsService, err := sheets.New(client)
	if err != nil {
		return nil, fmt.Errorf("unable to create Google Sheets client: %w", err)
	}

	return sheetsService, nil
}

// ExportService overwrites a sheet range with the asset inventory.
type ExportService struct {
	sheetsService *sheets.Service
	spreadsheetID string
	writeRange    string
	logger        *zap.Logger
}

func NewExportService(sheetsService *sheets.Service, spreadsheetID, writeRange string, logger *zap.Logger) *ExportService {
	return &ExportService{
		sheetsService: sheetsService,
		spreadsheetID: spreadsheetID,
		writeRange:    writeRange,
		logger:        logger,
	}
}

// Export clears the configured range and writes the header plus one row per asset.
func (s *ExportService) Export(ctx context.Context, assets []models.Asset) (*ExportResult, error) {
	values := s.sheetsService.Spreadsheets.Values

	if _, err := values.Clear(s.spreadsheetID, s.writeRange, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return nil, fmt.Errorf("unable to clear sheet range %s: %w", s.writeRange, err)
	}

	resp, err := values.Update(s.spreadsheetID, s.writeRange, &sheets.ValueRange{
		MajorDimension: "ROWS",
		Values:         AssetRows(assets),
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to write sheet range %s: %w", s.writeRange, err)
	}

	s.logger.Info("Exported assets to Google Sheets",
		zap.String("spreadsheet_id", s.spreadsheetID),
		zap.String("range", resp.UpdatedRange),
		zap.Int("assets", len(assets)),
	)

	return &ExportResult{
		SpreadsheetID: s.spreadsheetID,
		UpdatedRange:  resp.UpdatedRange,
		UpdatedRows:   resp.UpdatedRows,
	}, nil
}
