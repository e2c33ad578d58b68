package googlesheets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"inventory/pkg/metadata"
	"inventory/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type recordedCall struct {
	method string
	path   string
	query  string
	body   []byte
}

func newFakeSheets(t *testing.T) (*sheets.Service, *[]recordedCall) {
	var mu sync.Mutex
	calls := []recordedCall{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		calls = append(calls, recordedCall{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, body: body})
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, ":clear") {
			_, _ = w.Write([]byte(`{"spreadsheetId":"sheet-1","clearedRange":"Inventory!A1:J100"}`))
			return
		}
		_, _ = w.Write([]byte(`{"spreadsheetId":"sheet-1","updatedRange":"Inventory!A1:J3","updatedRows":3}`))
	}))
	t.Cleanup(server.Close)

	service, err := sheets.NewService(context.Background(),
		option.WithHTTPClient(server.Client()),
		option.WithEndpoint(server.URL+"/"),
	)
	require.NoError(t, err)
	return service, &calls
}

func TestAssetRows(t *testing.T) {
	rows := AssetRows([]models.Asset{{
		ID:          "a-1",
		Name:        "Dell Optiplex",
		Type:        metadata.TypeComputer,
		Status:      metadata.StatusAssigned,
		AssignedTo:  "Conference Room",
		Notes:       `{"operatingSystem":"Windows 11","generalNotes":"Meeting room PC"}`,
		LastUpdated: "2024-05-10",
	}})

	require.Len(t, rows, 2)
	assert.Equal(t, Headers, rows[0])
	assert.Equal(t, "Dell Optiplex", rows[1][1])
	assert.Equal(t, "computer", rows[1][2])
	assert.Equal(t, "Meeting room PC", rows[1][8])
	assert.Equal(t, "2024-05-10", rows[1][9])
}

func TestExportClearsThenWritesRange(t *testing.T) {
	sheetsService, calls := newFakeSheets(t)
	exporter := NewExportService(sheetsService, "sheet-1", "Inventory!A1", zap.NewNop())

	result, err := exporter.Export(context.Background(), []models.Asset{
		{ID: "a-1", Name: "HP LaserJet", Type: metadata.TypePrinter, Status: metadata.StatusMaintenance},
		{ID: "a-2", Name: "LG UltraWide", Type: metadata.TypeMonitor, Status: metadata.StatusAssigned},
	})
	require.NoError(t, err)

	assert.Equal(t, "sheet-1", result.SpreadsheetID)
	assert.Equal(t, "Inventory!A1:J3", result.UpdatedRange)
	assert.EqualValues(t, 3, result.UpdatedRows)

	require.Len(t, *calls, 2)
	clearCall, updateCall := (*calls)[0], (*calls)[1]

	assert.Equal(t, http.MethodPost, clearCall.method)
	assert.True(t, strings.HasSuffix(clearCall.path, ":clear"))

	assert.Equal(t, http.MethodPut, updateCall.method)
	assert.Contains(t, updateCall.path, "/v4/spreadsheets/sheet-1/values/")
	assert.Contains(t, updateCall.query, "valueInputOption=RAW")

	var written sheets.ValueRange
	require.NoError(t, json.Unmarshal(updateCall.body, &written))
	require.Len(t, written.Values, 3)
	assert.Equal(t, "HP LaserJet", written.Values[1][1])
}
