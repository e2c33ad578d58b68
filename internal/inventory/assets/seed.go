package assets

import (
	"context"
	"fmt"

	"inventory/pkg/models"

	"go.uber.org/zap"
)

var demoAssets = []models.AssetRequest{
	{Name: "Dell XPS 15", Type: "laptop", Model: "XPS 15 9500", SerialNumber: "SN12345678", PurchaseDate: "2022-06-15", Status: "assigned", AssignedTo: "John Doe", Notes: "Developer laptop"},
	{Name: "HP EliteBook", Type: "laptop", Model: "EliteBook 840 G8", SerialNumber: "HP987654321", PurchaseDate: "2022-03-10", Status: "available", Notes: "Spare laptop"},
	{Name: "Dell UltraSharp", Type: "monitor", Model: "U2720Q", SerialNumber: "MON123456", PurchaseDate: "2022-06-15", Status: "assigned", AssignedTo: "Jane Smith", Notes: "27-inch 4K monitor"},
	{Name: "Logitech MX Master", Type: "mouse", Model: "MX Master 3", SerialNumber: "LG456789", PurchaseDate: "2022-01-20", Status: "assigned", AssignedTo: "John Doe", Notes: "Wireless mouse"},
	{Name: "Apple Magic Keyboard", Type: "keyboard", Model: "Magic Keyboard with Numeric Keypad", SerialNumber: "APP789012", PurchaseDate: "2022-02-15", Status: "available", Notes: "Wireless keyboard"},
	{Name: "Cisco IP Phone", Type: "telephone", Model: "8841", SerialNumber: "CIS345678", PurchaseDate: "2021-11-05", Status: "assigned", AssignedTo: "Reception Desk", Notes: "Reception phone"},
	{Name: "iPhone 13", Type: "mobile", Model: "iPhone 13 Pro", SerialNumber: "IPH234567", PurchaseDate: "2022-09-25", Status: "assigned", AssignedTo: "Jane Smith", Notes: "Company phone"},
	{Name: "Fujitsu ScanSnap", Type: "scanner", Model: "iX1600", SerialNumber: "FUJ567890", PurchaseDate: "2022-04-18", Status: "available", Notes: "Document scanner"},
	{Name: "HP LaserJet", Type: "printer", Model: "LaserJet Pro M404dn", SerialNumber: "HPP123456", PurchaseDate: "2022-05-12", Status: "maintenance", Notes: "Needs toner replacement"},
	{Name: "Dell Optiplex", Type: "computer", Model: "Optiplex 7090", SerialNumber: "OPT123456", PurchaseDate: "2021-12-10", Status: "assigned", AssignedTo: "Conference Room", Notes: "Meeting room PC"},
	{Name: "Dell XPS Desktop", Type: "computer", Model: "XPS 8940", SerialNumber: "XPS987654", PurchaseDate: "2022-08-05", Status: "retired", Notes: "Outdated hardware"},
	{Name: "LG UltraWide", Type: "monitor", Model: "34WN80C-B", SerialNumber: "LG345678", PurchaseDate: "2022-07-14", Status: "assigned", AssignedTo: "Design Team", Notes: "Ultrawide monitor for designers"},
}

// SeedIfEmpty inserts the demonstration assets when the active set is empty and returns
// how many were inserted. A failed insert is logged and the rest still go in.
func (s *AssetService) SeedIfEmpty(ctx context.Context) (int, error) {
	count, err := s.backend.CountAssets(ctx)
	if err != nil {
		s.logger.Error("Unable to check whether the inventory is empty", zap.Error(err))
		return 0, fmt.Errorf("failed to count assets: %w", err)
	}
	if count > 0 {
		s.logger.Debug("Inventory already populated, skipping seed", zap.Int("count", count))
		return 0, nil
	}

	inserted := 0
	for _, req := range demoAssets {
		if _, err := s.Create(ctx, req); err != nil {
			s.logger.Warn("Unable to seed asset", zap.String("name", req.Name), zap.Error(err))
			continue
		}
		inserted++
	}

	s.logger.Info("Seeded inventory", zap.Int("inserted", inserted))
	return inserted, nil
}
