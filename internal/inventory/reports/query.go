package reports

import (
	"fmt"
	"strings"
	"time"

	"inventory/pkg/metadata"
	"inventory/pkg/models"
)

// Query is the date-range selection as sent by clients, either as query parameters or
// as a JSON body.
type Query struct {
	Range string `form:"range" json:"range"`
	Start string `form:"start" json:"start"`
	End   string `form:"end" json:"end"`
}

type Selection struct {
	Range DateRange
	Start *time.Time
	End   *time.Time
}

func (q Query) Resolve() (Selection, error) {
	rng, err := ParseDateRange(q.Range)
	if err != nil {
		return Selection{}, err
	}

	selection := Selection{Range: rng}
	if selection.Start, err = optionalDate(q.Start); err != nil {
		return Selection{}, fmt.Errorf("start: %w", err)
	}
	if selection.End, err = optionalDate(q.End); err != nil {
		return Selection{}, fmt.Errorf("end: %w", err)
	}
	if selection.Start != nil && selection.End != nil && selection.End.Before(*selection.Start) {
		return Selection{}, fmt.Errorf("end %s is before start %s", q.End, q.Start)
	}

	return selection, nil
}

func (s Selection) Apply(assets []models.Asset) []models.Asset {
	return FilterByRange(assets, s.Range, s.Start, s.End)
}

func optionalDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := metadata.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
