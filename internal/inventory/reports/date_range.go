package reports

import (
	"fmt"
	"strings"
	"time"

	"inventory/pkg/metadata"
	"inventory/pkg/models"

	"github.com/samber/lo"
)

type DateRange string

const (
	RangeAll             DateRange = "all"
	RangeLastMonth       DateRange = "last-month"
	RangeLastThreeMonths DateRange = "last-three-months"
	RangeLastSixMonths   DateRange = "last-six-months"
	RangeLastYear        DateRange = "last-year"
	RangeCustom          DateRange = "custom"
)

var DateRanges = []DateRange{RangeAll, RangeLastMonth, RangeLastThreeMonths, RangeLastSixMonths, RangeLastYear, RangeCustom}

// ParseDateRange accepts one of DateRanges. An empty value means RangeAll.
func ParseDateRange(value string) (DateRange, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return RangeAll, nil
	}
	if lo.Contains(DateRanges, DateRange(value)) {
		return DateRange(value), nil
	}
	return "", fmt.Errorf("invalid date range: %s", value)
}

func FilterByRange(assets []models.Asset, rng DateRange, customStart, customEnd *time.Time) []models.Asset {
	return FilterByRangeAt(time.Now(), assets, rng, customStart, customEnd)
}

// FilterByRangeAt keeps the assets whose lastUpdated falls inside rng, both ends
// inclusive, with now as the current time. RangeAll, an unknown range and a custom
// range without a start return assets unchanged. Assets with an unparsable lastUpdated
// never match a bounded range.
func FilterByRangeAt(now time.Time, assets []models.Asset, rng DateRange, customStart, customEnd *time.Time) []models.Asset {
	start, end, bounded := bounds(metadata.StartOfDay(now), rng, customStart, customEnd)
	if !bounded {
		return assets
	}

	return lo.Filter(assets, func(asset models.Asset, _ int) bool {
		updated, err := metadata.ParseDate(asset.LastUpdated)
		if err != nil {
			return false
		}
		return !updated.Before(start) && !updated.After(end)
	})
}

func bounds(today time.Time, rng DateRange, customStart, customEnd *time.Time) (time.Time, time.Time, bool) {
	switch rng {
	case RangeLastMonth:
		return subtractMonths(today, 1), today, true
	case RangeLastThreeMonths:
		return subtractMonths(today, 3), today, true
	case RangeLastSixMonths:
		return subtractMonths(today, 6), today, true
	case RangeLastYear:
		return subtractMonths(today, 12), today, true
	case RangeCustom:
		if customStart == nil {
			return time.Time{}, time.Time{}, false
		}
		end := today
		if customEnd != nil {
			end = metadata.StartOfDay(*customEnd)
		}
		return metadata.StartOfDay(*customStart), end, true
	default:
		return time.Time{}, time.Time{}, false
	}
}

// subtractMonths moves t back n calendar months, clamping the day to the length of the
// target month (March 31 minus one month is February 28 or 29).
func subtractMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month-time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, time.UTC)
}
