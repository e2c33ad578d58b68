package metadata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	moment := time.Date(2024, time.March, 9, 23, 30, 0, 0, time.FixedZone("CET", 3600))
	assert.Equal(t, "2024-03-09", FormatDate(moment))

	lateEvening := time.Date(2024, time.March, 9, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))
	assert.Equal(t, "2024-03-10", FormatDate(lateEvening), "dates are normalised to UTC")
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"canonical", "2023-12-01", time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), false},
		{"rfc3339 truncated", "2023-12-01T15:04:05Z", time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), false},
		{"garbage", "01/12/2023", time.Time{}, true},
		{"empty", "", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
		})
	}
}

func TestNewIDIsUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}
