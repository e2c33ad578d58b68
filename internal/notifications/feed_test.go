package notifications

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inventory/pkg/notify"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFeed(t *testing.T, capacity uint64) *Feed {
	feed := NewFeed(time.Hour, capacity)
	t.Cleanup(feed.Stop)

	clock := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	feed.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return feed
}

func TestFeedReturnsNewestFirst(t *testing.T) {
	feed := newTestFeed(t, 10)

	feed.Notify(notify.Success("Asset added", "Dell XPS 15 has been added to the inventory."))
	feed.Notify(notify.Failure("Error deleting asset", "The asset could not be moved to the trash."))

	recent := feed.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, "Error deleting asset", recent[0].Title)
	assert.Equal(t, notify.LevelFailure, recent[0].Level)
	assert.Equal(t, "Asset added", recent[1].Title)
	assert.NotEmpty(t, recent[0].ID)
	assert.NotEqual(t, recent[0].ID, recent[1].ID)
}

func TestFeedEvictsOldestBeyondCapacity(t *testing.T) {
	feed := newTestFeed(t, 2)

	feed.Notify(notify.Success("first", ""))
	feed.Notify(notify.Success("second", ""))
	feed.Notify(notify.Success("third", ""))

	recent := feed.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, "third", recent[0].Title)
	assert.Equal(t, "second", recent[1].Title)
}

func TestGetNotifications(t *testing.T) {
	feed := newTestFeed(t, 10)
	feed.Notify(notify.Success("Asset restored", "HP LaserJet is back in the inventory."))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewNotificationsHandler(feed).RegisterRoutes(router)

	req, _ := http.NewRequest(http.MethodGet, "/notifications", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got []notify.Notification
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Asset restored", got[0].Title)
}
