package notifications

import (
	"sort"
	"time"

	"inventory/pkg/notify"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
)

// Feed keeps the most recent notifications for a limited time so clients can poll
// for them. It implements notify.Notifier.
type Feed struct {
	cache *ttlcache.Cache[string, notify.Notification]
	now   func() time.Time
}

func NewFeed(ttl time.Duration, capacity uint64) *Feed {
	cache := ttlcache.New[string, notify.Notification](
		ttlcache.WithTTL[string, notify.Notification](ttl),
		ttlcache.WithCapacity[string, notify.Notification](capacity),
		ttlcache.WithDisableTouchOnHit[string, notify.Notification](),
	)
	go cache.Start()

	return &Feed{cache: cache, now: time.Now}
}

func (f *Feed) Notify(n notify.Notification) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = f.now().UTC()
	}
	f.cache.Set(n.ID, n, ttlcache.DefaultTTL)
}

// Recent returns the live notifications, newest first.
func (f *Feed) Recent() []notify.Notification {
	recent := make([]notify.Notification, 0, f.cache.Len())
	for _, item := range f.cache.Items() {
		if item.IsExpired() {
			continue
		}
		recent = append(recent, item.Value())
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	return recent
}

// Stop ends the expiry goroutine.
func (f *Feed) Stop() {
	f.cache.Stop()
}
