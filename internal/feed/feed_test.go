package feed

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"guardian/internal/models"
)

func newWatcher(t *testing.T) (*Watcher, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Incident{}))
	return NewWatcher(db, nil), db
}

func recvSnapshot(t *testing.T, sub *Subscription) Snapshot {
	t.Helper()
	select {
	case snap, ok := <-sub.Snapshots():
		require.True(t, ok, "subscription closed unexpectedly")
		return snap
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
		return nil
	}
}

func TestWatchDeliversInitialEmptySnapshotOnce(t *testing.T) {
	w, _ := newWatcher(t)

	sub, err := w.Watch(context.Background())
	require.NoError(t, err)
	defer sub.Close()

	snap := recvSnapshot(t, sub)
	assert.Len(t, snap, 0)

	// exactly once: nothing else arrives until a change happens
	select {
	case extra := <-sub.Snapshots():
		t.Fatalf("unexpected extra snapshot: %v", extra)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNotifyPushesFullSnapshot(t *testing.T) {
	w, db := newWatcher(t)

	sub, err := w.Watch(context.Background())
	require.NoError(t, err)
	defer sub.Close()
	recvSnapshot(t, sub) // initial

	require.NoError(t, models.CreateIncident(db, &models.Incident{Description: "Fire", Cause: "Electrical"}))
	w.Notify()

	snap := recvSnapshot(t, sub)
	require.Len(t, snap, 1)
	assert.Equal(t, "Fire", snap[0].Description)

	require.NoError(t, models.CreateIncident(db, &models.Incident{Description: "Flood", Cause: "Rain"}))
	w.Notify()

	snap = recvSnapshot(t, sub)
	require.Len(t, snap, 2, "each notification carries the whole result set")
	assert.Equal(t, "Flood", snap[0].Description, "newest first")
}

func TestSlowSubscriberGetsLatestSnapshot(t *testing.T) {
	w, db := newWatcher(t)

	sub, err := w.Watch(context.Background())
	require.NoError(t, err)
	defer sub.Close()
	recvSnapshot(t, sub)

	// subscriber does not read between notifications; stale snapshots are
	// coalesced rather than queued or blocking
	for i := 0; i < 5; i++ {
		require.NoError(t, models.CreateIncident(db, &models.Incident{Description: "r", Cause: "c"}))
		w.Notify()
	}

	snap := recvSnapshot(t, sub)
	assert.Len(t, snap, 5, "pending snapshot is the newest one")
}

func TestCloseUnregistersAndEndsChannel(t *testing.T) {
	w, _ := newWatcher(t)

	sub, err := w.Watch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, w.SubscriberCount())

	sub.Close()
	sub.Close() // idempotent
	assert.Equal(t, 0, w.SubscriberCount())

	// drain the initial snapshot, then the channel must be closed
	for range sub.Snapshots() {
	}

	w.Notify() // must not panic with no subscribers
}

func TestContextCancelClosesSubscription(t *testing.T) {
	w, _ := newWatcher(t)

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := w.Watch(ctx)
	require.NoError(t, err)
	recvSnapshot(t, sub)

	cancel()
	select {
	case _, ok := <-sub.Snapshots():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription not closed on context cancel")
	}
	assert.Equal(t, 0, w.SubscriberCount())
}
