// Package feed maintains the live incident feed: a standing query whose full
// result set is recomputed on every write and pushed, whole, to every
// subscriber. There is no incremental diffing; consumers replace their state
// with each snapshot.
package feed

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"guardian/internal/models"
)

// Snapshot is one full view of the feed, newest incident first.
type Snapshot []models.Incident

// Watcher owns the live query and the subscriber registry.
type Watcher struct {
	db     *gorm.DB
	logger *zap.Logger

	mu     sync.RWMutex
	subs   map[uint64]*Subscription
	nextID uint64
}

// Subscription is the handle returned by Watch. The consumer reads snapshots
// from Snapshots and must Close when done (subscribe on enter, unsubscribe
// on exit).
type Subscription struct {
	id uint64
	w  *Watcher
	ch chan Snapshot
}

func NewWatcher(db *gorm.DB, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{db: db, logger: logger, subs: make(map[uint64]*Subscription)}
}

// Watch registers a subscriber and delivers one initial snapshot immediately,
// even when the feed is empty. The subscription is closed when ctx ends.
func (w *Watcher) Watch(ctx context.Context) (*Subscription, error) {
	snap, err := models.ListIncidents(w.db)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.nextID++
	sub := &Subscription{id: w.nextID, w: w, ch: make(chan Snapshot, 1)}
	w.subs[sub.id] = sub
	w.mu.Unlock()

	sub.ch <- Snapshot(snap)

	go func() {
		<-ctx.Done()
		sub.Close()
	}()
	return sub, nil
}

// Snapshots returns the channel of full-feed snapshots. It is closed by Close.
func (s *Subscription) Snapshots() <-chan Snapshot { return s.ch }

// Close unregisters the subscription and closes its channel. Safe to call
// more than once.
func (s *Subscription) Close() {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	if _, ok := s.w.subs[s.id]; !ok {
		return
	}
	delete(s.w.subs, s.id)
	close(s.ch)
}

// Notify recomputes the snapshot and fans it out. A slow subscriber has its
// stale pending snapshot replaced rather than blocking the writer.
func (w *Watcher) Notify() {
	snap, err := models.ListIncidents(w.db)
	if err != nil {
		w.logger.Error("feed snapshot query failed", zap.Error(err))
		return
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, sub := range w.subs {
		select {
		case sub.ch <- Snapshot(snap):
		default:
			// coalesce: replace the undelivered snapshot with the newer one
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- Snapshot(snap):
			default:
			}
		}
	}
}

// SubscriberCount reports the number of active subscriptions.
func (w *Watcher) SubscriberCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.subs)
}
