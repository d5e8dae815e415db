package cleanup

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"guardian/internal/models"
	stores "guardian/pkg/storage"
)

func setup(t *testing.T) (*gorm.DB, *stores.MemoryStore) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Incident{}))
	return db, stores.NewMemoryStore("")
}

func put(t *testing.T, store *stores.MemoryStore, key string, age time.Duration) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Write(ctx, key, strings.NewReader("jpeg-bytes"), -1, "image/jpeg"))
	store.SetModified(key, time.Now().Add(-age))
}

func TestSweepDeletesStaleOrphansOnly(t *testing.T) {
	db, store := setup(t)
	ctx := context.Background()

	referenced := ImagePrefix + "kept.jpg"
	orphanOld := ImagePrefix + "orphan-old.jpg"
	orphanNew := ImagePrefix + "orphan-new.jpg"
	outside := "avatars/a.jpg"

	put(t, store, referenced, 2*time.Hour)
	put(t, store, orphanOld, 2*time.Hour)
	put(t, store, orphanNew, time.Minute)
	put(t, store, outside, 2*time.Hour)

	url := store.PublicURL(referenced)
	require.NoError(t, models.CreateIncident(db, &models.Incident{
		Description: "Fire", Cause: "Electrical", ImageURI: &url,
	}))

	sweeper := NewOrphanSweeper(db, store, time.Hour, nil)
	deleted, err := sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	exists, _ := store.Exists(ctx, referenced)
	assert.True(t, exists, "referenced photo must survive")
	exists, _ = store.Exists(ctx, orphanOld)
	assert.False(t, exists, "stale orphan must be reclaimed")
	exists, _ = store.Exists(ctx, orphanNew)
	assert.True(t, exists, "orphan inside the grace window must survive")
	exists, _ = store.Exists(ctx, outside)
	assert.True(t, exists, "objects outside the prefix are untouched")
}

func TestSweepIsIdempotent(t *testing.T) {
	db, store := setup(t)
	put(t, store, ImagePrefix+"orphan.jpg", 2*time.Hour)

	sweeper := NewOrphanSweeper(db, store, time.Hour, nil)
	deleted, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	deleted, err = sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
}
