// Package cleanup reclaims uploaded incident photos whose document write
// never landed. Submission uploads the photo first and only then writes the
// row, so a failed write leaves the object behind with nothing pointing at
// it. The sweep deletes such objects once they are older than a grace
// window.
package cleanup

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"guardian/internal/models"
	stores "guardian/pkg/storage"
)

// ImagePrefix is where incident photos live in object storage.
const ImagePrefix = "incident_images/"

type OrphanSweeper struct {
	db     *gorm.DB
	store  stores.Store
	grace  time.Duration
	logger *zap.Logger
}

func NewOrphanSweeper(db *gorm.DB, store stores.Store, grace time.Duration, logger *zap.Logger) *OrphanSweeper {
	if grace <= 0 {
		grace = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrphanSweeper{db: db, store: store, grace: grace, logger: logger}
}

// Run implements scheduler.Job.
func (s *OrphanSweeper) Run(ctx context.Context) {
	deleted, err := s.Sweep(ctx)
	if err != nil {
		s.logger.Error("orphan sweep failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		s.logger.Info("orphan sweep done", zap.Int("deleted", deleted))
	}
}

// Sweep deletes unreferenced photos older than the grace window and returns
// how many were removed. Objects inside the window are skipped: their
// document write may still be in flight.
func (s *OrphanSweeper) Sweep(ctx context.Context) (int, error) {
	objs, err := s.store.List(ctx, ImagePrefix)
	if err != nil {
		return 0, err
	}

	deleted := 0
	cutoff := time.Now().Add(-s.grace)
	for _, obj := range objs {
		if obj.LastModified.After(cutoff) {
			continue
		}
		url := s.store.PublicURL(obj.Key)
		var count int64
		if err := s.db.Model(&models.Incident{}).Where("image_uri = ?", url).Count(&count).Error; err != nil {
			return deleted, err
		}
		if count > 0 {
			continue
		}
		if err := s.store.Delete(ctx, obj.Key); err != nil {
			s.logger.Warn("could not delete orphaned photo", zap.String("key", obj.Key), zap.Error(err))
			continue
		}
		deleted++
	}
	return deleted, nil
}
