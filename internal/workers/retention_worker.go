package workers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"propel_backend/internal/config"
	"propel_backend/internal/logger"
	"propel_backend/internal/metrics"
	"propel_backend/internal/repositories"
)

// RetentionWorker удаляет записи об инспекциях старше настроенного
// срока хранения. Удаление каскадное: комнаты и фото уходят вместе
// с записью.
type RetentionWorker struct {
	db           *gorm.DB
	propertyRepo repositories.PropertyRepository
	days         int
	interval     time.Duration
}

func NewRetentionWorker(db *gorm.DB, propertyRepo repositories.PropertyRepository, cfg *config.Config) *RetentionWorker {
	return &RetentionWorker{
		db:           db,
		propertyRepo: propertyRepo,
		days:         cfg.Retention.Days,
		interval:     time.Duration(cfg.Retention.SweepIntervalHours) * time.Hour,
	}
}

// Start запускает периодический sweep до отмены контекста
func (w *RetentionWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *RetentionWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.Info("Retention worker started", "days", w.days, "interval", w.interval.String())

	for {
		select {
		case <-ctx.Done():
			logger.Info("Retention worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *RetentionWorker) sweep() {
	cutoff := time.Now().UTC().AddDate(0, 0, -w.days)

	deleted, err := w.propertyRepo.DeleteOlderThan(w.db, cutoff)
	if err != nil {
		logger.Error("Retention sweep failed", "error", err)
		return
	}

	if deleted > 0 {
		metrics.PropertiesSwept.Add(float64(deleted))
		logger.Info("Retention sweep removed stale properties", "count", deleted, "cutoff", cutoff)
	}
}
