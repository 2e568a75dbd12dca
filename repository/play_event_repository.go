package repository

import (
	"context"
	"fmt"

	"SadaaFM/db"
	"SadaaFM/model"

	"gorm.io/gorm"
)

// PlayEventRepository persists playback history through the GORM side path.
type PlayEventRepository interface {
	Record(ctx context.Context, instrumentalID string) error
	CountByInstrumental(ctx context.Context, instrumentalID string) (int64, error)
}

type gormPlayEventRepository struct {
	DB *gorm.DB
}

// NewGormPlayEventRepository creates a new instance of gormPlayEventRepository.
func NewGormPlayEventRepository() PlayEventRepository {
	return &gormPlayEventRepository{DB: db.GormDB}
}

// Record appends one play event.
func (r *gormPlayEventRepository) Record(ctx context.Context, instrumentalID string) error {
	if r.DB == nil {
		return fmt.Errorf("GORM database not initialized")
	}

	event := &model.PlayEvent{InstrumentalID: instrumentalID}
	if err := r.DB.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to record play event for instrumental %s: %w", instrumentalID, err)
	}
	return nil
}

// CountByInstrumental returns the number of recorded plays for one instrumental.
func (r *gormPlayEventRepository) CountByInstrumental(ctx context.Context, instrumentalID string) (int64, error) {
	if r.DB == nil {
		return 0, fmt.Errorf("GORM database not initialized")
	}

	var count int64
	err := r.DB.WithContext(ctx).Model(&model.PlayEvent{}).
		Where("instrumental_id = ?", instrumentalID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count play events for instrumental %s: %w", instrumentalID, err)
	}
	return count, nil
}
