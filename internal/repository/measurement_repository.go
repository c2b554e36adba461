package repository

import (
	"context"

	"job_order/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MeasurementRepository interface {
	ListActive(ctx context.Context) ([]models.Measurement, error)
}

type measurementRepository struct {
	db *gorm.DB
}

func NewMeasurementRepository(db *gorm.DB) MeasurementRepository {
	return &measurementRepository{db: db}
}

func (r *measurementRepository) ListActive(ctx context.Context) ([]models.Measurement, error) {
	var measurements []models.Measurement
	err := r.db.WithContext(ctx).
		Where(map[string]interface{}{"IsActive": true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "MeasurementId"}}).
		Find(&measurements).Error
	return measurements, err
}
