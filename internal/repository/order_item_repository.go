package repository

import (
	"job_order/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderDetailRepository manages the line items of one order. It runs on
// whatever handle it was bound to, usually an open transaction.
type OrderDetailRepository interface {
	WithTx(tx *gorm.DB) OrderDetailRepository
	GetByOrderNo(orderNo uint) ([]models.OrderDetail, error)
	InsertForOrder(orderNo uint, details []models.OrderDetail) error
	DeleteByOrderNo(orderNo uint) error
}

type orderDetailRepository struct {
	db *gorm.DB
}

func NewOrderDetailRepository(db *gorm.DB) OrderDetailRepository {
	return &orderDetailRepository{db: db}
}

func (r *orderDetailRepository) WithTx(tx *gorm.DB) OrderDetailRepository {
	return &orderDetailRepository{db: tx}
}

func (r *orderDetailRepository) GetByOrderNo(orderNo uint) ([]models.OrderDetail, error) {
	var details []models.OrderDetail
	err := r.db.Where(byOrderNo(orderNo)).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "Sno"}}).
		Find(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

// InsertForOrder always assigns fresh row ids.
func (r *orderDetailRepository) InsertForOrder(orderNo uint, details []models.OrderDetail) error {
	if len(details) == 0 {
		return nil
	}
	rows := make([]models.OrderDetail, len(details))
	for i, d := range details {
		d.AutoIncrement = 0
		d.OrderNo = orderNo
		rows[i] = d
	}
	return r.db.Create(&rows).Error
}

func (r *orderDetailRepository) DeleteByOrderNo(orderNo uint) error {
	return r.db.Where(byOrderNo(orderNo)).Delete(&models.OrderDetail{}).Error
}
