package repository

import (
	"context"
	"errors"

	"job_order/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

// Columns rewritten when an order is saved again. Admin fields keep the
// values from the first insert.
var orderUpdateColumns = []string{
	"OrderDate",
	"CustomerName",
	"CustomerMobileNo",
	"PartyOrderNo",
	"PartyOrderDate",
	"DueDate",
	"Measurement",
	"Remarks",
	"TotalOrderPiece",
	"TotalOrderWeight",
	"JobStatus",
}

type OrderRepository interface {
	Create(ctx context.Context, head *models.OrderHead) error
	Replace(ctx context.Context, head *models.OrderHead) error
	GetByOrderNo(ctx context.Context, orderNo uint) (*models.OrderHead, error)
	ListRecent(ctx context.Context, limit int) ([]models.OrderSummary, error)
	UpdateStatus(ctx context.Context, orderNo uint, status string) error
}

type orderRepository struct {
	db      *gorm.DB
	details OrderDetailRepository
}

func NewOrderRepository(db *gorm.DB, details OrderDetailRepository) OrderRepository {
	return &orderRepository{db: db, details: details}
}

func byOrderNo(orderNo uint) map[string]interface{} {
	return map[string]interface{}{"OrderNo": orderNo}
}

// Create inserts the head and its details in one transaction and sets
// head.OrderNo to the assigned number.
func (r *orderRepository) Create(ctx context.Context, head *models.OrderHead) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(head).Error; err != nil {
			return err
		}
		return r.details.WithTx(tx).InsertForOrder(head.OrderNo, head.Details)
	})
}

// Replace updates an existing head and swaps all of its details.
func (r *orderRepository) Replace(ctx context.Context, head *models.OrderHead) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.OrderHead
		err := tx.Select("OrderNo").Where(byOrderNo(head.OrderNo)).Take(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		err = tx.Model(&models.OrderHead{}).
			Where(byOrderNo(head.OrderNo)).
			Select(orderUpdateColumns).
			Updates(head).Error
		if err != nil {
			return err
		}

		details := r.details.WithTx(tx)
		if err := details.DeleteByOrderNo(head.OrderNo); err != nil {
			return err
		}
		return details.InsertForOrder(head.OrderNo, head.Details)
	})
}

func (r *orderRepository) GetByOrderNo(ctx context.Context, orderNo uint) (*models.OrderHead, error) {
	var head models.OrderHead
	err := r.db.WithContext(ctx).Where(byOrderNo(orderNo)).Take(&head).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	head.Details, err = r.details.WithTx(r.db.WithContext(ctx)).GetByOrderNo(orderNo)
	if err != nil {
		return nil, err
	}
	return &head, nil
}

func (r *orderRepository) ListRecent(ctx context.Context, limit int) ([]models.OrderSummary, error) {
	var orders []models.OrderSummary
	err := r.db.WithContext(ctx).
		Model(&models.OrderHead{}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "OrderNo"}, Desc: true}).
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderNo uint, status string) error {
	res := r.db.WithContext(ctx).
		Model(&models.OrderHead{}).
		Where(byOrderNo(orderNo)).
		Update("JobStatus", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
