package repository

import (
	"context"
	"strings"

	"job_order/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomerRepository interface {
	Search(ctx context.Context, term string) ([]models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Search(ctx context.Context, term string) ([]models.Customer, error) {
	var customers []models.Customer
	q := r.db.WithContext(ctx).Where(map[string]interface{}{"IsActive": true})
	if term = strings.TrimSpace(term); term != "" {
		q = q.Where(clause.Like{Column: clause.Column{Name: "CustomerName"}, Value: "%" + term + "%"})
	}
	err := q.Order(clause.OrderByColumn{Column: clause.Column{Name: "CustomerName"}}).Find(&customers).Error
	return customers, err
}

func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}
