package repository

import (
	"context"
	"strings"

	"job_order/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Search(ctx context.Context, term string) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Search(ctx context.Context, term string) ([]models.Product, error) {
	var products []models.Product
	q := r.db.WithContext(ctx).Where(map[string]interface{}{"IsActive": true})
	if term = strings.TrimSpace(term); term != "" {
		q = q.Where(clause.Like{Column: clause.Column{Name: "ProductName"}, Value: "%" + term + "%"})
	}
	err := q.Order(clause.OrderByColumn{Column: clause.Column{Name: "ProductName"}}).Find(&products).Error
	return products, err
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}
