package services

import (
	"context"
	"strings"
	"time"

	"job_order/internal/logger"
	"job_order/internal/models"
	"job_order/internal/repository"
)

const (
	productsKey     = "products:"
	customersKey    = "customers:"
	measurementsKey = "measurements:"
)

// LookupService serves the dropdown lists of the entry form.
type LookupService interface {
	Products(ctx context.Context, search string) ([]models.Product, error)
	Customers(ctx context.Context, search string) ([]models.Customer, error)
	Measurements(ctx context.Context) ([]models.Measurement, error)
	CreateProduct(ctx context.Context, name, description string) (*models.Product, error)
	CreateCustomer(ctx context.Context, name, mobileNo, address string) (*models.Customer, error)
}

type lookupService struct {
	productRepo     repository.ProductRepository
	customerRepo    repository.CustomerRepository
	measurementRepo repository.MeasurementRepository
	cache           LookupCache
	ttl             time.Duration
	log             logger.Logger
}

func NewLookupService(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	measurementRepo repository.MeasurementRepository,
	cache LookupCache,
	ttl time.Duration,
	log logger.Logger,
) LookupService {
	return &lookupService{
		productRepo:     productRepo,
		customerRepo:    customerRepo,
		measurementRepo: measurementRepo,
		cache:           cache,
		ttl:             ttl,
		log:             log,
	}
}

func searchKey(prefix, search string) string {
	return prefix + strings.ToLower(strings.TrimSpace(search))
}

// cached returns the cached value for key or loads and stores it. Cache
// failures only cost a database round trip.
func cached[T any](ctx context.Context, s *lookupService, key string, load func() ([]T, error)) ([]T, error) {
	var out []T
	if err := s.cache.GetLookup(ctx, key, &out); err == nil {
		return out, nil
	}

	out, err := load()
	if err != nil {
		return nil, &PersistenceError{Op: "load " + strings.TrimSuffix(key, ":"), Err: err}
	}
	if out == nil {
		out = []T{}
	}
	if err := s.cache.SetLookup(ctx, key, out, s.ttl); err != nil {
		s.log.Warnf(ctx, "failed to cache %s: %v", key, err)
	}
	return out, nil
}

func (s *lookupService) Products(ctx context.Context, search string) ([]models.Product, error) {
	return cached(ctx, s, searchKey(productsKey, search), func() ([]models.Product, error) {
		return s.productRepo.Search(ctx, search)
	})
}

func (s *lookupService) Customers(ctx context.Context, search string) ([]models.Customer, error) {
	return cached(ctx, s, searchKey(customersKey, search), func() ([]models.Customer, error) {
		return s.customerRepo.Search(ctx, search)
	})
}

func (s *lookupService) Measurements(ctx context.Context) ([]models.Measurement, error) {
	return cached(ctx, s, measurementsKey, func() ([]models.Measurement, error) {
		return s.measurementRepo.ListActive(ctx)
	})
}

func (s *lookupService) CreateProduct(ctx context.Context, name, description string) (*models.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	product := &models.Product{ProductName: name, Description: strings.TrimSpace(description), IsActive: true}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, &PersistenceError{Op: "create product", Err: err}
	}
	s.invalidate(ctx, productsKey)
	return product, nil
}

func (s *lookupService) CreateCustomer(ctx context.Context, name, mobileNo, address string) (*models.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	customer := &models.Customer{
		CustomerName: name,
		MobileNo:     strings.TrimSpace(mobileNo),
		Address:      strings.TrimSpace(address),
		IsActive:     true,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, &PersistenceError{Op: "create customer", Err: err}
	}
	s.invalidate(ctx, customersKey)
	return customer, nil
}

func (s *lookupService) invalidate(ctx context.Context, prefix string) {
	if err := s.cache.InvalidateLookups(ctx, prefix); err != nil {
		s.log.Warnf(ctx, "failed to invalidate %s cache: %v", prefix, err)
	}
}
