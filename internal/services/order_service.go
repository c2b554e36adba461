package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"job_order/internal/logger"
	"job_order/internal/models"
	"job_order/internal/orderform"
	"job_order/internal/repository"

	"go.uber.org/zap"
)

const recentOrderLimit = 100

type OrderService interface {
	GetOrder(ctx context.Context, orderNo string) (*orderform.WirePayload, error)
	ListOrders(ctx context.Context) ([]models.OrderSummary, error)
	SaveOrder(ctx context.Context, payload *orderform.WirePayload, isUpdate bool) (*orderform.SaveResult, error)
	TransitionStatus(ctx context.Context, orderNo, event string) (string, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	locker    OrderLocker
	lockTTL   time.Duration
	log       logger.Logger
}

func NewOrderService(orderRepo repository.OrderRepository, locker OrderLocker, lockTTL time.Duration, log logger.Logger) OrderService {
	return &orderService{orderRepo: orderRepo, locker: locker, lockTTL: lockTTL, log: log}
}

func (s *orderService) GetOrder(ctx context.Context, orderNo string) (*orderform.WirePayload, error) {
	no, err := parseOrderNo(orderNo)
	if err != nil {
		return nil, err
	}

	head, err := s.orderRepo.GetByOrderNo(ctx, no)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, &PersistenceError{Op: "fetch order", Err: err}
	}
	return modelToPayload(head)
}

func (s *orderService) ListOrders(ctx context.Context) ([]models.OrderSummary, error) {
	orders, err := s.orderRepo.ListRecent(ctx, recentOrderLimit)
	if err != nil {
		return nil, &PersistenceError{Op: "list orders", Err: err}
	}
	return orders, nil
}

// SaveOrder inserts a new order or replaces an existing one.
func (s *orderService) SaveOrder(ctx context.Context, payload *orderform.WirePayload, isUpdate bool) (*orderform.SaveResult, error) {
	head, err := payloadToModel(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if !isUpdate {
		if err := s.orderRepo.Create(ctx, head); err != nil {
			return nil, &PersistenceError{Op: "create order", Err: err}
		}
		no := strconv.FormatUint(uint64(head.OrderNo), 10)
		s.log.Infow(logger.WithOrderNo(ctx, no), "order created", zap.Int("rows", len(head.Details)))
		return &orderform.SaveResult{
			Status:  orderform.StatusSuccess,
			Message: "Order created successfully",
			OrderNo: orderform.FlexString(no),
		}, nil
	}

	head.OrderNo, err = parseOrderNo(payload.OrderHead.OrderNo.String())
	if err != nil {
		return nil, err
	}
	no := strconv.FormatUint(uint64(head.OrderNo), 10)
	ctx = logger.WithOrderNo(ctx, no)

	token, err := s.locker.AcquireOrderLock(ctx, no, s.lockTTL)
	if err != nil {
		if errors.Is(err, ErrSaveLocked) {
			return nil, ErrSaveLocked
		}
		return nil, &PersistenceError{Op: "acquire order lock", Err: err}
	}
	defer func() {
		if err := s.locker.ReleaseOrderLock(ctx, no, token); err != nil {
			s.log.Warnf(ctx, "failed to release order lock: %v", err)
		}
	}()

	err = s.orderRepo.Replace(ctx, head)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, &PersistenceError{Op: "update order", Err: err}
	}

	s.log.Infow(ctx, "order updated", zap.Int("rows", len(head.Details)))
	return &orderform.SaveResult{
		Status:  orderform.StatusSuccess,
		Message: "Order updated successfully",
		OrderNo: orderform.FlexString(no),
	}, nil
}

// TransitionStatus moves the job status of an order along its lifecycle.
func (s *orderService) TransitionStatus(ctx context.Context, orderNo, event string) (string, error) {
	no, err := parseOrderNo(orderNo)
	if err != nil {
		return "", err
	}

	head, err := s.orderRepo.GetByOrderNo(ctx, no)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrOrderNotFound
	}
	if err != nil {
		return "", &PersistenceError{Op: "fetch order", Err: err}
	}

	next, err := orderform.NextJobStatus(ctx, head.JobStatus, event)
	if err != nil {
		return "", err
	}
	if err := s.orderRepo.UpdateStatus(ctx, no, next); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrOrderNotFound
		}
		return "", &PersistenceError{Op: "update job status", Err: err}
	}

	s.log.Infof(logger.WithOrderNo(ctx, orderNo), "job status %s -> %s", orderform.NormalizeJobStatus(head.JobStatus), next)
	return next, nil
}
