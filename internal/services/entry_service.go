package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"job_order/internal/logger"
	"job_order/internal/orderform"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// OrderStore is the persistence boundary behind the entry form. It is
// served in process by NewLocalStore and remotely by pkg/orderclient.
type OrderStore interface {
	FetchOrder(ctx context.Context, orderNo string) (*orderform.WirePayload, error)
	SaveOrder(ctx context.Context, payload *orderform.WirePayload, isUpdate bool) (*orderform.SaveResult, error)
}

type localStore struct {
	orders OrderService
}

// NewLocalStore adapts an OrderService to OrderStore.
func NewLocalStore(orders OrderService) OrderStore {
	return &localStore{orders: orders}
}

func (s *localStore) FetchOrder(ctx context.Context, orderNo string) (*orderform.WirePayload, error) {
	return s.orders.GetOrder(ctx, orderNo)
}

func (s *localStore) SaveOrder(ctx context.Context, payload *orderform.WirePayload, isUpdate bool) (*orderform.SaveResult, error) {
	return s.orders.SaveOrder(ctx, payload, isUpdate)
}

// SaveGuard allows one save at a time.
type SaveGuard struct {
	busy atomic.Bool
}

func (g *SaveGuard) TryAcquire() bool { return g.busy.CAS(false, true) }
func (g *SaveGuard) Release()         { g.busy.Store(false) }

// GuardRegistry hands out one SaveGuard per client session id. Every Get
// must be paired with a Done; the guard is dropped when its last holder is
// done.
type GuardRegistry struct {
	mu     sync.Mutex
	guards map[string]*guardRef
}

type guardRef struct {
	guard *SaveGuard
	users int
}

func (r *GuardRegistry) Get(sessionID string) *SaveGuard {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.guards == nil {
		r.guards = make(map[string]*guardRef)
	}
	ref, ok := r.guards[sessionID]
	if !ok {
		ref = &guardRef{guard: &SaveGuard{}}
		r.guards[sessionID] = ref
	}
	ref.users++
	return ref.guard
}

// Done releases one holder of the session's guard.
func (r *GuardRegistry) Done(sessionID string, g *SaveGuard) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ref, ok := r.guards[sessionID]
	if !ok || ref.guard != g {
		return
	}
	ref.users--
	if ref.users <= 0 {
		delete(r.guards, sessionID)
	}
}

// Session is one user's order form plus its in-flight save flag.
type Session struct {
	Form  *orderform.Form
	guard *SaveGuard
}

// EntryService drives the entry form: load, validate and save.
type EntryService struct {
	store OrderStore
	admin orderform.AdminFields
	log   logger.Logger
}

func NewEntryService(store OrderStore, admin orderform.AdminFields, log logger.Logger) *EntryService {
	return &EntryService{store: store, admin: admin, log: log}
}

// NewSession starts a session on an empty form.
func (e *EntryService) NewSession() *Session {
	return &Session{Form: orderform.NewForm(e.admin), guard: &SaveGuard{}}
}

// NewSessionWithGuard starts a session whose save flag is shared with other
// requests from the same client.
func (e *EntryService) NewSessionWithGuard(guard *SaveGuard) *Session {
	return &Session{Form: orderform.NewForm(e.admin), guard: guard}
}

// Open loads an existing order into the session form.
func (e *EntryService) Open(ctx context.Context, s *Session, orderNo string) error {
	payload, err := e.store.FetchOrder(ctx, strings.TrimSpace(orderNo))
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return err
		}
		e.log.Errorf(ctx, "failed to fetch order %s: %v", orderNo, err)
		return &PersistenceError{Op: "fetch order", Err: err}
	}
	s.Form.Load(*payload)
	return nil
}

// Save validates the form and hands it to the store. On any failure the
// form is left as it was. A new order gets its assigned number on success.
func (e *EntryService) Save(ctx context.Context, s *Session) (*orderform.SaveResult, error) {
	if !s.guard.TryAcquire() {
		return nil, ErrSaveInProgress
	}
	defer s.guard.Release()

	if res := s.Form.Validate(); !res.Valid {
		e.log.Infow(ctx, "order validation failed", zap.Strings("missing", res.Missing))
		return nil, res.Err()
	}

	isNew := strings.TrimSpace(s.Form.Header.OrderNo) == ""
	result, err := e.Persist(ctx, s.Form.Header, s.Form.Dates, s.Form.Rows)
	if err != nil {
		return nil, err
	}
	if isNew {
		s.Form.SetOrderNo(result.OrderNo.String())
	}
	return result, nil
}

// Persist serializes and stores an order. It repeats the submit validation;
// an invalid order here means a caller skipped Save's check.
func (e *EntryService) Persist(ctx context.Context, h orderform.Header, d orderform.Dates, items []orderform.LineItem) (*orderform.SaveResult, error) {
	if res := orderform.ValidateOrder(h, d, items); !res.Valid {
		e.log.Errorw(ctx, "order validation bypassed",
			zap.String("order", h.OrderNo),
			zap.Strings("missing", res.Missing))
		return nil, ErrValidationBypassed
	}

	payload := orderform.ToWire(h, d, items)
	result, err := e.store.SaveOrder(ctx, &payload, payload.IsUpdate())
	if err != nil {
		e.log.Errorf(ctx, "failed to save order %s: %v", payload.OrderHead.OrderNo, err)
		return nil, &PersistenceError{Op: "save order", Err: err}
	}
	if result.Status != orderform.StatusSuccess {
		e.log.Errorf(ctx, "store rejected order %s: %s", payload.OrderHead.OrderNo, result.Message)
		return nil, &PersistenceError{Op: "save order", Err: errors.New(result.Message)}
	}
	return result, nil
}
