package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"job_order/internal/models"
	"job_order/internal/orderform"
	"job_order/internal/repository"
)

type fakeOrderRepo struct {
	mu      sync.Mutex
	orders  map[uint]models.OrderHead
	nextNo  uint
	failErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[uint]models.OrderHead{}, nextNo: 100}
}

func (r *fakeOrderRepo) Create(_ context.Context, head *models.OrderHead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return r.failErr
	}
	r.nextNo++
	head.OrderNo = r.nextNo
	for i := range head.Details {
		head.Details[i].OrderNo = head.OrderNo
		head.Details[i].AutoIncrement = int64(i + 1)
	}
	r.orders[head.OrderNo] = *head
	return nil
}

func (r *fakeOrderRepo) Replace(_ context.Context, head *models.OrderHead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return r.failErr
	}
	if _, ok := r.orders[head.OrderNo]; !ok {
		return repository.ErrNotFound
	}
	r.orders[head.OrderNo] = *head
	return nil
}

func (r *fakeOrderRepo) GetByOrderNo(_ context.Context, orderNo uint) (*models.OrderHead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return nil, r.failErr
	}
	head, ok := r.orders[orderNo]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &head, nil
}

func (r *fakeOrderRepo) ListRecent(_ context.Context, limit int) ([]models.OrderSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.OrderSummary, 0)
	for no := r.nextNo; no > 0 && len(out) < limit; no-- {
		if h, ok := r.orders[no]; ok {
			out = append(out, models.OrderSummary{OrderNo: h.OrderNo, CustomerName: h.CustomerName, JobStatus: h.JobStatus})
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, orderNo uint, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.orders[orderNo]
	if !ok {
		return repository.ErrNotFound
	}
	h.JobStatus = status
	r.orders[orderNo] = h
	return nil
}

type fakeLocker struct {
	mu       sync.Mutex
	held     map[string]bool
	acquired []string
}

func newFakeLocker() *fakeLocker { return &fakeLocker{held: map[string]bool{}} }

func (l *fakeLocker) AcquireOrderLock(_ context.Context, orderNo string, _ time.Duration) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[orderNo] {
		return "", ErrSaveLocked
	}
	l.held[orderNo] = true
	l.acquired = append(l.acquired, orderNo)
	return "tok-" + orderNo, nil
}

func (l *fakeLocker) ReleaseOrderLock(_ context.Context, orderNo, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if token == "tok-"+orderNo {
		delete(l.held, orderNo)
	}
	return nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	hits    int
}

func newFakeCache() *fakeCache { return &fakeCache{entries: map[string][]byte{}} }

func (c *fakeCache) SetLookup(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = b
	return nil
}

func (c *fakeCache) GetLookup(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.entries[key]
	if !ok {
		return errors.New("miss")
	}
	c.hits++
	return json.Unmarshal(b, dest)
}

func (c *fakeCache) InvalidateLookups(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	return nil
}

type saveCall struct {
	payload  orderform.WirePayload
	isUpdate bool
}

type fakeStore struct {
	mu      sync.Mutex
	calls   []saveCall
	orders  map[string]orderform.WirePayload
	result  *orderform.SaveResult
	err     error
	entered chan struct{}
	block   chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{orders: map[string]orderform.WirePayload{}}
}

func (s *fakeStore) FetchOrder(_ context.Context, orderNo string) (*orderform.WirePayload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.orders[orderNo]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return &p, nil
}

func (s *fakeStore) SaveOrder(_ context.Context, payload *orderform.WirePayload, isUpdate bool) (*orderform.SaveResult, error) {
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, saveCall{payload: *payload, isUpdate: isUpdate})
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	no := payload.OrderHead.OrderNo
	if !isUpdate {
		no = "501"
	}
	return &orderform.SaveResult{Status: orderform.StatusSuccess, OrderNo: no}, nil
}

type fakeProductRepo struct {
	products []models.Product
	searches int
}

func (r *fakeProductRepo) Search(_ context.Context, term string) ([]models.Product, error) {
	r.searches++
	out := make([]models.Product, 0)
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.ProductName), strings.ToLower(term)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Create(_ context.Context, p *models.Product) error {
	p.ProductId = uint(len(r.products) + 1)
	r.products = append(r.products, *p)
	return nil
}

type fakeCustomerRepo struct {
	customers []models.Customer
	err       error
}

func (r *fakeCustomerRepo) Search(_ context.Context, term string) ([]models.Customer, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.customers, nil
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *models.Customer) error {
	if r.err != nil {
		return r.err
	}
	r.customers = append(r.customers, *c)
	return nil
}

type fakeMeasurementRepo struct{}

func (fakeMeasurementRepo) ListActive(context.Context) ([]models.Measurement, error) {
	return []models.Measurement{{MeasurementId: 1, MeasurementName: "INCH"}, {MeasurementId: 2, MeasurementName: "CM"}}, nil
}
