package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"job_order/internal/logger"
	"job_order/internal/models"
	"job_order/internal/orderform"
	"job_order/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderService struct {
	mu     sync.Mutex
	orders map[string]orderform.WirePayload
	saves  []bool
	err    error

	entered chan struct{}
	block   chan struct{}
}

func (s *fakeOrderService) GetOrder(_ context.Context, orderNo string) (*orderform.WirePayload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.orders[orderNo]
	if !ok {
		return nil, services.ErrOrderNotFound
	}
	return &p, nil
}

func (s *fakeOrderService) ListOrders(context.Context) ([]models.OrderSummary, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []models.OrderSummary{{OrderNo: 2}, {OrderNo: 1}}, nil
}

func (s *fakeOrderService) SaveOrder(_ context.Context, p *orderform.WirePayload, isUpdate bool) (*orderform.SaveResult, error) {
	if s.entered != nil {
		s.entered <- struct{}{}
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves = append(s.saves, isUpdate)
	if s.err != nil {
		return nil, s.err
	}
	no := p.OrderHead.OrderNo
	msg := "Order updated successfully"
	if !isUpdate {
		no, msg = "7", "Order created successfully"
	}
	s.orders[no.String()] = *p
	return &orderform.SaveResult{Status: orderform.StatusSuccess, Message: msg, OrderNo: no}, nil
}

func (s *fakeOrderService) TransitionStatus(_ context.Context, orderNo, event string) (string, error) {
	if _, ok := s.orders[orderNo]; !ok {
		return "", services.ErrOrderNotFound
	}
	return orderform.NextJobStatus(context.Background(), "", event)
}

type fakeLookupService struct {
	err error
}

func (f *fakeLookupService) Products(context.Context, string) ([]models.Product, error) {
	return []models.Product{{ProductId: 1, ProductName: "ZIPPER POUCH"}}, f.err
}
func (f *fakeLookupService) Customers(context.Context, string) ([]models.Customer, error) {
	return []models.Customer{{CustomerId: 1, CustomerName: "AATREYA EXPORT"}}, f.err
}
func (f *fakeLookupService) Measurements(context.Context) ([]models.Measurement, error) {
	return []models.Measurement{{MeasurementId: 1, MeasurementName: "INCH"}}, f.err
}
func (f *fakeLookupService) CreateProduct(_ context.Context, name, _ string) (*models.Product, error) {
	return &models.Product{ProductId: 11, ProductName: name}, f.err
}
func (f *fakeLookupService) CreateCustomer(_ context.Context, name, _, _ string) (*models.Customer, error) {
	return &models.Customer{CustomerId: 12, CustomerName: name}, f.err
}

func newTestRouter() (*gin.Engine, *fakeOrderService, *fakeLookupService) {
	gin.SetMode(gin.TestMode)
	log := logger.Nop()
	orders := &fakeOrderService{orders: map[string]orderform.WirePayload{}}
	lookups := &fakeLookupService{}
	entry := services.NewEntryService(services.NewLocalStore(orders), orderform.AdminFields{CompanyID: 1}, log)
	router := NewRouter(nil, log,
		NewAPIHandler(lookups, log),
		NewOrderHandler(orders, log),
		NewEntryHandler(entry, log),
	)
	return router, orders, lookups
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	out := map[string]interface{}{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

const createBody = `{
	"OrderHead": {"OrderNo": "NEW", "CustomerName": "AATREYA EXPORT", "PartyOrderNo": "254"},
	"OrderDetail": [{"Sno": 1, "ProductName": "Box", "Gauge": 50, "OrderPiece": "10"}]
}`

func TestCreateAndFetchOrder(t *testing.T) {
	router, orders, _ := newTestRouter()

	w, body := doJSON(t, router, http.MethodPost, "/api/orders", createBody)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Success", body["Status"])
	assert.Equal(t, "Order created successfully", body["Message"])
	assert.Equal(t, "7", body["OrderNo"])
	assert.Equal(t, []bool{false}, orders.saves)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w, body = doJSON(t, router, http.MethodGet, "/api/orders?orderNo=7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	head := body["OrderHead"].(map[string]interface{})
	assert.Equal(t, "AATREYA EXPORT", head["CustomerName"])
	detail := body["OrderDetail"].([]interface{})
	assert.Equal(t, "50", detail[0].(map[string]interface{})["Gauge"])

	w, body = doJSON(t, router, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["Orders"], 2)
}

func TestCreateOrderRejectsBadBody(t *testing.T) {
	router, orders, _ := newTestRouter()

	w, body := doJSON(t, router, http.MethodPost, "/api/orders", `{"OrderHead": {}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Error", body["Status"])
	assert.Equal(t, "Invalid request data", body["Message"])
	assert.NotEmpty(t, body["Details"])

	w, _ = doJSON(t, router, http.MethodPost, "/api/orders", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, orders.saves)
}

func TestUpdateOrderNeedsOrderNo(t *testing.T) {
	router, orders, _ := newTestRouter()

	w, body := doJSON(t, router, http.MethodPut, "/api/orders", createBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request data or missing OrderNo", body["Message"])
	assert.Empty(t, orders.saves)

	orders.err = services.ErrOrderNotFound
	w, _ = doJSON(t, router, http.MethodPut, "/api/orders", `{"OrderHead": {"OrderNo": 415}, "OrderDetail": []}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, []bool{true}, orders.saves)
}

func TestOrderErrorMapping(t *testing.T) {
	router, orders, _ := newTestRouter()

	w, body := doJSON(t, router, http.MethodGet, "/api/orders?orderNo=404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Order not found", body["Message"])

	orders.err = services.ErrSaveLocked
	w, _ = doJSON(t, router, http.MethodPut, "/api/orders", `{"OrderHead": {"OrderNo": "415"}, "OrderDetail": []}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	orders.err = &services.PersistenceError{Op: "list orders", Err: errors.New("db down")}
	w, body = doJSON(t, router, http.MethodGet, "/api/orders", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to fetch orders", body["Message"])
}

func TestTransitionStatus(t *testing.T) {
	router, orders, _ := newTestRouter()
	orders.orders["3"] = orderform.WirePayload{}

	w, body := doJSON(t, router, http.MethodPost, "/api/orders/3/status", map[string]string{"Event": "start"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, orderform.JobInProduction, body["JobStatus"])

	w, _ = doJSON(t, router, http.MethodPost, "/api/orders/3/status", map[string]string{"Event": "complete"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = doJSON(t, router, http.MethodPost, "/api/orders/3/status", map[string]string{"Event": "explode"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLookups(t *testing.T) {
	router, _, lookups := newTestRouter()

	w, body := doJSON(t, router, http.MethodGet, "/api/products?search=zip", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["Products"], 1)

	w, body = doJSON(t, router, http.MethodGet, "/api/customers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["Customers"], 1)

	w, body = doJSON(t, router, http.MethodGet, "/api/measurements", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["Measurements"], 1)

	w, body = doJSON(t, router, http.MethodPost, "/api/products", map[string]string{"ProductName": "ZIPPER POUCH"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(11), body["ProductId"])

	w, _ = doJSON(t, router, http.MethodPost, "/api/customers", map[string]string{"MobileNo": "1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	lookups.err = &services.PersistenceError{Op: "load products", Err: errors.New("timeout")}
	w, body = doJSON(t, router, http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to fetch products", body["Message"])

	w, _ = doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEntryFieldAndWeight(t *testing.T) {
	router, _, _ := newTestRouter()

	_, body := doJSON(t, router, http.MethodPost, "/api/entry/field", map[string]string{"Field": "Width", "Value": "12.345"})
	assert.Equal(t, "", body["Value"])
	_, body = doJSON(t, router, http.MethodPost, "/api/entry/field", map[string]string{"Field": "Weight", "Value": "12.345"})
	assert.Equal(t, "12.345", body["Value"])

	_, body = doJSON(t, router, http.MethodPost, "/api/entry/required-weight",
		map[string]string{"Width": "10", "Length": "20", "Gauge": "50", "Pieces": "100"})
	assert.Equal(t, "1320.000", body["RequiredWeight"])
}

func validEntry() map[string]interface{} {
	return map[string]interface{}{
		"orderDate":   "2025-08-05",
		"customer":    "GLOBAL PACKAGING",
		"poNo":        "254",
		"poDate":      "2025-08-01",
		"dueDate":     "2025-09-01",
		"measurement": "INCH",
		"rows": []map[string]interface{}{
			{"product": "Box", "width": "10", "length": "20", "gauge": "50", "pieces": "100", "rateFor": "Piece"},
			{"product": ""},
		},
	}
}

func TestEntrySubmit(t *testing.T) {
	router, orders, _ := newTestRouter()

	w, body := doJSON(t, router, http.MethodPost, "/api/entry/submit", validEntry())
	require.Equal(t, http.StatusOK, w.Code, body)
	assert.Equal(t, "7", body["OrderNo"])
	assert.Equal(t, []bool{false}, orders.saves)

	saved := orders.orders["7"]
	require.Len(t, saved.OrderDetail, 1)
	assert.Equal(t, "1320.000", saved.OrderDetail[0].RequiredWeight.String())
	assert.Equal(t, "08/05/2025", saved.OrderHead.OrderDate)
	assert.Equal(t, 1, saved.OrderHead.CompanyId)

	w, body = doJSON(t, router, http.MethodGet, "/api/entry/orders/7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	form := body["Form"].(map[string]interface{})
	assert.Equal(t, "2025-08-05", form["orderDate"])
	assert.Len(t, form["rows"], orderform.MinGridRows)
	assert.Equal(t, "100", form["totalPieces"])
}

func TestEntrySubmitValidation(t *testing.T) {
	router, orders, _ := newTestRouter()

	req := validEntry()
	req["customer"] = ""
	req["dueDate"] = "not a date"
	w, body := doJSON(t, router, http.MethodPost, "/api/entry/submit", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []interface{}{"Customer", "Due Date"}, body["Missing"])
	assert.Empty(t, orders.saves)

	req = validEntry()
	req["measurement"] = "FEET"
	w, _ = doJSON(t, router, http.MethodPost, "/api/entry/submit", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEntrySubmitUpdate(t *testing.T) {
	router, orders, _ := newTestRouter()
	req := validEntry()
	req["orderNo"] = "415"

	w, body := doJSON(t, router, http.MethodPost, "/api/entry/submit", req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "415", body["OrderNo"])
	assert.Equal(t, []bool{true}, orders.saves)
}

func submitInSession(t *testing.T, router http.Handler, sessionID string) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(validEntry())
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/entry/submit", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(entrySessionHeader, sessionID)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestEntrySubmitRejectsWhileSessionSaving(t *testing.T) {
	router, orders, _ := newTestRouter()
	orders.entered = make(chan struct{})
	orders.block = make(chan struct{})

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		req := httptest.NewRequest(http.MethodPost, "/api/entry/submit", bytes.NewReader(mustJSON(validEntry())))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(entrySessionHeader, "tab-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		first <- w
	}()
	<-orders.entered

	// both later submits must see the save still running
	second := submitInSession(t, router, "tab-1")
	assert.Equal(t, http.StatusConflict, second.Code)
	third := submitInSession(t, router, "tab-1")
	assert.Equal(t, http.StatusConflict, third.Code)

	close(orders.block)
	w := <-first
	assert.Equal(t, http.StatusOK, w.Code)

	orders.mu.Lock()
	assert.Equal(t, []bool{false}, orders.saves)
	orders.mu.Unlock()

	// the session is free again once the save finished
	orders.entered = nil
	assert.Equal(t, http.StatusOK, submitInSession(t, router, "tab-1").Code)
}

func mustJSON(v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
