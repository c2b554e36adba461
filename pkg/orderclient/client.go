package orderclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"job_order/internal/models"
	"job_order/internal/orderform"
	"job_order/internal/services"
)

// Client talks to the order entry JSON API. It satisfies services.OrderStore
// so an entry session can run against a remote server.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

var _ services.OrderStore = (*Client)(nil)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
	Missing    []string
}

func (e *APIError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("order api: %d %s (%s)", e.StatusCode, e.Message, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("order api: %d %s", e.StatusCode, e.Message)
}

type orderResponse struct {
	Status      string                 `json:"Status"`
	OrderHead   orderform.WireHead     `json:"OrderHead"`
	OrderDetail []orderform.WireDetail `json:"OrderDetail"`
}

type ordersResponse struct {
	Status string                `json:"Status"`
	Orders []models.OrderSummary `json:"Orders"`
}

type productsResponse struct {
	Status   string           `json:"Status"`
	Products []models.Product `json:"Products"`
}

type customersResponse struct {
	Status    string            `json:"Status"`
	Customers []models.Customer `json:"Customers"`
}

type errorResponse struct {
	Status  string   `json:"Status"`
	Message string   `json:"Message"`
	Missing []string `json:"Missing"`
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchOrder loads one order. A 404 maps to services.ErrOrderNotFound.
func (c *Client) FetchOrder(ctx context.Context, orderNo string) (*orderform.WirePayload, error) {
	var resp orderResponse
	q := url.Values{"orderNo": {orderNo}}
	if err := c.do(ctx, http.MethodGet, "/api/orders?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &orderform.WirePayload{OrderHead: resp.OrderHead, OrderDetail: resp.OrderDetail}, nil
}

// SaveOrder sends a new order with POST and an existing one with PUT.
func (c *Client) SaveOrder(ctx context.Context, payload *orderform.WirePayload, isUpdate bool) (*orderform.SaveResult, error) {
	method := http.MethodPost
	if isUpdate {
		method = http.MethodPut
	}
	var res orderform.SaveResult
	if err := c.do(ctx, method, "/api/orders", payload, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// FetchAllOrders returns the most recent order headers.
func (c *Client) FetchAllOrders(ctx context.Context) ([]models.OrderSummary, error) {
	var resp ordersResponse
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

func (c *Client) FetchProducts(ctx context.Context, search string) ([]models.Product, error) {
	var resp productsResponse
	if err := c.do(ctx, http.MethodGet, withSearch("/api/products", search), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

func (c *Client) FetchCustomers(ctx context.Context, search string) ([]models.Customer, error) {
	var resp customersResponse
	if err := c.do(ctx, http.MethodGet, withSearch("/api/customers", search), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Customers, nil
}

func withSearch(path, search string) string {
	if search = strings.TrimSpace(search); search != "" {
		return path + "?" + url.Values{"search": {search}}.Encode()
	}
	return path
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request data: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func decodeError(code int, data []byte) error {
	var e errorResponse
	if err := json.Unmarshal(data, &e); err != nil || e.Message == "" {
		e.Message = http.StatusText(code)
	}

	switch {
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %s", services.ErrOrderNotFound, e.Message)
	case code == http.StatusConflict:
		return fmt.Errorf("%w: %s", services.ErrSaveLocked, e.Message)
	case code == http.StatusBadRequest && len(e.Missing) > 0:
		return &orderform.ValidationError{Missing: e.Missing}
	}
	return &APIError{StatusCode: code, Message: e.Message, Missing: e.Missing}
}

// IsNotFound reports whether err is a missing-order answer.
func IsNotFound(err error) bool {
	return errors.Is(err, services.ErrOrderNotFound)
}
