package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// RESTClient talks to the provider's JSON API with basic auth, one instance
// per merchant account. The key pair decides which isolated account the
// provider routes the call to.
type RESTClient struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
}

type RESTOption func(*RESTClient)

// WithHTTPClient overrides the transport, mostly for tests.
func WithHTTPClient(c *http.Client) RESTOption {
	return func(r *RESTClient) { r.httpClient = c }
}

func NewRESTClient(baseURL, keyID, keySecret string, opts ...RESTOption) *RESTClient {
	c := &RESTClient{
		baseURL:    baseURL,
		keyID:      keyID,
		keySecret:  keySecret,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RESTClient) CreateCustomer(ctx context.Context, params CustomerParams) (*Customer, error) {
	body := map[string]any{
		"name":          params.Name,
		"email":         params.Email,
		"contact":       params.Contact,
		"fail_existing": boolFlag(params.FailExisting),
	}

	var out Customer
	if err := c.do(ctx, http.MethodPost, "/customers", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) FetchCustomer(ctx context.Context, customerID string) (*Customer, error) {
	var out Customer
	if err := c.do(ctx, http.MethodGet, "/customers/"+url.PathEscape(customerID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) EditCustomer(ctx context.Context, customerID string, params CustomerParams) (*Customer, error) {
	body := map[string]any{
		"name":    params.Name,
		"email":   params.Email,
		"contact": params.Contact,
	}

	var out Customer
	if err := c.do(ctx, http.MethodPut, "/customers/"+url.PathEscape(customerID), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) FetchTokens(ctx context.Context, customerID string) (*TokenList, error) {
	var out TokenList
	if err := c.do(ctx, http.MethodGet, "/customers/"+url.PathEscape(customerID)+"/tokens", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) DeleteToken(ctx context.Context, customerID, tokenID string) error {
	path := "/customers/" + url.PathEscape(customerID) + "/tokens/" + url.PathEscape(tokenID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *RESTClient) CreateOrder(ctx context.Context, params OrderParams) (*Order, error) {
	var out Order
	if err := c.do(ctx, http.MethodPost, "/orders", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) CreateRecurringPayment(ctx context.Context, params RecurringParams) (*Payment, error) {
	var out Payment
	if err := c.do(ctx, http.MethodPost, "/payments/create/recurring", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) do(ctx context.Context, method, path string, body, out any) error {
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		buf = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode gateway response: %w body=%s", err, string(raw))
	}
	return nil
}

// parseError pulls the provider's {"error": {"code", "description"}} body
// when present; otherwise the status code alone carries the failure.
func parseError(status int, raw []byte) error {
	var envelope struct {
		Error struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	}

	gerr := &Error{StatusCode: status}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		gerr.Code = envelope.Error.Code
		gerr.Description = envelope.Error.Description
	}
	return gerr
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
