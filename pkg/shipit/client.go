package shipit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// Config holds Shipit configuration.
type Config struct {
	Email       string
	Token       string
	Environment Environment
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string
	// OrdersBaseURL defaults to DefaultOrdersBaseURL.
	OrdersBaseURL string
	Timeout       time.Duration
	UseMock       bool // When true, uses mock API client
}

// Client is the Shipit API client.
//
// A Client is not safe for concurrent reconfiguration: calling SetEmail,
// SetToken or SetEnvironment while calls are in flight has undefined effect
// on those calls.
type Client struct {
	email         string
	token         string
	environment   Environment
	baseURL       string
	ordersBaseURL string

	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a new Shipit client.
// If cfg.UseMock is true, it uses a mock API client.
// Otherwise, it uses the real HTTP API client.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var apiClient APIClient

	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			Timeout: cfg.Timeout,
		})
	}

	return NewWithAPIClient(cfg, apiClient, logger, tracer)
}

// NewWithAPIClient creates a new Shipit client with a custom API client.
func NewWithAPIClient(cfg Config, apiClient APIClient, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	if logger == nil {
		logger = otelzap.New(zap.NewNop())
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	ordersBaseURL := cfg.OrdersBaseURL
	if ordersBaseURL == "" {
		ordersBaseURL = DefaultOrdersBaseURL
	}

	return &Client{
		email:         cfg.Email,
		token:         cfg.Token,
		environment:   cfg.Environment.normalize(),
		baseURL:       withTrailingSlash(baseURL),
		ordersBaseURL: withTrailingSlash(ordersBaseURL),
		apiClient:     apiClient,
		logger:        logger,
		tracer:        tracer,
	}
}

// Email returns the account email.
func (c *Client) Email() string { return c.email }

// SetEmail replaces the account email.
func (c *Client) SetEmail(email string) { c.email = email }

// Token returns the access token.
func (c *Client) Token() string { return c.token }

// SetToken replaces the access token.
func (c *Client) SetToken(token string) { c.token = token }

// Environment returns the environment payloads are prepared for.
func (c *Client) Environment() Environment { return c.environment }

// SetEnvironment replaces the environment. Unknown values mean production.
func (c *Client) SetEnvironment(env Environment) { c.environment = env.normalize() }

// CallOption adjusts a single call.
type CallOption func(*callOptions)

type callOptions struct {
	baseURL string
	accept  string
}

// WithBaseURL sends the call to another vendor host.
func WithBaseURL(baseURL string) CallOption {
	return func(o *callOptions) {
		o.baseURL = withTrailingSlash(baseURL)
	}
}

// WithAccept overrides the Accept header, selecting an API version.
func WithAccept(accept string) CallOption {
	return func(o *callOptions) {
		o.accept = accept
	}
}

// Call sends an authenticated request to endpoint and returns the response
// body. It fails with ErrMissingToken or ErrMissingEmail before any network
// I/O when credentials are not configured.
func (c *Client) Call(ctx context.Context, method, endpoint string, body any, opts ...CallOption) (Result, error) {
	if c.token == "" {
		return Result{}, ErrMissingToken
	}
	if c.email == "" {
		return Result{}, ErrMissingEmail
	}

	o := callOptions{baseURL: c.baseURL, accept: AcceptV2}
	for _, opt := range opts {
		opt(&o)
	}

	req := &Request{
		Method:   method,
		URL:      o.baseURL + strings.TrimPrefix(endpoint, "/"),
		Endpoint: endpoint,
		Header: http.Header{
			"Content-Type":    []string{"application/json"},
			HeaderEmail:       []string{c.email},
			HeaderAccessToken: []string{c.token},
			"Accept":          []string{o.accept},
		},
	}
	if req.HasBody() {
		req.Body = body
	}

	ctx, span := c.tracer.Start(ctx, "shipit.call", trace.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("shipit.endpoint", endpoint),
		attribute.String("shipit.accept", o.accept),
	))
	defer span.End()

	c.logger.Ctx(ctx).Debug("Calling Shipit",
		zap.String("method", method),
		zap.String("url", req.URL),
	)

	result, err := c.apiClient.Do(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, ErrorCode(err))
		c.logger.Ctx(ctx).Error("Shipit API error",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Error(err),
		)
		return Result{}, err
	}
	return result, nil
}

// GetRegions returns the regions served by the vendor.
func (c *Client) GetRegions(ctx context.Context) (Result, error) {
	return c.Call(ctx, http.MethodGet, "/regions", nil)
}

// GetCommunes returns the communes served by the vendor.
func (c *Client) GetCommunes(ctx context.Context) (Result, error) {
	return c.Call(ctx, http.MethodGet, "/communes", nil)
}

// ShipOrder creates a shipment from an order payload in the v4 orders format.
func (c *Client) ShipOrder(ctx context.Context, orderPayload any) (Result, error) {
	data := map[string]any{"order": orderPayload}
	return c.Call(ctx, http.MethodPost, "/shipments", data, WithAccept(AcceptV4))
}

// RequestShipping requests delivery of a single package.
func (c *Client) RequestShipping(ctx context.Context, req *ShippingRequest) (Result, error) {
	data := map[string]any{"package": req.ToVendorFormat(c.environment)}
	return c.Call(ctx, http.MethodPost, "/packages", data)
}

// RequestMassiveShipping requests delivery of several packages in one call.
// The batch succeeds or fails as a whole.
func (c *Client) RequestMassiveShipping(ctx context.Context, reqs []*ShippingRequest) (Result, error) {
	packages := make([]map[string]any, 0, len(reqs))
	for _, r := range reqs {
		packages = append(packages, r.ToVendorFormat(c.environment))
	}
	data := map[string]any{"packages": packages}
	return c.Call(ctx, http.MethodPost, "/packages/mass_create", data)
}

// GetAllShippings returns the packages shipped on date. A zero date means today.
func (c *Client) GetAllShippings(ctx context.Context, date time.Time) (Result, error) {
	if date.IsZero() {
		date = time.Now()
	}
	endpoint := fmt.Sprintf("/packages?year=%d&month=%d&day=%d", date.Year(), int(date.Month()), date.Day())
	return c.Call(ctx, http.MethodGet, endpoint, nil)
}

// GetShipping returns the package with the given numeric id.
func (c *Client) GetShipping(ctx context.Context, id string) (*Shipping, error) {
	id = strings.TrimSpace(id)
	if _, err := decimal.NewFromString(id); err != nil {
		return nil, invalidNumericID(id).WithCause(err)
	}

	result, err := c.Call(ctx, http.MethodGet, "/packages/"+id, nil)
	if err != nil {
		return nil, err
	}
	return NewShipping(objectOrEmpty(result), c)
}

// GetQuotation returns every rate the vendor offers for data.
func (c *Client) GetQuotation(ctx context.Context, data any) (Result, error) {
	return c.Call(ctx, http.MethodPost, "/rates", data, WithAccept(AcceptV4))
}

// GetBestQuotation returns the cheapest rate for data, or an empty JSON
// array when the vendor reports none. An object lower_price is returned
// even when it has no keys.
func (c *Client) GetBestQuotation(ctx context.Context, data any) (Result, error) {
	result, err := c.GetQuotation(ctx, data)
	if err != nil {
		return Result{}, err
	}

	lower := objectOrEmpty(result).Get("lower_price")
	if _, isObject := lower.(map[string]any); !isObject && isEmpty(lower) {
		return NewResult([]byte("[]")), nil
	}
	raw, err := json.Marshal(lower)
	if err != nil {
		return Result{}, err
	}
	return NewResult(raw), nil
}

// QueryOrders searches orders on the orders service.
func (c *Client) QueryOrders(ctx context.Context, query string) (Result, error) {
	return c.Call(ctx, http.MethodGet, "/orders?query="+url.QueryEscape(query), nil,
		WithBaseURL(c.ordersBaseURL),
		WithAccept(AcceptOrdersV1),
	)
}

// RequestOrder creates an order on the orders service.
func (c *Client) RequestOrder(ctx context.Context, order any) (Result, error) {
	data := map[string]any{"order": order}
	return c.Call(ctx, http.MethodPost, "/orders", data,
		WithBaseURL(c.ordersBaseURL),
		WithAccept(AcceptOrdersV1),
	)
}

// GetInventoryBySKU returns the stock record for sku.
func (c *Client) GetInventoryBySKU(ctx context.Context, sku string) (*Inventory, error) {
	result, err := c.Call(ctx, http.MethodGet, "/skus/by_name?name="+url.QueryEscape(sku), nil)
	if err != nil {
		return nil, err
	}
	return NewInventory(objectOrEmpty(result), c)
}

// objectOrEmpty returns the body as an Object. Bodies that are empty, not
// JSON, or not a JSON object yield an empty Object.
func objectOrEmpty(result Result) Object {
	v, err := result.Value()
	if err != nil {
		return Object{}
	}
	if m, ok := v.(map[string]any); ok {
		return Object(m)
	}
	return Object{}
}

func withTrailingSlash(u string) string {
	if strings.HasSuffix(u, "/") {
		return u
	}
	return u + "/"
}
