package graphql

import (
	"context"
	"time"

	"github.com/tournevent/shipit/internal/telemetry"
	"github.com/tournevent/shipit/pkg/shipit"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Resolver is the root resolver for the GraphQL schema.
// It holds dependencies needed by all resolvers.
type Resolver struct {
	Client  *shipit.Client
	Logger  *otelzap.Logger
	Metrics *telemetry.Metrics
}

// NewResolver creates a new resolver with the given dependencies.
func NewResolver(client *shipit.Client, logger *otelzap.Logger, metrics *telemetry.Metrics) *Resolver {
	if logger == nil {
		logger = otelzap.New(zap.NewNop())
	}
	return &Resolver{
		Client:  client,
		Logger:  logger,
		Metrics: metrics,
	}
}

// observe records the outcome of one vendor-backed operation.
func (r *Resolver) observe(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
		r.Logger.Ctx(ctx).Error("Operation failed",
			zap.String("operation", operation),
			zap.Error(err),
		)
	}
	if r.Metrics == nil {
		return
	}
	r.Metrics.RecordRequest(operation, status, time.Since(start).Seconds())
	if err != nil {
		r.Metrics.RecordError(shipit.ErrorCode(err))
	}
}

// Health reports service liveness.
func (r *Resolver) Health(ctx context.Context) (string, error) {
	return "ok", nil
}

// Regions lists vendor regions.
func (r *Resolver) Regions(ctx context.Context) (shipit.Result, error) {
	start := time.Now()
	res, err := r.Client.GetRegions(ctx)
	r.observe(ctx, "regions", start, err)
	return res, err
}

// Communes lists vendor communes.
func (r *Resolver) Communes(ctx context.Context) (shipit.Result, error) {
	start := time.Now()
	res, err := r.Client.GetCommunes(ctx)
	r.observe(ctx, "communes", start, err)
	return res, err
}

// Shippings lists the packages of date, formatted YYYY-MM-DD. An empty date
// means today.
func (r *Resolver) Shippings(ctx context.Context, date string) (shipit.Result, error) {
	start := time.Now()
	day, err := parseDate(date)
	if err != nil {
		r.observe(ctx, "shippings", start, err)
		return shipit.Result{}, err
	}
	res, err := r.Client.GetAllShippings(ctx, day)
	r.observe(ctx, "shippings", start, err)
	return res, err
}

// Shipping returns one package.
func (r *Resolver) Shipping(ctx context.Context, id string) (shipit.Object, error) {
	start := time.Now()
	s, err := r.Client.GetShipping(ctx, id)
	r.observe(ctx, "shipping", start, err)
	if err != nil {
		return nil, err
	}
	return s.ToMap(), nil
}

// Inventory returns the stock record of sku.
func (r *Resolver) Inventory(ctx context.Context, sku string) (shipit.Object, error) {
	start := time.Now()
	inv, err := r.Client.GetInventoryBySKU(ctx, sku)
	r.observe(ctx, "inventory", start, err)
	if err != nil {
		return nil, err
	}
	return inv.ToMap(), nil
}

// Orders searches the orders service.
func (r *Resolver) Orders(ctx context.Context, query string) (shipit.Result, error) {
	start := time.Now()
	res, err := r.Client.QueryOrders(ctx, query)
	r.observe(ctx, "orders", start, err)
	return res, err
}

// Quotation returns every rate for input.
func (r *Resolver) Quotation(ctx context.Context, input any) (shipit.Result, error) {
	start := time.Now()
	res, err := r.Client.GetQuotation(ctx, input)
	r.observe(ctx, "quotation", start, err)
	return res, err
}

// BestQuotation returns the cheapest rate for input.
func (r *Resolver) BestQuotation(ctx context.Context, input any) (shipit.Result, error) {
	start := time.Now()
	res, err := r.Client.GetBestQuotation(ctx, input)
	r.observe(ctx, "best_quotation", start, err)
	return res, err
}

// PackageSize labels a package by its dimensions.
func (r *Resolver) PackageSize(ctx context.Context, width, height, length string) (*string, error) {
	label, ok := shipit.PackageSize(width, height, length)
	if !ok {
		return nil, nil
	}
	return &label, nil
}

// TrackingURL returns the tracking page of a package.
func (r *Resolver) TrackingURL(ctx context.Context, provider, number string) (*string, error) {
	u, ok := shipit.TrackingURL(provider, number)
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// TrackingProviders lists the providers trackingUrl accepts.
func (r *Resolver) TrackingProviders(ctx context.Context) ([]string, error) {
	return shipit.TrackingProviders(), nil
}

// RequestShipping requests delivery of the package described by input.
func (r *Resolver) RequestShipping(ctx context.Context, input map[string]any) (shipit.Result, error) {
	start := time.Now()
	req, err := shipit.NewShippingRequest(input)
	if err != nil {
		r.observe(ctx, "request_shipping", start, err)
		return shipit.Result{}, err
	}
	res, err := r.Client.RequestShipping(ctx, req)
	r.observe(ctx, "request_shipping", start, err)
	return res, err
}

// RequestMassiveShipping requests delivery of several packages at once.
// Nothing is sent when any input is invalid.
func (r *Resolver) RequestMassiveShipping(ctx context.Context, inputs []map[string]any) (shipit.Result, error) {
	start := time.Now()
	reqs, err := shippingRequests(inputs)
	if err != nil {
		r.observe(ctx, "request_massive_shipping", start, err)
		return shipit.Result{}, err
	}
	res, err := r.Client.RequestMassiveShipping(ctx, reqs)
	r.observe(ctx, "request_massive_shipping", start, err)
	return res, err
}

// ShipOrder creates a shipment from a v4 order payload.
func (r *Resolver) ShipOrder(ctx context.Context, order any) (shipit.Result, error) {
	start := time.Now()
	res, err := r.Client.ShipOrder(ctx, order)
	r.observe(ctx, "ship_order", start, err)
	return res, err
}

// RequestOrder validates input as an order record and creates it.
func (r *Resolver) RequestOrder(ctx context.Context, input map[string]any) (shipit.Result, error) {
	start := time.Now()
	order, err := shipit.NewOrderRequest(input)
	if err != nil {
		r.observe(ctx, "request_order", start, err)
		return shipit.Result{}, err
	}
	res, err := r.Client.RequestOrder(ctx, order.ToVendorFormat(r.Client.Environment()))
	r.observe(ctx, "request_order", start, err)
	return res, err
}
