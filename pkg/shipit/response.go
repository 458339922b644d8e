package shipit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

type resource struct {
	data   Object
	client *Client
}

func newResource(name string, data Object, client *Client) (resource, error) {
	if isEmpty(data.Get("id")) {
		return resource{}, notFound(name)
	}
	return resource{data: data, client: client}, nil
}

// ToMap returns a copy of the decoded object.
func (r resource) ToMap() Object {
	out := make(Object, len(r.data))
	for k, v := range r.data {
		out[k] = v
	}
	return out
}

// Get returns the member named key, or nil.
func (r resource) Get(key string) any {
	return r.data.Get(key)
}

// ID returns the vendor id.
func (r resource) ID() any {
	return r.data.Get("id")
}

// Client returns the client that fetched the resource.
func (r resource) Client() *Client {
	return r.client
}

func (r resource) str(key string) string {
	v := r.data.Get(key)
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// Inventory is a stock record.
type Inventory struct {
	resource
}

// NewInventory wraps data. It fails with ErrNotFound when data has no id.
func NewInventory(data Object, client *Client) (*Inventory, error) {
	r, err := newResource("inventory", data, client)
	if err != nil {
		return nil, err
	}
	return &Inventory{resource: r}, nil
}

// Shipping is a package known to the vendor.
type Shipping struct {
	resource
}

// NewShipping wraps data. It fails with ErrNotFound when data has no id.
func NewShipping(data Object, client *Client) (*Shipping, error) {
	r, err := newResource("shipping", data, client)
	if err != nil {
		return nil, err
	}
	return &Shipping{resource: r}, nil
}

// Courier returns the courier handling the package.
func (s *Shipping) Courier() string { return s.str("courier") }

// TrackingNumber returns the courier's tracking number, if assigned.
func (s *Shipping) TrackingNumber() string { return s.str("tracking_number") }

// TrackingURL returns the courier's tracking page for the package.
func (s *Shipping) TrackingURL() (string, bool) {
	if s.TrackingNumber() == "" {
		return "", false
	}
	return TrackingURL(strings.ToLower(s.Courier()), s.TrackingNumber())
}

// Refresh fetches the current state of the package.
func (s *Shipping) Refresh(ctx context.Context) (*Shipping, error) {
	if s.client == nil {
		return nil, NewError(CodeNotFound, "shipping has no client")
	}
	return s.client.GetShipping(ctx, s.str("id"))
}
