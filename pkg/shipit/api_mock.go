package shipit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockAPIClient is a mock implementation of APIClient. It records every
// request it receives and answers with canned vendor responses unless OnDo
// is set.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnDo func(ctx context.Context, req *Request) (Result, error)

	mu    sync.Mutex
	calls []*Request
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

// Calls returns the requests received so far.
func (m *MockAPIClient) Calls() []*Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Request, len(m.calls))
	copy(out, m.calls)
	return out
}

// Do records req and returns a canned response.
func (m *MockAPIClient) Do(ctx context.Context, req *Request) (Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}

	if m.SimulateErrors {
		return Result{}, NewError(CodeAPIError, "simulated API error").
			WithEndpoint(req.URL).
			WithStatusCode(http.StatusInternalServerError)
	}

	if m.OnDo != nil {
		return m.OnDo(ctx, req)
	}

	body, ok := cannedResponse(req)
	if !ok {
		return Result{}, NewError(CodeEndpointNotFound, ErrEndpointNotFound.Message).
			WithEndpoint(req.URL).
			WithStatusCode(http.StatusNotFound)
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return Result{}, err
	}
	return NewResult(raw), nil
}

func cannedResponse(req *Request) (any, bool) {
	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, false
	}
	path := strings.TrimPrefix(u.Path, "/v/")
	path = strings.Trim(path, "/")
	now := time.Now()

	switch {
	case req.Method == http.MethodGet && path == "regions":
		return []Object{
			{"id": 7, "name": "Región Metropolitana de Santiago", "number": "XIII"},
			{"id": 8, "name": "Región de Valparaíso", "number": "V"},
		}, true

	case req.Method == http.MethodGet && path == "communes":
		return []Object{
			{"id": 308, "name": "Santiago", "region_id": 7},
			{"id": 295, "name": "Providencia", "region_id": 7},
			{"id": 331, "name": "Valparaíso", "region_id": 8},
		}, true

	case req.Method == http.MethodPost && path == "shipments":
		return Object{
			"id":         int(now.UnixNano() % 1000000),
			"state":      "requested",
			"created_at": now.Format(time.RFC3339),
		}, true

	case req.Method == http.MethodPost && path == "packages":
		return mockPackage(int(now.UnixNano()%1000000), packageFromBody(req.Body, "package")), true

	case req.Method == http.MethodPost && path == "packages/mass_create":
		var created []Object
		if body, ok := req.Body.(map[string]any); ok {
			if pkgs, ok := body["packages"].([]map[string]any); ok {
				for i, p := range pkgs {
					created = append(created, mockPackage(int(now.UnixNano()%1000000)+i, p))
				}
			}
		}
		return Object{"packages": created}, true

	case req.Method == http.MethodGet && path == "packages":
		return []Object{mockPackage(136701, nil), mockPackage(136702, nil)}, true

	case req.Method == http.MethodGet && strings.HasPrefix(path, "packages/"):
		id := strings.TrimPrefix(path, "packages/")
		return mockPackage(id, nil), true

	case req.Method == http.MethodPost && path == "rates":
		lower := Object{"courier": "chilexpress", "price": 3490, "days": 1}
		return Object{
			"prices": []Object{
				lower,
				{"courier": "starken", "price": 4120, "days": 2},
			},
			"lower_price": lower,
		}, true

	case req.Method == http.MethodGet && path == "orders":
		return []Object{{"id": uuid.New().String(), "reference": u.Query().Get("query")}}, true

	case req.Method == http.MethodPost && path == "orders":
		return Object{"id": uuid.New().String(), "state": "pending"}, true

	case req.Method == http.MethodGet && path == "skus/by_name":
		return Object{
			"id":                 4021,
			"name":               u.Query().Get("name"),
			"available_quantity": 12,
			"warehouse_id":       1,
		}, true
	}
	return nil, false
}

func packageFromBody(body any, key string) map[string]any {
	if m, ok := body.(map[string]any); ok {
		if p, ok := m[key].(map[string]any); ok {
			return p
		}
	}
	return nil
}

func mockPackage(id any, from map[string]any) Object {
	pkg := Object{
		"id":              id,
		"status":          "in_preparation",
		"courier":         "chilexpress",
		"tracking_number": "",
		"created_at":      time.Now().Format(time.RFC3339),
	}
	for k, v := range from {
		pkg[k] = v
	}
	return pkg
}

var _ APIClient = (*MockAPIClient)(nil)
