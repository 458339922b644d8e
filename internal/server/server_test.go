package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/shipit/internal/server"
	"github.com/tournevent/shipit/internal/webhook"
	"github.com/tournevent/shipit/pkg/shipit"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) (http.Handler, *[]webhook.Event) {
	t.Helper()

	logger := otelzap.New(zap.NewNop())
	client := shipit.New(shipit.Config{
		Email:   "dev@example.cl",
		Token:   "secret-token",
		UseMock: true,
	}, logger, nil)

	var events []webhook.Event
	dispatcher := webhook.NewDispatcher(logger)
	dispatcher.Register(webhook.HandlerFunc("capture", func(ctx context.Context, ev webhook.Event) error {
		events = append(events, ev)
		return nil
	}))

	srv := server.New(server.Config{Port: 8080}, client, dispatcher, logger)
	return srv.Handler(), &events
}

func postGraphQL(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec, resp
}

func TestServer_Health(t *testing.T) {
	h, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServer_GraphQL_MethodNotAllowed(t *testing.T) {
	h, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graphql", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	errors, ok := resp["errors"].([]any)
	require.True(t, ok)
	assert.Len(t, errors, 1)
}

func TestServer_GraphQL_InvalidJSON(t *testing.T) {
	h, _ := newTestServer(t)

	rec, resp := postGraphQL(t, h, "invalid json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, resp["errors"])
}

func TestServer_GraphQL_HealthQuery(t *testing.T) {
	h, _ := newTestServer(t)

	rec, resp := postGraphQL(t, h, `{"query": "query { health }"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	data, ok := resp["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ok", data["health"])
}

func TestServer_GraphQL_NumericIDVariable(t *testing.T) {
	h, _ := newTestServer(t)

	rec, resp := postGraphQL(t, h, `{"query": "query($id: ID!) { shipping(id: $id) }", "variables": {"id": 136701}}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	data := resp["data"].(map[string]any)
	assert.Equal(t, "136701", data["shipping"].(map[string]any)["id"])
}

func TestServer_GraphQL_InvalidQuery(t *testing.T) {
	h, _ := newTestServer(t)

	rec, resp := postGraphQL(t, h, `{"query": "{ unknownField }"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, resp["errors"])
}

func TestServer_Webhook(t *testing.T) {
	h, events := newTestServer(t)

	req := httptest.NewRequest(http.MethodPatch, "/webhooks/shipit", strings.NewReader(`{"id":1,"status":"delivered"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	require.Len(t, *events, 1)
	assert.Equal(t, webhook.EventUpdated, (*events)[0].Type)
}

func TestServer_Metrics(t *testing.T) {
	h, _ := newTestServer(t)

	postGraphQL(t, h, `{"query": "{ regions }"}`)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/webhooks/shipit", strings.NewReader(`{}`)))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `shipit_requests_total{operation="regions",status="success"} 1`)
	assert.Contains(t, body, `shipit_webhook_events_total{type="shipit.callback.created"} 1`)
}
