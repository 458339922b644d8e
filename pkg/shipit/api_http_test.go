package shipit_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/shipit/pkg/shipit"
)

func newHTTPTestClient(t *testing.T, handler http.HandlerFunc) *shipit.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	api := shipit.NewHTTPAPIClient(shipit.HTTPAPIClientConfig{Timeout: 5 * time.Second})
	return shipit.NewWithAPIClient(shipit.Config{
		Email:         "dev@example.cl",
		Token:         "secret-token",
		BaseURL:       srv.URL + "/v/",
		OrdersBaseURL: srv.URL + "/orders/v/",
	}, api, nil, nil)
}

func TestHTTPAPIClient_SendsHeadersAndBody(t *testing.T) {
	var (
		gotHeader http.Header
		gotBody   map[string]any
		gotPath   string
	)
	client := newHTTPTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Clone()
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"prices":[],"lower_price":{"courier":"starken","price":2990}}`))
	})

	result, err := client.GetBestQuotation(context.Background(), map[string]any{"parcel": map[string]any{"width": 10}})
	require.NoError(t, err)

	obj, err := result.Object()
	require.NoError(t, err)
	assert.Equal(t, "starken", obj["courier"])

	assert.Equal(t, "/v/rates", gotPath)
	assert.Equal(t, "dev@example.cl", gotHeader.Get(shipit.HeaderEmail))
	assert.Equal(t, "secret-token", gotHeader.Get(shipit.HeaderAccessToken))
	assert.Equal(t, shipit.AcceptV4, gotHeader.Get("Accept"))
	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))
	assert.Equal(t, "shipit-go/1.0", gotHeader.Get("User-Agent"))
	assert.Equal(t, map[string]any{"parcel": map[string]any{"width": float64(10)}}, gotBody)
}

func TestHTTPAPIClient_GetHasNoBody(t *testing.T) {
	var contentLength int64 = -1
	client := newHTTPTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		contentLength = r.ContentLength
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := client.GetRegions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), contentLength)
}

func TestHTTPAPIClient_OrdersHost(t *testing.T) {
	var gotPath, gotQuery string
	client := newHTTPTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := client.QueryOrders(context.Background(), "a b")
	require.NoError(t, err)
	assert.Equal(t, "/orders/v/orders", gotPath)
	assert.Equal(t, "a b", gotQuery)
}

func TestHTTPAPIClient_NotFound(t *testing.T) {
	client := newHTTPTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := client.GetRegions(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, shipit.ErrEndpointNotFound))

	var shipitErr *shipit.Error
	require.True(t, errors.As(err, &shipitErr))
	assert.Equal(t, http.StatusNotFound, shipitErr.StatusCode)
	assert.Contains(t, shipitErr.Endpoint, "/v/regions")
}

func TestHTTPAPIClient_ServerError(t *testing.T) {
	client := newHTTPTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"commune is required"}`))
	})

	_, err := client.RequestShipping(context.Background(), newShippingRequest(t, nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, shipit.ErrAPI))

	var shipitErr *shipit.Error
	require.True(t, errors.As(err, &shipitErr))
	assert.Equal(t, http.StatusUnprocessableEntity, shipitErr.StatusCode)
	assert.Equal(t, "commune is required", shipitErr.Message)
}

func TestHTTPAPIClient_ServerErrorWithoutBody(t *testing.T) {
	client := newHTTPTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.GetCommunes(context.Background())
	var shipitErr *shipit.Error
	require.True(t, errors.As(err, &shipitErr))
	assert.Equal(t, shipit.CodeAPIError, shipitErr.Code)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), shipitErr.Message)
}

func TestHTTPAPIClient_InvalidJSON(t *testing.T) {
	client := newHTTPTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	})

	_, err := client.GetRegions(context.Background())
	assert.True(t, errors.Is(err, shipit.ErrDecode))
}

func TestHTTPAPIClient_ConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL + "/v/"
	srv.Close()

	client := shipit.NewWithAPIClient(shipit.Config{
		Email:   "dev@example.cl",
		Token:   "secret-token",
		BaseURL: base,
	}, shipit.NewHTTPAPIClient(shipit.HTTPAPIClientConfig{}), nil, nil)

	_, err := client.GetRegions(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, shipit.ErrConnectionFailure))

	var shipitErr *shipit.Error
	require.True(t, errors.As(err, &shipitErr))
	assert.Equal(t, base+"regions", shipitErr.Endpoint)
}

func TestHTTPAPIClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	client := shipit.NewWithAPIClient(shipit.Config{
		Email:   "dev@example.cl",
		Token:   "secret-token",
		BaseURL: srv.URL,
	}, shipit.NewHTTPAPIClient(shipit.HTTPAPIClientConfig{Timeout: 50 * time.Millisecond}), nil, nil)

	_, err := client.GetRegions(context.Background())
	assert.True(t, errors.Is(err, shipit.ErrConnectionFailure))
}
