package shipit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/shipit/pkg/shipit"
)

func TestNewInventory(t *testing.T) {
	inv, err := shipit.NewInventory(shipit.Object{"id": 5}, nil)
	require.NoError(t, err)
	assert.Equal(t, shipit.Object{"id": 5}, inv.ToMap())
	assert.Equal(t, 5, inv.ID())
	assert.Nil(t, inv.Get("missing"))
}

func TestNewInventory_MissingID(t *testing.T) {
	for _, data := range []shipit.Object{nil, {}, {"id": nil}, {"id": ""}, {"name": "SKU-1"}} {
		_, err := shipit.NewInventory(data, nil)
		assert.True(t, errors.Is(err, shipit.ErrNotFound))
		assert.Contains(t, err.Error(), "inventory not found")
	}
}

func TestNewShipping_MissingID(t *testing.T) {
	_, err := shipit.NewShipping(shipit.Object{"status": "delivered"}, nil)
	assert.True(t, errors.Is(err, shipit.ErrNotFound))
	assert.Contains(t, err.Error(), "shipping not found")
}

func TestShipping_ToMapIsCopy(t *testing.T) {
	s, err := shipit.NewShipping(shipit.Object{"id": 1, "status": "delivered"}, nil)
	require.NoError(t, err)

	m := s.ToMap()
	m["status"] = "lost"
	assert.Equal(t, "delivered", s.Get("status"))
}

func TestShipping_TrackingURL(t *testing.T) {
	s, err := shipit.NewShipping(shipit.Object{
		"id":              1,
		"courier":         "Starken",
		"tracking_number": "99887766",
	}, nil)
	require.NoError(t, err)

	u, ok := s.TrackingURL()
	assert.True(t, ok)
	assert.Equal(t, "http://www.starken.cl/seguimiento?codigo=99887766", u)
}

func TestShipping_TrackingURL_NoNumber(t *testing.T) {
	s, err := shipit.NewShipping(shipit.Object{"id": 1, "courier": "chilexpress"}, nil)
	require.NoError(t, err)

	_, ok := s.TrackingURL()
	assert.False(t, ok)
}

func TestShipping_Refresh(t *testing.T) {
	mockAPI := shipit.NewMockAPIClient()
	client := newTestClient(mockAPI)

	s, err := shipit.NewShipping(shipit.Object{"id": float64(136701)}, client)
	require.NoError(t, err)

	fresh, err := s.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "136701", fresh.ID())
	assert.Equal(t, shipit.DefaultBaseURL+"packages/136701", lastCall(t, mockAPI).URL)
}

func TestShipping_RefreshWithoutClient(t *testing.T) {
	s, err := shipit.NewShipping(shipit.Object{"id": 1}, nil)
	require.NoError(t, err)

	_, err = s.Refresh(context.Background())
	assert.Error(t, err)
}
