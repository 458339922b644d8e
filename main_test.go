package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/shipit/pkg/shipit"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func useMock(t *testing.T) {
	t.Helper()
	t.Setenv("SHIPIT_USE_MOCK", "true")
	t.Setenv("SHIPIT_EMAIL", "dev@example.cl")
	t.Setenv("SHIPIT_ACCESS_TOKEN", "secret-token")
}

func TestPackageSizeCommand(t *testing.T) {
	out, err := run(t, "package-size", "30", "10", "10")
	require.NoError(t, err)
	assert.Equal(t, shipit.SizeMedium, strings.TrimSpace(out))

	_, err = run(t, "package-size", "a", "10", "10")
	assert.Error(t, err)
}

func TestTrackingURLCommand(t *testing.T) {
	out, err := run(t, "tracking-url", "starken", "123")
	require.NoError(t, err)
	assert.Equal(t, "http://www.starken.cl/seguimiento?codigo=123", strings.TrimSpace(out))

	_, err = run(t, "tracking-url", "dhl", "123")
	assert.Error(t, err)
}

func TestRegionsCommand(t *testing.T) {
	useMock(t)

	out, err := run(t, "regions")
	require.NoError(t, err)

	var regions []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &regions))
	assert.Len(t, regions, 2)
}

func TestShippingCommand(t *testing.T) {
	useMock(t)

	out, err := run(t, "shipping", "136701")
	require.NoError(t, err)

	var shipping map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &shipping))
	assert.Equal(t, "136701", shipping["id"])

	_, err = run(t, "shipping", "abc")
	assert.Error(t, err)
}

func TestRegionsCommand_MissingCredentials(t *testing.T) {
	t.Setenv("SHIPIT_USE_MOCK", "true")
	t.Setenv("SHIPIT_EMAIL", "")
	t.Setenv("SHIPIT_ACCESS_TOKEN", "")

	_, err := run(t, "regions")
	assert.ErrorIs(t, err, shipit.ErrMissingToken)
}
