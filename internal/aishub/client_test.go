package aishub

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/example/aishub-feed/internal/config"
	"github.com/example/aishub-feed/internal/models"
	"github.com/example/aishub-feed/internal/util"
)

func testConfig(endpoint string) config.AISHubConfig {
	return config.AISHubConfig{
		Username:    "AH_TEST",
		Endpoint:    endpoint,
		Output:      "json",
		Compression: 2,
		DataFormat:  1,
	}
}

func TestFetchAllBuildsQuery(t *testing.T) {
	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_, _ = w.Write([]byte(`payload`))
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL), zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := client.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := query.Get("username"); got != "AH_TEST" {
		t.Fatalf("expected username AH_TEST, got %q", got)
	}
	if got := query.Get("output"); got != "json" {
		t.Fatalf("expected output json, got %q", got)
	}
	if got := query.Get("compress"); got != "2" {
		t.Fatalf("expected compress 2, got %q", got)
	}
	if got := query.Get("format"); got != "1" {
		t.Fatalf("expected format 1, got %q", got)
	}

	if !bytes.Equal(raw.Payload, []byte("payload")) {
		t.Fatalf("unexpected payload %q", raw.Payload)
	}
	if raw.Compression != models.CompressionGzip || raw.Format != models.FormatJSON {
		t.Fatalf("raw response does not carry the requested scheme/format: %+v", raw)
	}
}

func TestFetchVesselFilters(t *testing.T) {
	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL), zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := client.FetchVessel(context.Background(), 244660616, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := query.Get("mmsi"); got != "244660616" {
		t.Fatalf("expected mmsi filter, got %q", got)
	}

	if _, err := client.FetchVessel(context.Background(), 0, 9074729); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := query.Get("imo"); got != "9074729" {
		t.Fatalf("expected imo filter, got %q", got)
	}

	if _, err := client.FetchVessel(context.Background(), 0, 0); err == nil {
		t.Fatalf("expected error when neither identifier is set")
	}
	if _, err := client.FetchVessel(context.Background(), 1, 1); err == nil {
		t.Fatalf("expected error when both identifiers are set")
	}
	if _, err := client.FetchVessel(context.Background(), -5, 0); err == nil {
		t.Fatalf("expected error for invalid mmsi")
	}
}

func TestFetchAreaValidatesBounds(t *testing.T) {
	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL), zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	area := util.Area{LatMin: 50, LatMax: 54, LonMin: 3, LonMax: 8}
	if _, err := client.FetchArea(context.Background(), area); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := query.Get("latmin"); got != "50" {
		t.Fatalf("expected latmin 50, got %q", got)
	}
	if got := query.Get("lonmax"); got != "8" {
		t.Fatalf("expected lonmax 8, got %q", got)
	}

	bad := util.Area{LatMin: -91, LatMax: 90, LonMin: -180, LonMax: 180}
	if _, err := client.FetchArea(context.Background(), bad); err == nil {
		t.Fatalf("expected error for out-of-range latitude")
	}
}

func TestFetchReportsUpstreamHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL), zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = client.FetchAll(context.Background())
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestNewClientValidatesConfig(t *testing.T) {
	if _, err := NewClient(config.AISHubConfig{}, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for missing username")
	}

	cfg := testConfig("")
	cfg.Output = "yaml"
	if _, err := NewClient(cfg, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for unsupported output format")
	}

	cfg = testConfig("")
	cfg.Compression = 9
	if _, err := NewClient(cfg, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for unsupported compression scheme")
	}
}
