// Package aishub implements the HTTP client for the AISHub web service. It
// builds the query from the configured account settings and optional
// filters, performs the GET, and hands the raw payload to the
// decompress/parse pipeline untouched.
package aishub

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/aishub-feed/internal/config"
	"github.com/example/aishub-feed/internal/models"
	"github.com/example/aishub-feed/internal/util"
)

// DefaultEndpoint is the AISHub web service URL used when none is
// configured.
const DefaultEndpoint = "http://data.aishub.net/ws.php"

const (
	defaultTimeout   = 30 * time.Second
	errorBodyExcerpt = 512
)

// Option customises the client during construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, primarily for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// Client queries the AISHub web service. All fetch methods return the raw
// response bytes along with the compression scheme and serialization format
// that were requested, which downstream stages rely on instead of sniffing
// the content.
type Client struct {
	httpClient  *http.Client
	logger      zerolog.Logger
	endpoint    string
	username    string
	dataFormat  models.DataFormat
	output      models.SerializationFormat
	compression models.CompressionScheme
}

// NewClient constructs a client from the AISHub account configuration.
func NewClient(cfg config.AISHubConfig, logger zerolog.Logger, opts ...Option) (*Client, error) {
	username := strings.TrimSpace(cfg.Username)
	if username == "" {
		return nil, errors.New("aishub client: username is required")
	}

	output, err := models.ParseSerializationFormat(cfg.Output)
	if err != nil {
		return nil, fmt.Errorf("aishub client: %w", err)
	}
	compression, err := models.ParseCompressionScheme(cfg.Compression)
	if err != nil {
		return nil, fmt.Errorf("aishub client: %w", err)
	}
	dataFormat, err := models.ParseDataFormat(cfg.DataFormat)
	if err != nil {
		return nil, fmt.Errorf("aishub client: %w", err)
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("aishub client: invalid endpoint: %w", err)
	}

	timeout := defaultTimeout
	if cfg.RequestTimeoutSeconds > 0 {
		timeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	}

	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}

	c := &Client{
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger,
		endpoint:    endpoint,
		username:    username,
		dataFormat:  dataFormat,
		output:      output,
		compression: compression,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c, nil
}

// FetchAll retrieves the positions of every vessel visible to the account.
func (c *Client) FetchAll(ctx context.Context) (*models.RawResponse, error) {
	return c.get(ctx, nil)
}

// FetchVessel retrieves a single vessel identified by exactly one of MMSI or
// IMO; pass zero for the identifier that is not used.
func (c *Client) FetchVessel(ctx context.Context, mmsi, imo int) (*models.RawResponse, error) {
	switch {
	case mmsi != 0 && imo != 0:
		return nil, errors.New("aishub client: mmsi and imo are mutually exclusive")
	case mmsi != 0:
		if err := util.ValidateMMSI(mmsi); err != nil {
			return nil, fmt.Errorf("aishub client: %w", err)
		}
		return c.get(ctx, url.Values{"mmsi": []string{strconv.Itoa(mmsi)}})
	case imo != 0:
		if err := util.ValidateIMO(imo); err != nil {
			return nil, fmt.Errorf("aishub client: %w", err)
		}
		return c.get(ctx, url.Values{"imo": []string{strconv.Itoa(imo)}})
	default:
		return nil, errors.New("aishub client: either mmsi or imo is required")
	}
}

// FetchArea retrieves every vessel inside the bounding box.
func (c *Client) FetchArea(ctx context.Context, area util.Area) (*models.RawResponse, error) {
	if err := area.Validate(); err != nil {
		return nil, fmt.Errorf("aishub client: %w", err)
	}

	q := url.Values{}
	q.Set("latmin", formatCoord(area.LatMin))
	q.Set("latmax", formatCoord(area.LatMax))
	q.Set("lonmin", formatCoord(area.LonMin))
	q.Set("lonmax", formatCoord(area.LonMax))
	return c.get(ctx, q)
}

func (c *Client) get(ctx context.Context, extra url.Values) (*models.RawResponse, error) {
	q := url.Values{}
	q.Set("username", c.username)
	q.Set("format", strconv.Itoa(int(c.dataFormat)))
	q.Set("output", string(c.output))
	q.Set("compress", strconv.Itoa(int(c.compression)))
	for key, values := range extra {
		for _, value := range values {
			q.Add(key, value)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("aishub client: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("aishub client: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyExcerpt))
		return nil, fmt.Errorf("aishub client: unexpected status %s: %s",
			resp.Status, strings.TrimSpace(string(excerpt)))
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("aishub client: read response: %w", err)
	}

	c.logger.Debug().
		Int("bytes", len(payload)).
		Str("output", string(c.output)).
		Str("compression", c.compression.String()).
		Msg("aishub response received")

	return &models.RawResponse{
		Payload:     payload,
		Compression: c.compression,
		Format:      c.output,
	}, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
