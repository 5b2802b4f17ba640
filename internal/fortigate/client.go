// Package fortigate fetches the device inventory from a FortiGate
// appliance. Fetch failures are absorbed: the client falls back to a
// fixed demo device set and reports the degradation through a flag, so
// the dashboard keeps rendering when the firewall is unreachable.
package fortigate

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/netsentry/fortiview/internal/metrics"
	"github.com/netsentry/fortiview/pkg/models"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single inventory fetch.
const DefaultTimeout = 5 * time.Second

// deviceQueryPath is the monitor endpoint that lists observed devices.
const deviceQueryPath = "/api/v2/monitor/user/device/query"

// queryResponse is the appliance's response envelope. A body without a
// results array decodes to nil and is treated as zero devices.
type queryResponse struct {
	Results []models.RawDevice `json:"results"`
	Serial  string             `json:"serial"`
	Version string             `json:"version"`
	Build   int                `json:"build"`
}

// ConnectionInfo summarizes a successful connection test.
type ConnectionInfo struct {
	DeviceCount int    `json:"devices_count"`
	Serial      string `json:"serial"`
	Version     string `json:"version"`
	Build       int    `json:"build"`
}

// Client talks to the FortiGate monitor API. Host and token are passed
// per call because operators can change them at runtime through the
// settings store.
type Client struct {
	http    *http.Client
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewClient creates a Client with the given fetch timeout. TLS
// certificate validation is disabled: appliances ship self-signed certs
// and the trade-off is accepted here.
func NewClient(timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // self-signed appliance certs
			},
		},
		logger:  logger,
		metrics: m,
	}
}

// Fetch returns the raw device inventory. On any failure (dial error,
// non-2xx, timeout, malformed body) it returns the fixed fallback set
// and usingFallback=true; it never returns an error.
func (c *Client) Fetch(ctx context.Context, host, token string) (devices []models.RawDevice, usingFallback bool) {
	resp, err := c.query(ctx, host, token)
	if err != nil {
		c.logger.Warn("fortigate unavailable, serving fallback devices",
			zap.String("host", host),
			zap.Error(err),
		)
		c.metrics.FetchTotal.WithLabelValues("fallback").Inc()
		return FallbackDevices(time.Now()), true
	}

	c.metrics.FetchTotal.WithLabelValues("ok").Inc()
	if resp.Results == nil {
		return []models.RawDevice{}, false
	}
	return resp.Results, false
}

// TestConnection probes the appliance once and returns its summary.
// Unlike Fetch, failures surface as errors here: the caller explicitly
// asked whether the firewall is reachable.
func (c *Client) TestConnection(ctx context.Context, host, token string) (*ConnectionInfo, error) {
	resp, err := c.query(ctx, host, token)
	if err != nil {
		return nil, err
	}
	return &ConnectionInfo{
		DeviceCount: len(resp.Results),
		Serial:      resp.Serial,
		Version:     resp.Version,
		Build:       resp.Build,
	}, nil
}

func (c *Client) query(ctx context.Context, host, token string) (*queryResponse, error) {
	url := fmt.Sprintf("https://%s%s", host, deviceQueryPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", host, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("query %s: unexpected status %d", host, res.StatusCode)
	}

	var qr queryResponse
	if err := json.NewDecoder(res.Body).Decode(&qr); err != nil {
		return nil, fmt.Errorf("decode response from %s: %w", host, err)
	}
	return &qr, nil
}
