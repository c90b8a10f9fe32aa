package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"numguru/internal/observability"
)

var ErrLookupFailed = errors.New("geo lookup failed")

// IPAPIClient resolves the country of an IP through ipapi.co.
type IPAPIClient struct {
	baseURL string
	client  *http.Client
	metrics *observability.Metrics
}

func NewIPAPIClient(baseURL string, timeout time.Duration, metrics *observability.Metrics) *IPAPIClient {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "https://ipapi.co"
	}
	return &IPAPIClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		metrics: metrics,
	}
}

type ipapiResponse struct {
	CountryCode string `json:"country_code"`
	Country     string `json:"country"`
	Error       bool   `json:"error"`
	Reason      string `json:"reason"`
}

// CountryCode returns the ISO 3166 alpha-2 code for ip, upper-cased.
func (c *IPAPIClient) CountryCode(ctx context.Context, ip string) (string, error) {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return "", fmt.Errorf("%w: empty ip", ErrLookupFailed)
	}
	endpoint := c.baseURL + "/" + url.PathEscape(ip) + "/json/"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "numguru/1.0")

	start := time.Now()
	resp, err := c.client.Do(req)
	c.metrics.ObserveUpstream("ipapi", time.Since(start))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: status=%d", ErrLookupFailed, resp.StatusCode)
	}

	var out ipapiResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	if out.Error {
		return "", fmt.Errorf("%w: %s", ErrLookupFailed, out.Reason)
	}

	code := out.CountryCode
	if code == "" {
		code = out.Country
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 {
		return "", fmt.Errorf("%w: no country code", ErrLookupFailed)
	}
	return code, nil
}
