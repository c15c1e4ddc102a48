package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"tigawane/internal/domain/geo"
	"tigawane/internal/errs"
	"tigawane/internal/ports"
)

// Client is a Nominatim-compatible geocoder. One request per Geocode call,
// no retries: the resolver's fallback chain handles failure, and a second
// round-trip would only stretch submission latency.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ ports.Geocoder = (*Client)(nil)

// userAgentRoundTripper stamps every request with the configured User-Agent.
// Nominatim's usage policy rejects anonymous clients.
type userAgentRoundTripper struct {
	wrapped   http.RoundTripper
	userAgent string
}

func (rt *userAgentRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", rt.userAgent)
	return rt.wrapped.RoundTrip(clone)
}

func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &userAgentRoundTripper{
				wrapped:   http.DefaultTransport,
				userAgent: userAgent,
			},
		},
	}
}

// searchResult is the subset of the Nominatim response we consume. Lat and
// lon arrive as JSON strings and must be coerced before validation.
type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (c *Client) Geocode(ctx context.Context, address string) (geo.Coordinate, error) {
	if address == "" {
		return geo.Coordinate{}, errors.New("address is required")
	}

	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")
	urlStr := c.baseURL + "/search?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return geo.Coordinate{}, errs.Wrap(err, "build geocode request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return geo.Coordinate{}, errs.Wrap(errs.WithStack(err), "geocode request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return geo.Coordinate{}, errs.Wrap(err, "read geocode response")
	}
	if resp.StatusCode != http.StatusOK {
		return geo.Coordinate{}, fmt.Errorf("geocode status %d: %s", resp.StatusCode, body)
	}

	var results []searchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return geo.Coordinate{}, errs.Wrap(err, "decode geocode response")
	}
	if len(results) == 0 {
		return geo.Coordinate{}, ports.ErrNoGeocodeResult
	}

	coordinate, err := geo.ParseCoordinate(results[0].Lat, results[0].Lon)
	if err != nil {
		return geo.Coordinate{}, errs.Wrap(err, "coerce geocode coordinate")
	}
	return coordinate, nil
}
