// Package routing resolves cycling distances between two addresses through
// the Google Maps Directions API.
package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkordes/bike-logbook/internal/domain"
	"github.com/pkordes/bike-logbook/internal/metrics"
)

// DefaultBaseURL is the public Google Maps API host.
const DefaultBaseURL = "https://maps.googleapis.com"

const (
	directionsPath = "/maps/api/directions/json"
	travelMode     = "bicycling"
	statusOK       = "OK"
)

// Finder returns the length in metres of the first leg of the first route
// between origin and destination.
type Finder interface {
	Distance(ctx context.Context, origin, destination string) (int64, error)
}

// Client is a Finder backed by the Directions API.
// The API key is fixed at construction; nothing reads the environment later.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// NewClient builds a Client for baseURL (use DefaultBaseURL in production).
// timeout bounds each request end to end; zero means no client-side limit.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		endpoint: strings.TrimRight(baseURL, "/") + directionsPath,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
	}
}

// directionsResponse is the subset of the Directions payload we consume.
type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Legs []struct {
			Distance *struct {
				Value *float64 `json:"value"`
			} `json:"distance"`
		} `json:"legs"`
	} `json:"routes"`
}

// Distance asks the provider for a cycling route and returns the first leg's
// distance in metres.
//
// Errors:
//   - domain.ErrRouteNotFound when the provider status is not "OK"
//   - domain.ErrProviderUnavailable on transport failure or non-2xx HTTP
//   - context.Canceled, unclassified, when the caller gives up
//   - domain.ErrMalformedResponse when the body is not the expected shape
func (c *Client) Distance(ctx context.Context, origin, destination string) (metres int64, err error) {
	const op = "routing.Client.Distance"

	start := time.Now()
	defer func() { metrics.RecordProviderLookup(err, time.Since(start)) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(origin, destination), nil)
	if err != nil {
		return 0, fmt.Errorf("%s: build request: %w", op, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 0, fmt.Errorf("%s: %w", op, redactURL(err, c.endpoint))
		}
		return 0, fmt.Errorf("%s: %w: %w", op, domain.ErrProviderUnavailable, redactURL(err, c.endpoint))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return 0, fmt.Errorf("%s: %w: unexpected HTTP status %d", op, domain.ErrProviderUnavailable, resp.StatusCode)
	}

	var payload directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("%s: %w: decode: %w", op, domain.ErrMalformedResponse, err)
	}

	if payload.Status != statusOK {
		if payload.ErrorMessage != "" {
			return 0, fmt.Errorf("%s: %w: status %q: %s", op, domain.ErrRouteNotFound, payload.Status, payload.ErrorMessage)
		}
		return 0, fmt.Errorf("%s: %w: status %q", op, domain.ErrRouteNotFound, payload.Status)
	}

	return firstLegMetres(payload)
}

func (c *Client) requestURL(origin, destination string) string {
	q := url.Values{}
	q.Set("destination", destination)
	q.Set("origin", origin)
	q.Set("key", c.apiKey)
	q.Set("mode", travelMode)
	return c.endpoint + "?" + q.Encode()
}

// firstLegMetres extracts routes[0].legs[0].distance.value.
func firstLegMetres(p directionsResponse) (int64, error) {
	const op = "routing.firstLegMetres"

	if len(p.Routes) == 0 {
		return 0, fmt.Errorf("%s: %w: no routes", op, domain.ErrMalformedResponse)
	}
	if len(p.Routes[0].Legs) == 0 {
		return 0, fmt.Errorf("%s: %w: no legs", op, domain.ErrMalformedResponse)
	}
	d := p.Routes[0].Legs[0].Distance
	if d == nil || d.Value == nil {
		return 0, fmt.Errorf("%s: %w: leg has no distance", op, domain.ErrMalformedResponse)
	}
	if *d.Value < 0 || math.IsNaN(*d.Value) || math.IsInf(*d.Value, 0) {
		return 0, fmt.Errorf("%s: %w: invalid distance %v", op, domain.ErrMalformedResponse, *d.Value)
	}
	return int64(math.Round(*d.Value)), nil
}

// redactURL strips the query string (and with it the API key) from the URL
// that net/http embeds in transport errors.
func redactURL(err error, endpoint string) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		ue.URL = endpoint
	}
	return err
}
