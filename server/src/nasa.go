// server/src/nasa.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-kit/log"
	"golang.org/x/time/rate"
)

// Upstream NASA/JPL endpoints
const (
	SBDBQueryURL   = "https://ssd-api.jpl.nasa.gov/sbdb_query.api"
	SBDBLookupURL  = "https://ssd-api.jpl.nasa.gov/sbdb.api"
	APODURL        = "https://api.nasa.gov/planetary/apod"
	MarsPhotosURL  = "https://api.nasa.gov/mars-photos/api/v1/rovers/%s/photos"
	DONKIURL       = "https://api.nasa.gov/DONKI/notifications"
	ExoplanetTAP   = "https://exoplanetarchive.ipac.caltech.edu/TAP/sync"
	sbdbNEOFields  = "full_name,des,orbit_class,albedo,diameter,H,moid_au,pha"
	exoplanetQuery = "select top %d pl_name,hostname,disc_year,discoverymethod,pl_orbper,pl_rade,pl_bmasse,sy_dist from ps where default_flag=1 order by disc_year desc"
)

// NASAClient proxies the non-ephemeris NASA/JPL endpoints the visualization
// client augments its scene with. Responses are passed through as raw JSON;
// this layer adds only the API key, timeouts and rate limiting.
type NASAClient struct {
	client  *http.Client
	apiKey  string
	limiter *rate.Limiter
	logger  log.Logger
}

// NewNASAClient creates a proxy client. apiKey is the api.nasa.gov key;
// the JPL SSD endpoints do not require one.
func NewNASAClient(apiKey string, timeout time.Duration, rps float64, logger log.Logger) *NASAClient {
	return &NASAClient{
		client:  &http.Client{Timeout: timeout},
		apiKey:  apiKey,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  log.With(logger, "component", "nasa"),
	}
}

// getJSON performs a rate-limited GET and returns the body as raw JSON.
func (n *NASAClient) getJSON(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("upstream rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("upstream request build: %w", err)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("upstream returned status %d: %s", resp.StatusCode, string(snippet))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("upstream response read: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("upstream returned invalid JSON")
	}
	return json.RawMessage(body), nil
}

// NEOs queries the SBDB for near-Earth objects.
func (n *NASAClient) NEOs(ctx context.Context, limit int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("neo", "Y")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("fields", sbdbNEOFields)
	return n.getJSON(ctx, SBDBQueryURL, params)
}

// SmallBody looks up a single small body by designation.
func (n *NASAClient) SmallBody(ctx context.Context, des string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("sstr", des)
	return n.getJSON(ctx, SBDBLookupURL, params)
}

// APOD fetches the Astronomy Picture of the Day; date is optional YYYY-MM-DD.
func (n *NASAClient) APOD(ctx context.Context, date string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("api_key", n.apiKey)
	if date != "" {
		params.Set("date", date)
	}
	return n.getJSON(ctx, APODURL, params)
}

// MarsPhotos fetches rover photos for one sol; camera is optional.
func (n *NASAClient) MarsPhotos(ctx context.Context, rover string, sol int, camera string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("api_key", n.apiKey)
	params.Set("sol", strconv.Itoa(sol))
	if camera != "" {
		params.Set("camera", camera)
	}
	return n.getJSON(ctx, fmt.Sprintf(MarsPhotosURL, url.PathEscape(rover)), params)
}

// SpaceWeather fetches DONKI notifications; kind filters the event type
// ("all", "FLR", "CME", ...) and start/end are optional YYYY-MM-DD bounds.
func (n *NASAClient) SpaceWeather(ctx context.Context, kind, start, end string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("api_key", n.apiKey)
	if kind == "" {
		kind = "all"
	}
	params.Set("type", kind)
	if start != "" {
		params.Set("startDate", start)
	}
	if end != "" {
		params.Set("endDate", end)
	}
	return n.getJSON(ctx, DONKIURL, params)
}

// Exoplanets queries the Exoplanet Archive TAP service for confirmed planets.
func (n *NASAClient) Exoplanets(ctx context.Context, limit int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("query", fmt.Sprintf(exoplanetQuery, limit))
	params.Set("format", "json")
	return n.getJSON(ctx, ExoplanetTAP, params)
}
