// server/src/horizons.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/time/rate"
)

const (
	// HorizonsAPIURL is the JPL Horizons JSON API endpoint.
	HorizonsAPIURL = "https://ssd-api.jpl.nasa.gov/horizons.api"

	// DefaultCenter is the Sun barycenter in Horizons CENTER syntax.
	DefaultCenter = "500@0"
)

// VectorSource supplies position series from a live ephemeris service.
// The orchestrator treats any error or empty result as a fallback trigger.
type VectorSource interface {
	FetchVectors(ctx context.Context, id, start, stop, step, center string) (BodyResult, error)
}

// HorizonsClient queries JPL Horizons for Cartesian state vectors. A shared
// limiter keeps the aggregate upstream request rate polite regardless of how
// many client requests fan out.
type HorizonsClient struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	logger  log.Logger
}

// NewHorizonsClient creates a Horizons API client with a bounded per-request
// timeout and a global requests-per-second ceiling.
func NewHorizonsClient(timeout time.Duration, rps float64, logger log.Logger) *HorizonsClient {
	return &HorizonsClient{
		baseURL: HorizonsAPIURL,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  log.With(logger, "component", "horizons"),
	}
}

// horizonsResponse is the JSON envelope. CSV_FORMAT=YES responses may carry
// a parsed data array; older-style responses put a text table in result.
type horizonsResponse struct {
	Data   [][]any `json:"data"`
	Result string  `json:"result"`
}

// FetchVectors requests VECTORS ephemerides for one body over a window.
// Any transport error, non-2xx status or unparsable body is returned as an
// error; the caller decides whether to fall back.
func (c *HorizonsClient) FetchVectors(ctx context.Context, id, start, stop, step, center string) (BodyResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return BodyResult{}, fmt.Errorf("horizons rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("COMMAND", id)
	params.Set("MAKE_EPHEM", "YES")
	params.Set("EPHEM_TYPE", "VECTORS")
	params.Set("OBJ_DATA", "NO")
	params.Set("CENTER", center)
	params.Set("START_TIME", start)
	params.Set("STOP_TIME", stop)
	params.Set("STEP_SIZE", step)
	params.Set("CSV_FORMAT", "YES")
	params.Set("OUT_UNITS", "KM-S")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return BodyResult{}, fmt.Errorf("horizons request build: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return BodyResult{}, fmt.Errorf("horizons request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return BodyResult{}, fmt.Errorf("horizons returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return BodyResult{}, fmt.Errorf("horizons response read: %w", err)
	}

	result, err := parseHorizonsVectors(id, center, body)
	if err != nil {
		level.Warn(c.logger).Log("msg", "unparsable horizons response", "id", id, "err", err)
		return BodyResult{}, err
	}
	return result, nil
}

// parseHorizonsVectors extracts state vectors from a Horizons response.
// The JSON data array is tried first; failing that, the classic text table
// between $$SOE and $$EOE markers.
func parseHorizonsVectors(id, center string, body []byte) (BodyResult, error) {
	var resp horizonsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return BodyResult{}, fmt.Errorf("horizons json decode: %w", err)
	}

	res := BodyResult{ID: id, Center: center, States: []StateVector{}}

	// Data-array rows: index 0 is the datetime, 2..4 position, 5..7 velocity.
	for _, row := range resp.Data {
		if len(row) < 8 {
			continue
		}
		t, ok := row[0].(string)
		if !ok {
			continue
		}
		vals := make([]float64, 0, 6)
		rowOK := true
		for _, cell := range row[2:8] {
			v, ok := asFloat(cell)
			if !ok {
				rowOK = false
				break
			}
			vals = append(vals, v)
		}
		if !rowOK {
			continue
		}
		res.States = append(res.States, StateVector{
			T: t,
			R: [3]float64{vals[0], vals[1], vals[2]},
			V: [3]float64{vals[3], vals[4], vals[5]},
		})
	}
	if len(res.States) > 0 {
		return res, nil
	}

	states, err := parseVectorTable(resp.Result)
	if err != nil {
		return BodyResult{}, err
	}
	res.States = states
	return res, nil
}

// parseVectorTable parses the CSV rows between $$SOE and $$EOE.
// With CSV_FORMAT=YES each data row is:
//
//	2025-Aug-21 00:00:00.0000, 1.234E+08, 2.345E+07, -9.876E+06, -12.34, 23.45, 0.67,
func parseVectorTable(result string) ([]StateVector, error) {
	soe := strings.Index(result, "$$SOE")
	eoe := strings.Index(result, "$$EOE")
	if soe == -1 || eoe == -1 || soe >= eoe {
		return nil, fmt.Errorf("no vector data markers in horizons result")
	}

	var states []StateVector
	for _, raw := range strings.Split(result[soe+5:eoe], "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" || strings.HasPrefix(raw, "!") {
			continue
		}
		parts := strings.Split(raw, ",")
		if len(parts) < 7 {
			continue
		}
		vals := make([]float64, 0, 6)
		rowOK := true
		for _, p := range parts[1:7] {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				rowOK = false
				break
			}
			vals = append(vals, v)
		}
		if !rowOK {
			continue
		}
		states = append(states, StateVector{
			T: strings.TrimSpace(parts[0]),
			R: [3]float64{vals[0], vals[1], vals[2]},
			V: [3]float64{vals[3], vals[4], vals[5]},
		})
	}

	if len(states) == 0 {
		return nil, fmt.Errorf("horizons returned no vector data")
	}
	return states, nil
}

// asFloat coerces a JSON cell that may arrive as a number or a string.
func asFloat(cell any) (float64, bool) {
	switch v := cell.(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
