// server/src/handlers.go
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-kit/log/level"
	"github.com/gorilla/mux"
)

// routes builds the API router. Every /api route goes through CORS,
// rate-limit and metrics middleware.
func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.corsMiddleware, s.rateLimitMiddleware, s.metricsMiddleware)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/ephem", s.handleEphemeris).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/bodies", s.handleBodies).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/bodies/{id}", s.handleBody).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/sbdb/neo", s.handleNEOs).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/sbdb/object", s.handleSmallBody).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/apod", s.handleAPOD).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/mars/photos", s.handleMarsPhotos).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/donki/notifications", s.handleSpaceWeather).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/exoplanets", s.handleExoplanets).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet, http.MethodOptions)

	r.HandleFunc("/ws/positions", s.handlePositionStream)

	return r
}

// corsMiddleware allows the local dev renderer (any origin) to call the API.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// rateLimitMiddleware enforces the per-client request budget.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !s.limiter.Allow(ip) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// Hijack keeps websocket upgrades working through the middleware chain.
func (sr *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := sr.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return hj.Hijack()
}

func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		s.metrics.RecordRequest(route, rec.status, time.Since(start))
	})
}

// writeJSON encodes v, reporting encode failures as 500s.
func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		level.Error(s.logger).Log("msg", "response encode failed", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// writeRaw passes an upstream JSON payload through untouched.
func (s *Server) writeRaw(w http.ResponseWriter, raw json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(raw)
}

// handleEphemeris is the aggregate endpoint:
// /api/ephem?horizons_ids=399,499&start=2025-08-20&stop=2025-08-27&step=6h&center=500@0&moons=true
func (s *Server) handleEphemeris(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	idsParam := q.Get("horizons_ids")
	ids := make([]string, 0, 4)
	for _, raw := range strings.Split(idsParam, ",") {
		if id := strings.TrimSpace(raw); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		http.Error(w, "horizons_ids is required (comma-separated Horizons COMMAND ids)", http.StatusBadRequest)
		return
	}

	req := EphemerisRequest{
		IDs:          ids,
		Start:        q.Get("start"),
		Stop:         q.Get("stop"),
		Step:         q.Get("step"),
		Center:       q.Get("center"),
		IncludeMoons: parseBoolParam(q.Get("moons")),
	}

	key := cacheKey("ephem", idsParam, req.Start, req.Stop, req.Step, req.Center,
		strconv.FormatBool(req.IncludeMoons))
	if cached, ok := s.cache.Get(key); ok {
		s.metrics.RecordCache("hit")
		s.writeJSON(w, cached)
		return
	}
	s.metrics.RecordCache("miss")

	results := s.orchestrator.Ephemerides(r.Context(), req)
	s.cache.Set(key, results)
	s.writeJSON(w, results)
}

// bodyInfo is the registry view exposed to the renderer.
type bodyInfo struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Kind              string  `json:"kind"`
	ParentID          string  `json:"parent_id,omitempty"`
	SemiMajorAxisKm   float64 `json:"semi_major_axis_km"`
	Eccentricity      float64 `json:"eccentricity"`
	InclinationDeg    float64 `json:"inclination_deg"`
	OrbitalPeriodDays float64 `json:"orbital_period_days"`
	MassKg            float64 `json:"mass_kg"`
	RadiusKm          float64 `json:"radius_km"`
}

func toBodyInfo(b CelestialBody) bodyInfo {
	return bodyInfo{
		ID:                b.ID,
		Name:              b.Name,
		Kind:              b.Kind,
		ParentID:          b.ParentID,
		SemiMajorAxisKm:   b.SemiMajorAxisKm,
		Eccentricity:      b.Eccentricity,
		InclinationDeg:    b.InclinationDeg,
		OrbitalPeriodDays: b.OrbitalPeriodDays,
		MassKg:            b.MassKg,
		RadiusKm:          b.RadiusKm,
	}
}

func (s *Server) handleBodies(w http.ResponseWriter, r *http.Request) {
	bodies := s.registry.All()
	out := make([]bodyInfo, 0, len(bodies))
	for _, b := range bodies {
		out = append(out, toBodyInfo(b))
	}
	s.writeJSON(w, out)
}

func (s *Server) handleBody(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	body, ok := s.registry.Lookup(id)
	if !ok {
		http.Error(w, "unknown body id", http.StatusNotFound)
		return
	}
	s.writeJSON(w, toBodyInfo(body))
}

func (s *Server) handleNEOs(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r.URL.Query().Get("limit"), 50)

	key := cacheKey("sbdb_neo", strconv.Itoa(limit))
	if cached, ok := s.cache.Get(key); ok {
		s.metrics.RecordCache("hit")
		s.writeRaw(w, cached.(json.RawMessage))
		return
	}
	s.metrics.RecordCache("miss")

	raw, err := s.nasa.NEOs(r.Context(), limit)
	if err != nil {
		s.upstreamError(w, "sbdb", err)
		return
	}
	s.metrics.RecordUpstream("sbdb", "success")
	s.cache.Set(key, raw)
	s.writeRaw(w, raw)
}

func (s *Server) handleSmallBody(w http.ResponseWriter, r *http.Request) {
	des := r.URL.Query().Get("des")
	if des == "" {
		http.Error(w, "des is required", http.StatusBadRequest)
		return
	}

	key := cacheKey("sbdb_object", des)
	if cached, ok := s.cache.Get(key); ok {
		s.metrics.RecordCache("hit")
		s.writeRaw(w, cached.(json.RawMessage))
		return
	}
	s.metrics.RecordCache("miss")

	raw, err := s.nasa.SmallBody(r.Context(), des)
	if err != nil {
		s.upstreamError(w, "sbdb", err)
		return
	}
	s.metrics.RecordUpstream("sbdb", "success")
	s.cache.Set(key, raw)
	s.writeRaw(w, raw)
}

func (s *Server) handleAPOD(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	key := cacheKey("apod", date)
	if cached, ok := s.cache.Get(key); ok {
		s.metrics.RecordCache("hit")
		s.writeRaw(w, cached.(json.RawMessage))
		return
	}
	s.metrics.RecordCache("miss")

	raw, err := s.nasa.APOD(r.Context(), date)
	if err != nil {
		s.upstreamError(w, "apod", err)
		return
	}
	s.metrics.RecordUpstream("apod", "success")
	s.cache.Set(key, raw)
	s.writeRaw(w, raw)
}

func (s *Server) handleMarsPhotos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rover := q.Get("rover")
	if rover == "" {
		rover = "perseverance"
	}
	sol := parseIntParam(q.Get("sol"), 1000)
	camera := q.Get("camera")

	key := cacheKey("mars_photos", rover, strconv.Itoa(sol), camera)
	if cached, ok := s.cache.Get(key); ok {
		s.metrics.RecordCache("hit")
		s.writeRaw(w, cached.(json.RawMessage))
		return
	}
	s.metrics.RecordCache("miss")

	raw, err := s.nasa.MarsPhotos(r.Context(), rover, sol, camera)
	if err != nil {
		s.upstreamError(w, "mars_photos", err)
		return
	}
	s.metrics.RecordUpstream("mars_photos", "success")
	s.cache.Set(key, raw)
	s.writeRaw(w, raw)
}

func (s *Server) handleSpaceWeather(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind := q.Get("type")
	start := q.Get("start")
	end := q.Get("end")

	key := cacheKey("donki", kind, start, end)
	if cached, ok := s.cache.Get(key); ok {
		s.metrics.RecordCache("hit")
		s.writeRaw(w, cached.(json.RawMessage))
		return
	}
	s.metrics.RecordCache("miss")

	raw, err := s.nasa.SpaceWeather(r.Context(), kind, start, end)
	if err != nil {
		s.upstreamError(w, "donki", err)
		return
	}
	s.metrics.RecordUpstream("donki", "success")
	s.cache.Set(key, raw)
	s.writeRaw(w, raw)
}

func (s *Server) handleExoplanets(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r.URL.Query().Get("limit"), 100)

	key := cacheKey("exoplanets", strconv.Itoa(limit))
	if cached, ok := s.cache.Get(key); ok {
		s.metrics.RecordCache("hit")
		s.writeRaw(w, cached.(json.RawMessage))
		return
	}
	s.metrics.RecordCache("miss")

	raw, err := s.nasa.Exoplanets(r.Context(), limit)
	if err != nil {
		s.upstreamError(w, "exoplanets", err)
		return
	}
	s.metrics.RecordUpstream("exoplanets", "success")
	s.cache.Set(key, raw)
	s.writeRaw(w, raw)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]any{
		"ok": true,
		"ts": time.Now().UTC().Format(time.RFC3339),
	})
}

// upstreamError maps an upstream failure to a 502 and logs it. Only the
// augmentation proxies surface upstream errors; ephemerides never do.
func (s *Server) upstreamError(w http.ResponseWriter, source string, err error) {
	level.Warn(s.logger).Log("msg", "upstream error", "source", source, "err", err)
	s.metrics.RecordUpstream(source, "error")
	http.Error(w, "upstream error: "+err.Error(), http.StatusBadGateway)
}

func parseIntParam(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func parseBoolParam(raw string) bool {
	b, err := strconv.ParseBool(raw)
	return err == nil && b
}
