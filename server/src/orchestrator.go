// server/src/orchestrator.go
package main

import (
	"context"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// EphemerisRequest names the bodies and window a client asked for.
type EphemerisRequest struct {
	IDs          []string
	Start        string
	Stop         string
	Step         string
	Center       string
	IncludeMoons bool
}

// Orchestrator applies the fetch-then-fallback policy: prefer the live
// ephemeris source, and on any failure or empty result switch to the
// offline Kepler engine. It never propagates a live-fetch error to the
// caller; every requested body comes back with a states series.
type Orchestrator struct {
	registry *Registry
	source   VectorSource
	engine   *FallbackEngine
	metrics  *MetricsCollector
	logger   log.Logger
	timeout  time.Duration
}

// NewOrchestrator wires the policy over a live source and the fallback
// engine. source may be nil, which forces the offline path (useful for
// air-gapped deployments and tests).
func NewOrchestrator(registry *Registry, source VectorSource, engine *FallbackEngine, metrics *MetricsCollector, logger log.Logger, timeout time.Duration) *Orchestrator {
	return &Orchestrator{
		registry: registry,
		source:   source,
		engine:   engine,
		metrics:  metrics,
		logger:   log.With(logger, "component", "orchestrator"),
		timeout:  timeout,
	}
}

// Ephemerides resolves every requested body, expanding planets to their
// moons when asked. Expansion does not deduplicate: a moon both requested
// directly and pulled in via its planet is processed twice, which is only
// a minor inefficiency since results are idempotent.
func (o *Orchestrator) Ephemerides(ctx context.Context, req EphemerisRequest) []BodyResult {
	center := req.Center
	if center == "" {
		center = DefaultCenter
	}

	ids := req.IDs
	if req.IncludeMoons {
		ids = o.expandMoons(ids)
	}

	out := make([]BodyResult, 0, len(ids))
	for _, id := range ids {
		out = append(out, o.ephemerisFor(ctx, id, req.Start, req.Stop, req.Step, center))
	}
	return out
}

// expandMoons appends the moon ids of every requested non-moon body,
// preserving request order.
func (o *Orchestrator) expandMoons(ids []string) []string {
	expanded := make([]string, 0, len(ids)*2)
	for _, id := range ids {
		expanded = append(expanded, id)
		body, ok := o.registry.Lookup(id)
		if !ok || body.IsMoon() {
			continue
		}
		for _, moon := range o.registry.Moons(body.ID) {
			expanded = append(expanded, moon.ID)
		}
	}
	return expanded
}

// ephemerisFor resolves one body. The live attempt runs under a bounded
// timeout; anything short of a non-empty parsed series triggers the
// fallback unconditionally.
func (o *Orchestrator) ephemerisFor(ctx context.Context, id, start, stop, step, center string) BodyResult {
	if o.source != nil {
		fetchCtx, cancel := context.WithTimeout(ctx, o.timeout)
		res, err := o.source.FetchVectors(fetchCtx, id, start, stop, step, center)
		cancel()

		switch {
		case err != nil:
			o.metrics.RecordUpstream("horizons", "error")
			level.Debug(o.logger).Log("msg", "live fetch failed, using fallback", "id", id, "err", err)
		case len(res.States) == 0:
			o.metrics.RecordUpstream("horizons", "empty")
			level.Debug(o.logger).Log("msg", "live fetch empty, using fallback", "id", id)
		default:
			o.metrics.RecordUpstream("horizons", "success")
			res.ID = id
			res.Center = center
			return res
		}
	}

	kind := "unknown"
	if body, ok := o.registry.Lookup(id); ok {
		kind = body.Kind
	}
	o.metrics.RecordFallback(kind)

	return o.engine.Series(id, center, start, stop, step)
}
