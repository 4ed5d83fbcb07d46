// server/src/positions.go
package main

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// DefaultStep is used when a step string is not one of the accepted
// "<number>h" / "<number>d" forms. A lenient default, not a parse failure.
const DefaultStep = 6 * time.Hour

// FallbackEngine computes deterministic Keplerian position series for bodies
// in the registry. It is the offline path used when the live ephemeris
// service fails. Every call returns a (possibly empty or degraded) series,
// never an error.
type FallbackEngine struct {
	registry *Registry
	logger   log.Logger
}

// NewFallbackEngine creates an engine over an immutable registry.
func NewFallbackEngine(registry *Registry, logger log.Logger) *FallbackEngine {
	return &FallbackEngine{
		registry: registry,
		logger:   log.With(logger, "component", "fallback"),
	}
}

// parseStepSize parses "<number>h" or "<number>d" into a duration. Anything
// else, including non-positive values, yields DefaultStep.
func parseStepSize(step string) time.Duration {
	s := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(step), " ", ""))
	if len(s) < 2 {
		return DefaultStep
	}
	unit := s[len(s)-1]
	n, err := strconv.ParseFloat(s[:len(s)-1], 64)
	if err != nil || math.IsNaN(n) || n <= 0 || math.IsInf(n, 0) {
		return DefaultStep
	}
	switch unit {
	case 'h':
		return time.Duration(n * float64(time.Hour))
	case 'd':
		return time.Duration(n * HOURS_PER_DAY * float64(time.Hour))
	default:
		return DefaultStep
	}
}

// parseWindowTime accepts the instant formats clients and the Horizons API
// exchange: RFC3339, "2006-01-02 15:04" and bare dates.
func parseWindowTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// meanAnomaly is the uniform-rate orbital angle at time t, in radians. It is
// a linear function of days elapsed since the reference epoch and may be any
// real value; retrograde bodies (negative period) simply run it backwards.
// A zero period (the Sun) is defined as M = 0.
func meanAnomaly(body CelestialBody, t time.Time) float64 {
	if body.OrbitalPeriodDays == 0 {
		return 0
	}
	days := t.Sub(ReferenceEpoch).Hours() / HOURS_PER_DAY
	return days / body.OrbitalPeriodDays * 2 * math.Pi
}

// orbitalPosition runs the shared pipeline: mean anomaly -> Kepler ->
// orbital-plane coordinates -> inclination rotation about the x-axis.
// It also returns the true anomaly for the velocity decomposition.
func orbitalPosition(body CelestialBody, t time.Time) (Vector3, float64) {
	M := meanAnomaly(body, t)
	E := solveKepler(M, body.Eccentricity)
	nu := trueAnomaly(E, body.Eccentricity)
	r := orbitRadius(body.SemiMajorAxisKm, body.Eccentricity, E)

	x := r * math.Cos(nu)
	y := r * math.Sin(nu)
	// z is 0 in the orbital plane, so the rotation about x collapses to two terms
	inc := degToRad(body.InclinationDeg)
	return Vector3{X: x, Y: y * math.Cos(inc), Z: y * math.Sin(inc)}, nu
}

// Series produces the ephemeris for one body id over [start, stop] at the
// given step. All failure modes are absorbed: unknown ids and impossible
// windows come back as empty or single-sample degraded results with a
// diagnostic set, never as an error.
func (f *FallbackEngine) Series(id, center, startStr, stopStr, stepStr string) BodyResult {
	res := BodyResult{ID: id, Center: center, States: []StateVector{}}

	body, ok := f.registry.Lookup(id)
	if !ok {
		level.Warn(f.logger).Log("msg", "unknown body id", "id", id)
		res.Error = "unknown body id"
		return res
	}

	step := parseStepSize(stepStr)
	start, startOK := parseWindowTime(startStr)
	stop, stopOK := parseWindowTime(stopStr)
	if !startOK || !stopOK {
		// Minimal viable degenerate response: one sample at the requested
		// start, parked on the x-axis at the semi-major axis.
		level.Warn(f.logger).Log("msg", "unparsable time window", "id", id, "start", startStr, "stop", stopStr)
		res.States = []StateVector{{
			T: startStr,
			R: [3]float64{body.SemiMajorAxisKm, 0, 0},
		}}
		res.Error = "unparsable time window"
		return res
	}

	// Two-level dispatch. The registry guarantees moons orbit planets only,
	// so there is no deeper recursion to bound.
	if body.IsMoon() {
		states, diag := f.moonSeries(body, start, stop, step)
		res.States = states
		res.Error = diag
		return res
	}
	res.States = f.heliocentricSeries(body, start, stop, step)
	return res
}

// heliocentricSeries generates samples for a non-moon body. Velocity is a
// vis-viva-style polar decomposition [v_radial, v_tangential, 0] in km/s,
// an approximation rather than a derivative of the position.
func (f *FallbackEngine) heliocentricSeries(body CelestialBody, start, stop time.Time, step time.Duration) []StateVector {
	states := make([]StateVector, 0, 64)
	for t := start; !t.After(stop) && len(states) < MAX_SERIES_SAMPLES; t = t.Add(step) {
		pos, nu := orbitalPosition(body, t)

		var vel Vector3
		if pos.IsFinite() {
			e := body.Eccentricity
			vc := math.Sqrt(MU_SUN / body.SemiMajorAxisKm)
			vel = Vector3{X: e * math.Sin(nu), Y: 1 + e*math.Cos(nu)}.Scale(vc)
		} else {
			// Degraded-but-valid sample: origin position, zero velocity.
			pos = Vector3{}
		}
		if !vel.IsFinite() {
			vel = Vector3{}
		}

		states = append(states, StateVector{
			T: formatSampleTime(t),
			R: [3]float64{pos.X, pos.Y, pos.Z},
			V: [3]float64{vel.X, vel.Y, vel.Z},
		})
	}
	return states
}

// moonSeries composes a moon's parent-relative Kepler offset onto the
// parent's heliocentric series. Samples are matched by exact timestamp
// string; moon samples without a parent match are dropped, not synthesized.
// Moon velocity is reported as zero.
func (f *FallbackEngine) moonSeries(moon CelestialBody, start, stop time.Time, step time.Duration) ([]StateVector, string) {
	states := make([]StateVector, 0, 64)

	parent, ok := f.registry.Lookup(moon.ParentID)
	if !ok {
		level.Warn(f.logger).Log("msg", "missing parent for moon", "id", moon.ID, "parent", moon.ParentID)
		return states, "unknown parent body"
	}
	if parent.IsMoon() {
		// Enforced invariant: the hierarchy is two levels deep at most.
		level.Warn(f.logger).Log("msg", "moon parented to a moon rejected", "id", moon.ID, "parent", parent.ID)
		return states, "nested moon orbits are not supported"
	}

	parentStates := f.heliocentricSeries(parent, start, stop, step)
	parentAt := make(map[string]Vector3, len(parentStates))
	for _, ps := range parentStates {
		parentAt[ps.T] = Vector3{X: ps.R[0], Y: ps.R[1], Z: ps.R[2]}
	}

	for t := start; !t.After(stop) && len(states) < MAX_SERIES_SAMPLES; t = t.Add(step) {
		ts := formatSampleTime(t)
		pr, matched := parentAt[ts]
		if !matched {
			continue
		}

		offset, _ := orbitalPosition(moon, t)
		if !offset.IsFinite() {
			offset = Vector3{}
		}

		pos := pr.Add(offset)
		states = append(states, StateVector{
			T: ts,
			R: [3]float64{pos.X, pos.Y, pos.Z},
		})
	}
	return states, ""
}
