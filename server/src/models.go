// server/src/models.go
package main

import (
	"math"
	"time"
)

// Astronomical constants
const (
	AU            = 149597870.7 // Astronomical unit in kilometers
	MU_SUN        = 1.327e11    // Solar gravitational parameter, km^3/s^2
	HOURS_PER_DAY = 24.0

	// Kepler solver runs a fixed number of fixed-point passes. No convergence
	// check: bounded cost, accurate for low-to-moderate eccentricity.
	KEPLER_ITERATIONS = 5

	// Hard cap on samples per generated series. Longer windows are truncated;
	// callers wanting more must batch their requests.
	MAX_SERIES_SAMPLES = 1000
)

// ReferenceEpoch is the fixed epoch for mean-anomaly computation:
// 2000 January 1, 00:00 UTC.
var ReferenceEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Body kinds
const (
	KindStar        = "star"
	KindPlanet      = "planet"
	KindDwarfPlanet = "dwarf_planet"
	KindMoon        = "moon"
)

// CelestialBody holds the fixed two-body orbital elements and physical
// properties of one solar-system object. Instances are built once at startup
// and shared read-only; they are never mutated.
type CelestialBody struct {
	ID       string // Horizons numeric designation, e.g. "399" for Earth
	Name     string
	Kind     string // "star", "planet", "dwarf_planet" or "moon"
	ParentID string // set only for moons; always a planet (two-level tree)

	SemiMajorAxisKm   float64 // heliocentric for planets, parent-centric for moons
	Eccentricity      float64 // 0 <= e < 1
	InclinationDeg    float64
	OrbitalPeriodDays float64 // negative for retrograde orbits (e.g. Triton)

	MassKg   float64
	RadiusKm float64
}

// IsMoon reports whether the body orbits a planet rather than the Sun.
func (b CelestialBody) IsMoon() bool {
	return b.Kind == KindMoon
}

// Vector3 represents a 3D vector in kilometers.
type Vector3 struct {
	X, Y, Z float64
}

// Add returns the sum of two vectors.
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Scale returns the vector multiplied by a scalar.
func (v Vector3) Scale(factor float64) Vector3 {
	return Vector3{
		X: v.X * factor,
		Y: v.Y * factor,
		Z: v.Z * factor,
	}
}

// Magnitude returns the length of the vector.
func (v Vector3) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// IsFinite reports whether all three components are finite numbers.
func (v Vector3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// StateVector is one trajectory sample: position in km, velocity in km/s.
//
// For planets the velocity is a polar decomposition [v_radial, v_tangential, 0],
// NOT a Cartesian derivative of the position. Consumers must not add v*dt to r.
// For moons the velocity is reported as zero.
type StateVector struct {
	T string     `json:"t"` // RFC3339 UTC timestamp
	R [3]float64 `json:"r"` // km
	V [3]float64 `json:"v"` // km/s
}

// Finite reports whether every position and velocity component is finite.
func (s StateVector) Finite() bool {
	for i := 0; i < 3; i++ {
		if math.IsNaN(s.R[i]) || math.IsInf(s.R[i], 0) {
			return false
		}
		if math.IsNaN(s.V[i]) || math.IsInf(s.V[i], 0) {
			return false
		}
	}
	return true
}

// BodyResult is the per-body output shape shared by the live Horizons path
// and the offline fallback engine. States may be empty; Error carries a
// diagnostic when the series is degraded or could not be produced at all.
// The result itself never represents a hard failure.
type BodyResult struct {
	ID     string        `json:"id"`
	Center string        `json:"center"`
	States []StateVector `json:"states"`
	Error  string        `json:"error,omitempty"`
}

// formatSampleTime renders a sample instant the way both the generator and
// the moon composer must: composition matches timestamps by string equality.
func formatSampleTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
