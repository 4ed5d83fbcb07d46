// server/src/positions_test.go
package main

import (
	"testing"
	"time"

	"github.com/go-kit/log"
	"gonum.org/v1/gonum/floats/scalar"
)

// Synthetic bodies so engine tests do not depend on the production table.
var testBodies = []CelestialBody{
	{
		ID: "900001", Name: "Aurora", Kind: KindPlanet,
		SemiMajorAxisKm: 149597870.7, Eccentricity: 0.0167,
		InclinationDeg: 0.0, OrbitalPeriodDays: 365.25,
		MassKg: 5.972e24, RadiusKm: 6371.0,
	},
	{
		ID: "900002", Name: "Borealis", Kind: KindPlanet,
		SemiMajorAxisKm: 227939200, Eccentricity: 0.0934,
		InclinationDeg: 1.850, OrbitalPeriodDays: 686.980,
		MassKg: 6.417e23, RadiusKm: 3389.5,
	},
	{
		ID: "900101", Name: "Selene", Kind: KindMoon, ParentID: "900001",
		SemiMajorAxisKm: 384400, Eccentricity: 0.0549,
		InclinationDeg: 5.145, OrbitalPeriodDays: 27.3217,
		MassKg: 7.342e22, RadiusKm: 1737.4,
	},
	{
		ID: "900102", Name: "Contra", Kind: KindMoon, ParentID: "900001",
		SemiMajorAxisKm: 354760, Eccentricity: 0.000016,
		InclinationDeg: 156.865, OrbitalPeriodDays: -5.8769,
		MassKg: 2.14e22, RadiusKm: 1353.4,
	},
	{
		ID: "900103", Name: "Orphan", Kind: KindMoon, ParentID: "999999",
		SemiMajorAxisKm: 100000, Eccentricity: 0.01,
		InclinationDeg: 1.0, OrbitalPeriodDays: 3.0,
	},
	{
		ID: "900000", Name: "Helios", Kind: KindStar,
		MassKg: 1.989e30, RadiusKm: 695700.0,
	},
}

func newTestEngine() *FallbackEngine {
	return NewFallbackEngine(NewRegistry(testBodies), log.NewNopLogger())
}

func epochStr(offset time.Duration) string {
	return ReferenceEpoch.Add(offset).Format(time.RFC3339)
}

func TestParseStepSize(t *testing.T) {
	testCases := []struct {
		in   string
		want time.Duration
	}{
		{"24h", 24 * time.Hour},
		{"6h", 6 * time.Hour},
		{"2d", 48 * time.Hour},
		{"0.5d", 12 * time.Hour},
		{"6 h", 6 * time.Hour},
		{"", DefaultStep},
		{"banana", DefaultStep},
		{"-4h", DefaultStep},
		{"0h", DefaultStep},
		{"10m", DefaultStep},
		{"nanh", DefaultStep},
		{"nand", DefaultStep},
		{"infh", DefaultStep},
		{"+infd", DefaultStep},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			if got := parseStepSize(tc.in); got != tc.want {
				t.Errorf("parseStepSize(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestSeriesSampleCount(t *testing.T) {
	engine := newTestEngine()

	// floor((stop-start)/step) + 1 when under the cap
	res := engine.Series("900001", DefaultCenter, epochStr(0), epochStr(24*time.Hour), "6h")
	if len(res.States) != 5 {
		t.Fatalf("expected 5 samples for a 24h window at 6h step, got %d", len(res.States))
	}
	if res.Error != "" {
		t.Errorf("unexpected diagnostic: %q", res.Error)
	}

	// timestamps strictly increasing
	for i := 1; i < len(res.States); i++ {
		if res.States[i].T <= res.States[i-1].T {
			t.Errorf("timestamps not increasing at %d: %s then %s", i, res.States[i-1].T, res.States[i].T)
		}
	}
}

func TestSeriesNaNStepUsesDefault(t *testing.T) {
	engine := newTestEngine()

	// "nanh" parses as a float but must not leak into the step arithmetic:
	// the series falls back to the 6h default and stays forward in time.
	res := engine.Series("900001", DefaultCenter, epochStr(0), epochStr(24*time.Hour), "nanh")
	if len(res.States) != 5 {
		t.Fatalf("expected 5 samples at the default step, got %d", len(res.States))
	}
	for i := 1; i < len(res.States); i++ {
		if res.States[i].T <= res.States[i-1].T {
			t.Errorf("timestamps not increasing at %d: %s then %s", i, res.States[i-1].T, res.States[i].T)
		}
	}
}

func TestSeriesLengthCap(t *testing.T) {
	engine := newTestEngine()

	// 2001 instants requested, capped at 1000
	res := engine.Series("900001", DefaultCenter, epochStr(0), epochStr(2000*time.Hour), "1h")
	if len(res.States) != MAX_SERIES_SAMPLES {
		t.Fatalf("expected series capped at %d samples, got %d", MAX_SERIES_SAMPLES, len(res.States))
	}
}

func TestSeriesEmptyWindow(t *testing.T) {
	engine := newTestEngine()

	res := engine.Series("900001", DefaultCenter, epochStr(24*time.Hour), epochStr(0), "6h")
	if len(res.States) != 0 {
		t.Fatalf("start > stop must yield an empty series, got %d samples", len(res.States))
	}
	if res.Error != "" {
		t.Errorf("empty window is not an error, got %q", res.Error)
	}
}

func TestSeriesUnknownBody(t *testing.T) {
	engine := newTestEngine()

	res := engine.Series("424242", DefaultCenter, epochStr(0), epochStr(24*time.Hour), "6h")
	if len(res.States) != 0 {
		t.Fatalf("unknown body must yield an empty series, got %d samples", len(res.States))
	}
	if res.Error == "" {
		t.Error("unknown body should carry a diagnostic")
	}
	if res.ID != "424242" || res.Center != DefaultCenter {
		t.Errorf("result must keep identifying fields, got id=%q center=%q", res.ID, res.Center)
	}
}

func TestSeriesUnparsableWindow(t *testing.T) {
	engine := newTestEngine()

	res := engine.Series("900001", DefaultCenter, "not-a-time", epochStr(0), "6h")
	if len(res.States) != 1 {
		t.Fatalf("unparsable window must yield exactly one degraded sample, got %d", len(res.States))
	}
	s := res.States[0]
	if s.T != "not-a-time" {
		t.Errorf("degraded sample keeps the raw start instant, got %q", s.T)
	}
	if s.R != [3]float64{149597870.7, 0, 0} {
		t.Errorf("degraded sample position must be [a,0,0], got %v", s.R)
	}
	if s.V != [3]float64{} {
		t.Errorf("degraded sample velocity must be zero, got %v", s.V)
	}
	if res.Error == "" {
		t.Error("degraded result should carry a diagnostic")
	}
}

func TestSeriesFiniteness(t *testing.T) {
	logger := log.NewNopLogger()

	// Wide sweep of eccentricities and inclinations: every emitted component
	// must be finite even where the solver approximation is poor.
	for e := 0.0; e < 0.9; e += 0.1 {
		for i := 0.0; i < 180.0; i += 30.0 {
			body := CelestialBody{
				ID: "sweep", Name: "Sweep", Kind: KindPlanet,
				SemiMajorAxisKm: 1.5e8, Eccentricity: e,
				InclinationDeg: i, OrbitalPeriodDays: 365.25,
			}
			engine := NewFallbackEngine(NewRegistry([]CelestialBody{body}), logger)
			res := engine.Series("sweep", DefaultCenter, epochStr(0), epochStr(10*24*time.Hour), "12h")
			if len(res.States) == 0 {
				t.Fatalf("no samples for e=%v i=%v", e, i)
			}
			for _, s := range res.States {
				if !s.Finite() {
					t.Fatalf("non-finite sample for e=%v i=%v: %+v", e, i, s)
				}
			}
		}
	}
}

func TestSeriesRetrograde(t *testing.T) {
	engine := newTestEngine()

	// Contra has a negative orbital period: mean anomaly runs backward,
	// which must still produce a finite, well-defined series.
	res := engine.Series("900102", DefaultCenter, epochStr(0), epochStr(48*time.Hour), "6h")
	if len(res.States) != 9 {
		t.Fatalf("expected 9 samples, got %d", len(res.States))
	}
	for _, s := range res.States {
		if !s.Finite() {
			t.Fatalf("non-finite retrograde sample: %+v", s)
		}
	}
}

func TestSeriesZeroPeriodBody(t *testing.T) {
	engine := newTestEngine()

	// The star has period 0 and a=0; by contract M=0 and the samples sit at
	// the origin with zero velocity.
	res := engine.Series("900000", DefaultCenter, epochStr(0), epochStr(12*time.Hour), "6h")
	if len(res.States) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(res.States))
	}
	for _, s := range res.States {
		if s.R != [3]float64{} || s.V != [3]float64{} {
			t.Errorf("star sample should be degenerate origin, got %+v", s)
		}
	}
}

func TestSeriesEpochStart(t *testing.T) {
	engine := newTestEngine()

	// At the reference epoch M=0, so the first sample sits at perihelion:
	// x = a(1-e), y = z = 0.
	const a, e = 149597870.7, 0.0167
	res := engine.Series("900001", DefaultCenter, epochStr(0), epochStr(24*time.Hour), "24h")
	if len(res.States) != 2 {
		t.Fatalf("expected exactly 2 samples, got %d", len(res.States))
	}

	first := res.States[0]
	if !scalar.EqualWithinAbs(first.R[0], a*(1-e), 1e-3) {
		t.Errorf("perihelion x: got %v, want %v", first.R[0], a*(1-e))
	}
	if !scalar.EqualWithinAbs(first.R[1], 0, 1e-3) || !scalar.EqualWithinAbs(first.R[2], 0, 1e-3) {
		t.Errorf("perihelion y,z should be ~0, got %v, %v", first.R[1], first.R[2])
	}

	// radial speed vanishes at perihelion; tangential speed is positive
	if !scalar.EqualWithinAbs(first.V[0], 0, 1e-9) {
		t.Errorf("radial speed at perihelion: got %v, want 0", first.V[0])
	}
	if first.V[1] <= 0 {
		t.Errorf("tangential speed at perihelion should be positive, got %v", first.V[1])
	}

	// every sample radius stays within the ellipse bounds
	for _, s := range res.States {
		r := Vector3{X: s.R[0], Y: s.R[1], Z: s.R[2]}.Magnitude()
		if r < a*(1-e)-1 || r > a*(1+e)+1 {
			t.Errorf("sample radius %v outside [%v, %v]", r, a*(1-e), a*(1+e))
		}
	}
}

func TestMoonComposition(t *testing.T) {
	engine := newTestEngine()

	start, stop := epochStr(0), epochStr(48*time.Hour)
	moonRes := engine.Series("900101", DefaultCenter, start, stop, "6h")
	parentRes := engine.Series("900001", DefaultCenter, start, stop, "6h")

	if len(moonRes.States) == 0 {
		t.Fatal("moon series is empty")
	}
	// Same cadence, same loop bounds: the moon series must not drift.
	if len(moonRes.States) != len(parentRes.States) {
		t.Fatalf("moon has %d samples, parent %d", len(moonRes.States), len(parentRes.States))
	}

	parentAt := make(map[string][3]float64, len(parentRes.States))
	for _, ps := range parentRes.States {
		parentAt[ps.T] = ps.R
	}

	moon, _ := engine.registry.Lookup("900101")
	for _, ms := range moonRes.States {
		pr, ok := parentAt[ms.T]
		if !ok {
			t.Fatalf("moon sample %s has no parent sample", ms.T)
		}

		sampleTime, err := time.Parse(time.RFC3339, ms.T)
		if err != nil {
			t.Fatalf("bad sample timestamp %q: %v", ms.T, err)
		}
		offset, _ := orbitalPosition(moon, sampleTime)

		for i, want := range []float64{pr[0] + offset.X, pr[1] + offset.Y, pr[2] + offset.Z} {
			if !scalar.EqualWithinAbs(ms.R[i], want, 1e-6) {
				t.Errorf("composed position[%d] at %s: got %v, want %v", i, ms.T, ms.R[i], want)
			}
		}

		// moon velocity is always reported as zero
		if ms.V != [3]float64{} {
			t.Errorf("moon velocity must be zero, got %v", ms.V)
		}
	}
}

func TestMoonMissingParent(t *testing.T) {
	engine := newTestEngine()

	res := engine.Series("900103", DefaultCenter, epochStr(0), epochStr(24*time.Hour), "6h")
	if len(res.States) != 0 {
		t.Fatalf("moon with missing parent must yield empty series, got %d samples", len(res.States))
	}
	if res.Error == "" {
		t.Error("missing parent should carry a diagnostic")
	}

	// Sibling bodies are unaffected.
	sibling := engine.Series("900101", DefaultCenter, epochStr(0), epochStr(24*time.Hour), "6h")
	if len(sibling.States) == 0 {
		t.Error("sibling moon should still generate")
	}
}
