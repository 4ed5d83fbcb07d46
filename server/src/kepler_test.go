// server/src/kepler_test.go
package main

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestSolveKeplerCircularOrbit(t *testing.T) {
	// For e=0 the fixed-point iteration is the identity: E must equal M
	// exactly, for any M, normalized or not.
	testMs := []float64{0, 0.5, 1.0, math.Pi / 3, -2.5, 7 * math.Pi, -13.7, 123.456}

	for _, M := range testMs {
		E := solveKepler(M, 0)
		if E != M {
			t.Errorf("solveKepler(%v, 0) = %v, want exactly %v", M, E, M)
		}
		if r := orbitRadius(42.0, 0, E); r != 42.0 {
			t.Errorf("orbitRadius(42, 0, %v) = %v, want exactly 42", E, r)
		}
	}

	// True anomaly equals M for circular orbits (within atan2 round-trip
	// noise) when M is inside the principal branch.
	for _, M := range []float64{0, 0.5, -0.5, math.Pi / 3, -math.Pi / 2, 3.0} {
		nu := trueAnomaly(solveKepler(M, 0), 0)
		if !scalar.EqualWithinAbs(nu, M, 1e-12) {
			t.Errorf("trueAnomaly for e=0, M=%v: got %v, want %v", M, nu, M)
		}
	}
}

func TestSolveKeplerDeterministic(t *testing.T) {
	cases := []struct{ M, e float64 }{
		{0.3, 0.0167},
		{2.1, 0.2056},
		{-4.9, 0.0934},
		{17.2, 0.7507},
		{1e6, 0.5},
	}

	for _, tc := range cases {
		first := solveKepler(tc.M, tc.e)
		for i := 0; i < 10; i++ {
			if again := solveKepler(tc.M, tc.e); again != first {
				t.Errorf("solveKepler(%v, %v) not deterministic: %v vs %v", tc.M, tc.e, first, again)
			}
		}
	}
}

func TestSolveKeplerResidual(t *testing.T) {
	// Five fixed-point passes converge well for low eccentricity; verify the
	// Kepler residual E - e*sin(E) - M is small in that regime.
	for _, e := range []float64{0.0167, 0.05, 0.1} {
		for _, M := range []float64{0.2, 1.0, 2.7, -1.3} {
			E := solveKepler(M, e)
			residual := math.Abs(E - e*math.Sin(E) - M)
			if residual > 1e-4 {
				t.Errorf("residual for M=%v e=%v is %v, want < 1e-4", M, e, residual)
			}
		}
	}
}

func TestTrueAnomalyRadiusBounds(t *testing.T) {
	// r must stay inside [a(1-e), a(1+e)] whatever the anomaly.
	const a = 149597870.7
	for _, e := range []float64{0, 0.1, 0.4, 0.8} {
		for M := -10.0; M < 10.0; M += 0.37 {
			E := solveKepler(M, e)
			r := orbitRadius(a, e, E)
			if r < a*(1-e)-1e-6 || r > a*(1+e)+1e-6 {
				t.Errorf("r=%v outside [%v, %v] for M=%v e=%v", r, a*(1-e), a*(1+e), M, e)
			}
		}
	}
}
