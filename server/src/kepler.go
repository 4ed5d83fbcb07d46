// server/src/kepler.go
package main

import "math"

// Convert degrees to radians
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// solveKepler solves Kepler's equation M = E - e*sin(E) for the eccentric
// anomaly E by fixed-point iteration E <- M + e*sin(E), seeded with E = M.
//
// The iteration count is fixed: no convergence check, so the cost is bounded
// and the result is bit-identical for identical inputs. For e close to 1 the
// result may be a poor approximation; that is an accepted limitation of the
// fallback engine, not an error condition. M may be any real value, callers
// do not pre-normalize.
func solveKepler(M, e float64) float64 {
	E := M
	for i := 0; i < KEPLER_ITERATIONS; i++ {
		E = M + e*math.Sin(E)
	}
	return E
}

// trueAnomaly derives the true anomaly from the eccentric anomaly.
func trueAnomaly(E, e float64) float64 {
	return 2.0 * math.Atan2(
		math.Sqrt(1.0+e)*math.Sin(E/2.0),
		math.Sqrt(1.0-e)*math.Cos(E/2.0),
	)
}

// orbitRadius is the focal distance r = a*(1 - e*cos(E)).
func orbitRadius(a, e, E float64) float64 {
	return a * (1.0 - e*math.Cos(E))
}
