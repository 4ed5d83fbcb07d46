// server/src/orchestrator_test.go
package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
)

// stubSource is a scriptable VectorSource.
type stubSource struct {
	res   BodyResult
	err   error
	calls []string
}

func (s *stubSource) FetchVectors(ctx context.Context, id, start, stop, step, center string) (BodyResult, error) {
	s.calls = append(s.calls, id)
	if s.err != nil {
		return BodyResult{}, s.err
	}
	return s.res, nil
}

func newTestOrchestrator(source VectorSource) *Orchestrator {
	registry := NewRegistry(testBodies)
	logger := log.NewNopLogger()
	engine := NewFallbackEngine(registry, logger)
	metrics := NewMetricsCollector(prometheus.NewRegistry())
	return NewOrchestrator(registry, source, engine, metrics, logger, time.Second)
}

func testWindowRequest(ids []string, moons bool) EphemerisRequest {
	return EphemerisRequest{
		IDs:          ids,
		Start:        epochStr(0),
		Stop:         epochStr(24 * time.Hour),
		Step:         "6h",
		IncludeMoons: moons,
	}
}

func TestOrchestratorFallbackOnError(t *testing.T) {
	source := &stubSource{err: errors.New("network down")}
	o := newTestOrchestrator(source)

	results := o.Ephemerides(context.Background(), testWindowRequest([]string{"900001"}, false))
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	res := results[0]
	if res.ID != "900001" || res.Center != DefaultCenter {
		t.Errorf("identifying fields missing: id=%q center=%q", res.ID, res.Center)
	}
	// Fallback must have produced a full series despite the fetch error.
	if len(res.States) != 5 {
		t.Errorf("expected 5 fallback samples, got %d", len(res.States))
	}
	if len(source.calls) != 1 {
		t.Errorf("live source should have been attempted once, got %d", len(source.calls))
	}
}

func TestOrchestratorFallbackOnEmpty(t *testing.T) {
	source := &stubSource{res: BodyResult{States: []StateVector{}}}
	o := newTestOrchestrator(source)

	results := o.Ephemerides(context.Background(), testWindowRequest([]string{"900001"}, false))
	if len(results[0].States) != 5 {
		t.Errorf("empty live result must trigger fallback, got %d samples", len(results[0].States))
	}
}

func TestOrchestratorPrefersLiveData(t *testing.T) {
	live := BodyResult{States: []StateVector{
		{T: "2025-Aug-21 00:00:00.0000", R: [3]float64{1, 2, 3}, V: [3]float64{4, 5, 6}},
	}}
	source := &stubSource{res: live}
	o := newTestOrchestrator(source)

	results := o.Ephemerides(context.Background(), testWindowRequest([]string{"900001"}, false))
	res := results[0]
	if len(res.States) != 1 || res.States[0].R != [3]float64{1, 2, 3} {
		t.Fatalf("live data should pass through, got %+v", res.States)
	}
	if res.ID != "900001" || res.Center != DefaultCenter {
		t.Errorf("live result must be stamped with id and center, got id=%q center=%q", res.ID, res.Center)
	}
}

func TestOrchestratorNilSource(t *testing.T) {
	o := newTestOrchestrator(nil)

	results := o.Ephemerides(context.Background(), testWindowRequest([]string{"900001"}, false))
	if len(results[0].States) != 5 {
		t.Errorf("nil source must use the offline path, got %d samples", len(results[0].States))
	}
}

func TestOrchestratorUnknownBodyNeverErrors(t *testing.T) {
	source := &stubSource{err: errors.New("boom")}
	o := newTestOrchestrator(source)

	results := o.Ephemerides(context.Background(), testWindowRequest([]string{"424242"}, false))
	res := results[0]
	if res.ID != "424242" {
		t.Errorf("unknown body keeps its id, got %q", res.ID)
	}
	if res.States == nil || len(res.States) != 0 {
		t.Errorf("unknown body yields empty (non-nil) states, got %v", res.States)
	}
}

func TestOrchestratorMoonExpansion(t *testing.T) {
	source := &stubSource{err: errors.New("force fallback")}
	o := newTestOrchestrator(source)

	results := o.Ephemerides(context.Background(), testWindowRequest([]string{"900001"}, true))

	wantIDs := []string{"900001", "900101", "900102"}
	if len(results) != len(wantIDs) {
		t.Fatalf("expected %d results, got %d", len(wantIDs), len(results))
	}
	for i, want := range wantIDs {
		if results[i].ID != want {
			t.Errorf("result[%d].ID = %q, want %q", i, results[i].ID, want)
		}
	}
}

func TestOrchestratorExpansionDoesNotDeduplicate(t *testing.T) {
	source := &stubSource{err: errors.New("force fallback")}
	o := newTestOrchestrator(source)

	// Selene is both requested directly and pulled in via its planet;
	// it is processed twice.
	results := o.Ephemerides(context.Background(), testWindowRequest([]string{"900101", "900001"}, true))

	wantIDs := []string{"900101", "900001", "900101", "900102"}
	if len(results) != len(wantIDs) {
		t.Fatalf("expected %d results, got %d", len(wantIDs), len(results))
	}
	for i, want := range wantIDs {
		if results[i].ID != want {
			t.Errorf("result[%d].ID = %q, want %q", i, results[i].ID, want)
		}
	}
}
