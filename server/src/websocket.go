// server/src/websocket.go
package main

import (
	"net/http"
	"time"

	"github.com/go-kit/log/level"
	"github.com/gorilla/websocket"
)

// Permissive origin check: the renderer runs on arbitrary dev origins.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// streamRequest is the client's opening frame on /ws/positions.
type streamRequest struct {
	IDs             []string `json:"ids"`
	IntervalSeconds int      `json:"interval_seconds"`
}

// positionFrame is one push: current positions for the subscribed bodies,
// always computed by the offline engine so the stream stays smooth even
// when Horizons is down.
type positionFrame struct {
	TS     string        `json:"ts"`
	States []StateVector `json:"states"`
	IDs    []string      `json:"ids"`
}

// handlePositionStream pushes fallback-engine positions at a client-chosen
// cadence until the client disconnects.
func (s *Server) handlePositionStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		level.Warn(s.logger).Log("msg", "websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	var req streamRequest
	if err := conn.ReadJSON(&req); err != nil {
		level.Debug(s.logger).Log("msg", "websocket bad subscription", "err", err)
		return
	}
	if len(req.IDs) == 0 {
		_ = conn.WriteJSON(map[string]string{"error": "ids is required"})
		return
	}
	interval := time.Duration(req.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := conn.WriteJSON(s.currentPositions(req.IDs)); err != nil {
			return
		}
		select {
		case <-ticker.C:
		case <-r.Context().Done():
			return
		}
	}
}

// currentPositions samples each subscribed body at the current instant.
func (s *Server) currentPositions(ids []string) positionFrame {
	now := formatSampleTime(time.Now())
	frame := positionFrame{TS: now, IDs: ids, States: make([]StateVector, 0, len(ids))}
	for _, id := range ids {
		res := s.engine.Series(id, DefaultCenter, now, now, "1h")
		if len(res.States) > 0 {
			frame.States = append(frame.States, res.States[0])
		} else {
			// Unknown body: hold the slot with a degraded sample so the
			// frame stays aligned with the subscription order.
			frame.States = append(frame.States, StateVector{T: now})
		}
	}
	return frame
}
