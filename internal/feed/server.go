// Package feed pushes dashboard snapshots to websocket clients.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/live"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/metrics"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/pipeline"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/service"
)

const DefaultPollInterval = 10 * time.Second

// Source is the slice of the API client the feed polls. *client.Client satisfies it.
type Source interface {
	Health(ctx context.Context) error
	Alerts(ctx context.Context, severity string) (*pipeline.Result, error)
	Insights(ctx context.Context) (*service.InsightFeed, error)
	Energy(ctx context.Context) (*service.EnergySnapshot, error)
}

type Snapshot struct {
	Summary   *pipeline.Summary `json:"alert_summary,omitempty"`
	Insights  []domain.Insight  `json:"insights,omitempty"`
	Live      bool              `json:"live"`
	PowerKW   float64           `json:"power_kw"`
	Timestamp int64             `json:"timestamp"`
}

type Frame struct {
	Type string   `json:"type"`
	Data Snapshot `json:"data"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Server struct {
	mux       *http.ServeMux
	api       Source
	log       zerolog.Logger
	now       func() time.Time
	clients   map[*websocket.Conn]bool
	clientsMu sync.Mutex
	broadcast chan Frame
	poll      *live.Task
	done      chan struct{}
	stopOnce  sync.Once
}

func New(api Source, interval time.Duration, log zerolog.Logger) *Server {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	s := &Server{
		mux:       http.NewServeMux(),
		api:       api,
		log:       log.With().Str("component", "feed").Logger(),
		now:       time.Now,
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Frame, 256),
		done:      make(chan struct{}),
	}
	s.poll = live.NewTask(interval, s.Poll)
	s.mux.HandleFunc("/healthz", s.handleHealthz)
	s.mux.HandleFunc("/ws", s.handleWebSocket)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Start launches the broadcaster and the poll loop.
func (s *Server) Start(ctx context.Context) {
	go s.handleBroadcast()
	s.poll.Start(ctx)
}

// Stop halts polling and disconnects every client.
func (s *Server) Stop() {
	s.poll.Stop()
	s.stopOnce.Do(func() { close(s.done) })
	s.clientsMu.Lock()
	for conn := range s.clients {
		conn.Close()
		delete(s.clients, conn)
	}
	metrics.FeedClients.Set(0)
	s.clientsMu.Unlock()
}

func (s *Server) Clients() int {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	return len(s.clients)
}

// Poll fetches one snapshot and queues it for broadcast. A full queue drops
// the frame; the next poll carries fresher data anyway.
func (s *Server) Poll(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	snap, err := s.snapshot(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("poll failed")
		return
	}
	select {
	case s.broadcast <- Frame{Type: "update", Data: snap}:
	default:
		s.log.Warn().Msg("broadcast queue full, frame dropped")
	}
}

// snapshot tolerates partial failures and errors only when every call failed.
func (s *Server) snapshot(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{Timestamp: s.now().Unix()}
	var errs []error

	if alerts, err := s.api.Alerts(ctx, ""); err == nil {
		snap.Summary = &alerts.Summary
	} else {
		errs = append(errs, err)
	}
	if feed, err := s.api.Insights(ctx); err == nil {
		snap.Insights = feed.Insights
		snap.Live = feed.Live
	} else {
		errs = append(errs, err)
	}
	if energy, err := s.api.Energy(ctx); err == nil {
		snap.PowerKW = energy.CurrentPower
	} else {
		errs = append(errs, err)
	}

	if len(errs) == 3 {
		return Snapshot{}, errors.Join(errs...)
	}
	for _, err := range errs {
		s.log.Debug().Err(err).Msg("partial snapshot")
	}
	return snap, nil
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	// The init frame goes out before the conn is shared with the broadcaster.
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	snap, err := s.snapshot(ctx)
	cancel()
	if err != nil {
		s.log.Warn().Err(err).Msg("initial snapshot failed")
	}
	if err := conn.WriteJSON(Frame{Type: "init", Data: snap}); err != nil {
		conn.Close()
		return
	}

	s.clientsMu.Lock()
	s.clients[conn] = true
	metrics.FeedClients.Set(float64(len(s.clients)))
	s.clientsMu.Unlock()

	defer s.drop(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (s *Server) drop(conn *websocket.Conn) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	if s.clients[conn] {
		delete(s.clients, conn)
		metrics.FeedClients.Set(float64(len(s.clients)))
	}
	conn.Close()
}

func (s *Server) handleBroadcast() {
	for {
		select {
		case <-s.done:
			return
		case msg := <-s.broadcast:
			s.clientsMu.Lock()
			for conn := range s.clients {
				if err := conn.WriteJSON(msg); err != nil {
					conn.Close()
					delete(s.clients, conn)
				}
			}
			metrics.FeedClients.Set(float64(len(s.clients)))
			s.clientsMu.Unlock()
		}
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "offline"
	if err := s.api.Health(ctx); err == nil {
		status = "online"
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"status": status, "clients": s.Clients()}); err != nil {
		s.log.Warn().Err(err).Msg("healthz encode failed")
	}
}
