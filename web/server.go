// Package web serves a live chart viewer over HTTP for a single local user.
package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"

	"github.com/felixge/httpsnoop"
	"github.com/panyam/trendchart/logging"
	"github.com/panyam/trendchart/trend"
	"github.com/panyam/trendchart/viz"
)

// Server exposes an engine and the surface it draws on. All engine access
// goes through one mutex.
type Server struct {
	mu      sync.Mutex
	engine  *trend.Engine
	surface *viz.Surface
	svg     viz.ChartGenerator
	png     viz.ChartGenerator
	viewer  ViewerConfig
}

// NewServer wraps an engine whose render target is surface.
func NewServer(engine *trend.Engine, surface *viz.Surface, config viz.PlotConfig) *Server {
	return &Server{
		engine:  engine,
		surface: surface,
		svg:     viz.NewSVGPlotter(config),
		png:     viz.NewPNGRenderer(config),
		viewer: ViewerConfig{
			Title:         config.Metadata.Title,
			Width:         config.Width,
			Height:        config.Height,
			RefreshMillis: 1000,
		},
	}
}

// Do runs fn with exclusive access to the engine. Writers outside HTTP
// (a live feed, for instance) must go through it.
func (s *Server) Do(fn func(e *trend.Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.engine)
}

// Handler returns the routed, request-logging handler.
func (s *Server) Handler() http.Handler {
	r := http.NewServeMux()
	r.HandleFunc("GET /{$}", s.handleIndex)
	r.HandleFunc("GET /chart.svg", s.handleChart(s.svg))
	r.HandleFunc("GET /chart.png", s.handleChart(s.png))

	r.HandleFunc("GET /api/viewport", s.handleViewport)
	r.HandleFunc("POST /api/zoom", s.handleZoom)
	r.HandleFunc("POST /api/drag/start", s.handleDrag(false))
	r.HandleFunc("POST /api/drag/move", s.handleDrag(true))
	r.HandleFunc("POST /api/move", s.handleMove)
	r.HandleFunc("POST /api/reset", s.handleReset)
	return logRequests(r)
}

// logRequests logs every request with its status and duration.
func logRequests(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(h, w, r)
		level := logging.Debug
		if m.Code >= http.StatusInternalServerError {
			level = logging.Error
		}
		level("%s %s -> %d (%d bytes, %v)", r.Method, r.URL.RequestURI(), m.Code, m.Written, m.Duration)
	})
}

func (s *Server) handleChart(gen viz.ChartGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		s.mu.Lock()
		err := gen.Render(&buf, s.surface)
		s.mu.Unlock()

		switch {
		case errors.Is(err, viz.ErrEmptySurface):
			writeError(w, http.StatusNotFound, err)
		case err != nil:
			logging.Error("rendering %s: %v", gen.ContentType(), err)
			writeError(w, http.StatusInternalServerError, err)
		default:
			w.Header().Set("Content-Type", gen.ContentType())
			w.Header().Set("Cache-Control", "no-store")
			w.Write(buf.Bytes())
		}
	}
}

// ViewportResponse is returned by every interaction endpoint. Range is the
// X range on screen in both modes, so a client can map pointer positions
// before the first pan.
type ViewportResponse struct {
	Changed     bool                `json:"changed"`
	MoveEnabled bool                `json:"moveEnabled"`
	Viewport    trend.ViewportState `json:"viewport"`
	Range       [2]float64          `json:"range"`
}

func (s *Server) viewportResponse(changed bool) ViewportResponse {
	min, max := s.engine.VisibleRange()
	return ViewportResponse{
		Changed:     changed,
		MoveEnabled: s.engine.MoveEnabled(),
		Viewport:    s.engine.Viewport(),
		Range:       [2]float64{min, max},
	}
}

func (s *Server) handleViewport(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, s.viewportResponse(false))
}

func (s *Server) handleZoom(w http.ResponseWriter, r *http.Request) {
	delta, err := floatParam(r, "delta")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	ctrl, _ := strconv.ParseBool(r.URL.Query().Get("ctrl"))

	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, s.viewportResponse(s.engine.Zoom(delta, ctrl)))
}

func (s *Server) handleDrag(move bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		x, err := floatParam(r, "x")
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		var changed bool
		if move {
			changed = s.engine.DragMove(x)
		} else {
			changed = s.engine.DragStart(x)
		}
		writeJSON(w, s.viewportResponse(changed))
	}
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	enabled, err := strconv.ParseBool(r.URL.Query().Get("enabled"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SetMoveEnabled(enabled)
	writeJSON(w, s.viewportResponse(false))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Reset()
	writeJSON(w, s.viewportResponse(true))
}

func floatParam(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s must be a finite number, got %q", name, raw)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
