// Package http exposes the tour engine over a JSON API, so a thin web
// client can treat the engine as the single source of truth for tour state.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	tour "github.com/josephwaugh312/shiftsync-tour"
	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
)

// Engine defines the surface of the tour core the API consumes.
type Engine interface {
	State() domain.TourState
	Catalog() domain.Catalog
	View(ctx context.Context) (*tour.StepView, error)
	Start(ctx context.Context)
	Restart(ctx context.Context)
	Resume(ctx context.Context)
	Toggle(ctx context.Context)
	Next(ctx context.Context) bool
	Prev(ctx context.Context) bool
	Skip(ctx context.Context)
	CheckRequiredAction() bool
	CompleteRequiredAction(ctx context.Context)
	HandleRouteChange(ctx context.Context, route string)
	HandleClick(ctx context.Context, href string)
	HandleKey(ctx context.Context, key domain.KeyEvent)
}

// Server carries the engine and its logger across handlers.
type Server struct {
	Engine Engine
	Logger *slog.Logger
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, logger *slog.Logger) http.Handler {
	s := &Server{Engine: engine, Logger: logger}

	r := chi.NewRouter()
	r.Route("/tour", func(r chi.Router) {
		r.Get("/", s.GetState)
		r.Get("/view", s.GetView)
		r.Get("/catalog", s.GetCatalog)

		r.Post("/start", s.command(Engine.Start))
		r.Post("/restart", s.command(Engine.Restart))
		r.Post("/resume", s.command(Engine.Resume))
		r.Post("/toggle", s.command(Engine.Toggle))
		r.Post("/skip", s.command(Engine.Skip))
		r.Post("/complete-action", s.command(Engine.CompleteRequiredAction))
		r.Post("/next", s.Next)
		r.Post("/prev", s.Prev)

		r.Post("/signals/route", s.SignalRoute)
		r.Post("/signals/click", s.SignalClick)
		r.Post("/signals/key", s.SignalKey)
	})
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// StateResponse pairs the raw state with the current step so clients render
// in one round trip.
type StateResponse struct {
	State       domain.TourState       `json:"state"`
	CurrentStep *domain.StepDescriptor `json:"current_step,omitempty"`
	ActionMet   bool                   `json:"action_met"`
}

// GetState handles GET /tour.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	s.writeState(w)
}

// GetView handles GET /tour/view: the resolved geometry for the current
// step, or 204 while the tour is inactive.
func (s *Server) GetView(w http.ResponseWriter, r *http.Request) {
	view, err := s.Engine.View(r.Context())
	if err != nil {
		http.Error(w, "View error", http.StatusInternalServerError)
		s.Logger.Error("view failed", "err", err)
		return
	}
	if view == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.writeJSON(w, view)
}

// GetCatalog handles GET /tour/catalog.
func (s *Server) GetCatalog(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.Engine.Catalog())
}

// command adapts the no-result engine operations into handlers that reply
// with the post-transition state.
func (s *Server) command(op func(Engine, context.Context)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		op(s.Engine, r.Context())
		s.writeState(w)
	}
}

// StepResponse reports whether a navigation was applied.
type StepResponse struct {
	Changed bool             `json:"changed"`
	State   domain.TourState `json:"state"`
}

// Next handles POST /tour/next. A gated step replies changed=false with
// status 409 so clients can surface the pending action.
func (s *Server) Next(w http.ResponseWriter, r *http.Request) {
	changed := s.Engine.Next(r.Context())
	if !changed && s.Engine.State().Active {
		w.WriteHeader(http.StatusConflict)
	}
	s.writeJSON(w, StepResponse{Changed: changed, State: s.Engine.State()})
}

// Prev handles POST /tour/prev.
func (s *Server) Prev(w http.ResponseWriter, r *http.Request) {
	changed := s.Engine.Prev(r.Context())
	s.writeJSON(w, StepResponse{Changed: changed, State: s.Engine.State()})
}

// RouteSignal is the body of POST /tour/signals/route.
type RouteSignal struct {
	Route string `json:"route"`
}

// SignalRoute handles POST /tour/signals/route.
func (s *Server) SignalRoute(w http.ResponseWriter, r *http.Request) {
	var body RouteSignal
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("route signal: invalid body", "err", err)
		return
	}
	s.Engine.HandleRouteChange(r.Context(), body.Route)
	s.writeState(w)
}

// ClickSignal is the body of POST /tour/signals/click.
type ClickSignal struct {
	Href string `json:"href"`
}

// SignalClick handles POST /tour/signals/click.
func (s *Server) SignalClick(w http.ResponseWriter, r *http.Request) {
	var body ClickSignal
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("click signal: invalid body", "err", err)
		return
	}
	s.Engine.HandleClick(r.Context(), body.Href)
	s.writeState(w)
}

// SignalKey handles POST /tour/signals/key.
func (s *Server) SignalKey(w http.ResponseWriter, r *http.Request) {
	var body domain.KeyEvent
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("key signal: invalid body", "err", err)
		return
	}
	s.Engine.HandleKey(r.Context(), body)
	s.writeState(w)
}

func (s *Server) writeState(w http.ResponseWriter) {
	state := s.Engine.State()
	resp := StateResponse{State: state, ActionMet: s.Engine.CheckRequiredAction()}
	if state.Active {
		step := s.Engine.Catalog()[state.StepIndex]
		resp.CurrentStep = &step
	}
	s.writeJSON(w, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}
