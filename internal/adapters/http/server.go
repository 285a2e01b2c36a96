package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inkforge/inkforge"
	"github.com/inkforge/inkforge/internal/logging"
	"github.com/inkforge/inkforge/pkg/domain"
	"github.com/inkforge/inkforge/pkg/observability"
	"github.com/inkforge/inkforge/pkg/session"
)

// Server exposes the compiler and the play engine over a JSON API.
type Server struct {
	engine   *inkforge.Engine
	sessions *session.Manager
	metrics  *observability.Metrics
	registry *prometheus.Registry
	logger   *slog.Logger
}

// ServerOption configures the Server.
type ServerOption func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer wires a play engine and a session manager into an HTTP surface.
func NewServer(engine *inkforge.Engine, sessions *session.Manager, opts ...ServerOption) *Server {
	s := &Server{
		engine:   engine,
		sessions: sessions,
		registry: prometheus.NewRegistry(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics = observability.NewMetrics(s.registry)
	return s
}

// Metrics exposes the server's collectors so the engine can feed them.
func (s *Server) Metrics() *observability.Metrics {
	return s.metrics
}

// SetEngine installs the play engine. The server registers its collectors
// before the engine exists, so construction happens in two steps: create
// the server, build the engine with Metrics().Hooks(), then attach it here.
func (s *Server) SetEngine(engine *inkforge.Engine) {
	s.engine = engine
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Post("/parse", s.handleParse)
	r.Post("/stringify", s.handleStringify)
	r.Post("/validate", s.handleValidate)
	r.Get("/playable", s.handlePlayable)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.handleListSessions)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Post("/start", s.handleStart)
			r.Get("/", s.handleGetSession)
			r.Post("/choose", s.handleChoose)
			r.Delete("/", s.handleDeleteSession)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": inkforge.Version,
	})
}

type parseRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	start := time.Now()
	game, err := inkforge.Parse(req.Text)
	s.metrics.ParseDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.ParseFailures.Inc()
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	payload, err := inkforge.ToSerializablePlayable(game)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"title":  game.Title,
		"scenes": game.SceneIDs(),
		"game":   payload,
	})
}

type stringifyRequest struct {
	Text string `json:"text"`
}

// handleStringify normalizes a document: parse then re-serialize.
func (s *Server) handleStringify(w http.ResponseWriter, r *http.Request) {
	var req stringifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	game, err := inkforge.Parse(req.Text)
	if err != nil {
		s.metrics.ParseFailures.Inc()
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	text, err := inkforge.Stringify(game)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

type validateRequest struct {
	Text       string `json:"text"`
	EntryScene string `json:"entry_scene,omitempty"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	game, err := inkforge.Parse(req.Text)
	if err != nil {
		s.metrics.ParseFailures.Inc()
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := inkforge.Validate(game, req.EntryScene); err != nil {
		s.writeJSON(w, http.StatusOK, map[string]any{
			"valid":  false,
			"issues": err.Error(),
		})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"valid": true})
}

// handlePlayable serves the loaded game's client projection. Prompts and
// other authoring data never leave the server.
func (s *Server) handlePlayable(w http.ResponseWriter, r *http.Request) {
	payload, err := inkforge.ToSerializablePlayable(s.engine.Game())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, payload)
}

type stateResponse struct {
	SessionID    string              `json:"session_id"`
	CurrentScene string              `json:"current_scene"`
	Vars         domain.RuntimeState `json:"vars"`
	History      []string            `json:"history"`
	Terminated   bool                `json:"terminated"`
	Nodes        []domain.SceneNode  `json:"nodes"`
	Choices      []choiceView        `json:"choices"`
}

type choiceView struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

func (s *Server) stateView(r *http.Request, state *domain.State) (*stateResponse, error) {
	nodes, _, err := s.engine.Render(r.Context(), state)
	if err != nil {
		return nil, err
	}
	choices, err := s.engine.Choices(state)
	if err != nil {
		return nil, err
	}
	views := make([]choiceView, len(choices))
	for i, c := range choices {
		views[i] = choiceView{Index: i, Text: c.Text}
	}
	return &stateResponse{
		SessionID:    state.SessionID,
		CurrentScene: state.CurrentSceneID,
		Vars:         state.Vars,
		History:      state.History,
		Terminated:   state.Terminated,
		Nodes:        nodes,
		Choices:      views,
	}, nil
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	state, err := s.sessions.LoadOrStart(r.Context(), sessionID, func(ctx context.Context) (*domain.State, error) {
		return s.engine.Start(ctx, sessionID)
	})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	view, err := s.stateView(r, state)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	state, err := s.sessions.Load(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			s.writeError(w, http.StatusNotFound, "session not found")
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	view, err := s.stateView(r, state)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

type chooseRequest struct {
	Choice int `json:"choice"`
}

func (s *Server) handleChoose(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req chooseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var next *domain.State
	err := s.sessions.WithLock(r.Context(), sessionID, func(ctx context.Context) error {
		state, err := s.sessions.Store().Load(ctx, sessionID)
		if err != nil {
			return err
		}
		next, err = s.engine.Choose(ctx, state, req.Choice)
		if err != nil {
			return err
		}
		return s.sessions.Store().Save(ctx, sessionID, next)
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			s.writeError(w, http.StatusNotFound, "session not found")
		case errors.Is(err, domain.ErrChoiceUnavailable):
			s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, domain.ErrGameTerminated):
			s.writeError(w, http.StatusConflict, err.Error())
		default:
			s.writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	view, err := s.stateView(r, next)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := s.sessions.Delete(r.Context(), sessionID); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			s.writeError(w, http.StatusNotFound, "session not found")
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.sessions.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"sessions": ids})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
