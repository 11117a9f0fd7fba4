// internal/httpserver/server.go
//
// HTTP API for the solver.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words", "POST /compare".
//   - Solver sessions: POST /session/new, POST /session/feedback.
//   - Daily target: GET /daily/solve.
//   - Benchmark runs: GET /bench/runs[/{id}] (public), POST /bench (requires auth).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - Sessions live in a store.SessionStore; each entry is locked while used.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// sampleSize is how many candidates a session response lists.
const sampleSize = 16

// Server bundles the router and what the handlers need.
type Server struct {
	r        *chi.Mux
	vocab    *words.Vocabulary
	cfg      config.Config
	sessions store.SessionStore
	runs     *store.RunStore

	benchMu  sync.Mutex // guards benching
	benching bool
	bg       sync.WaitGroup // background benchmark runs
}

// New constructs a Server, installs middleware, and registers routes.
func New(v *words.Vocabulary, cfg config.Config, sessions store.SessionStore, runs *store.RunStore) *Server {
	s := &Server{r: chi.NewRouter(), vocab: v, cfg: cfg, sessions: sessions, runs: runs}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(cfg.Server.ClientOrigin))   // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-solver","endpoints":["/health","POST /session/new","POST /session/feedback","POST /compare","/bench/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := s.vocab.Stats()
		_ = json.NewEncoder(w).Encode(map[string]int{"answers": a, "allowed": g})
	})

	s.r.Post("/compare", s.handleCompare)
	s.r.Post("/session/new", s.handleNewSession)
	s.r.Post("/session/feedback", s.handleFeedback)

	s.mountDaily(s.r)
	s.mountBench(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Wait blocks until background benchmark runs have finished.
func (s *Server) Wait() { s.bg.Wait() }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeError sends {"error": msg} with msg JSON-escaped.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// ------------------------------ COMPARE ------------------------------------

type compareReq struct {
	Guess  string `json:"guess"`
	Target string `json:"target"`
}
type compareRes struct {
	Pattern game.Pattern `json:"pattern"`
}

// handleCompare returns the feedback target would give for guess.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	guess, err := words.Parse(req.Guess)
	if err != nil {
		http.Error(w, `{"error":"bad_guess"}`, http.StatusBadRequest)
		return
	}
	target, err := words.Parse(req.Target)
	if err != nil {
		http.Error(w, `{"error":"bad_target"}`, http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(compareRes{Pattern: game.Compare(guess, target)})
}

// ------------------------------ SESSIONS -----------------------------------

// sessionRes is returned by both session endpoints.
type sessionRes struct {
	SessionID   string          `json:"sessionId"`
	State       solver.State    `json:"state"`
	Remaining   int             `json:"remaining"`
	Suggestions []solver.Ranked `json:"suggestions"`
	Sample      []words.Word    `json:"sample"`
}

// handleNewSession starts a session over the full answer list.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	e := &store.Entry{
		ID:      genID(),
		Created: time.Now().UTC(),
		Session: solver.NewSession(solver.NewRanker(s.vocab, s.cfg.Solver), s.cfg.Session),
	}
	if err := s.sessions.Save(r.Context(), e); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	e.Mu.Lock()
	defer e.Mu.Unlock()
	_ = json.NewEncoder(w).Encode(s.describe(e))
}

type feedbackReq struct {
	SessionID string `json:"sessionId"`
	Guess     string `json:"guess"`
	Pattern   string `json:"pattern"`
}

// handleFeedback applies the feedback a game gave for a guess.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	guess, err := words.Parse(req.Guess)
	if err != nil {
		http.Error(w, `{"error":"bad_guess"}`, http.StatusBadRequest)
		return
	}
	p, err := game.ParsePattern(req.Pattern)
	if err != nil {
		http.Error(w, `{"error":"bad_pattern"}`, http.StatusBadRequest)
		return
	}
	e, err := s.sessions.Get(r.Context(), req.SessionID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	e.Mu.Lock()
	defer e.Mu.Unlock()
	if err := e.Session.Observe(guess, p); err != nil {
		if errors.Is(err, solver.ErrSessionOver) {
			http.Error(w, `{"error":"session_over"}`, http.StatusConflict)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Debug().Str("session", e.ID).Str("guess", guess.String()).Str("pattern", p.String()).
		Int("remaining", e.Session.Candidates().Len()).Msg("feedback")
	_ = json.NewEncoder(w).Encode(s.describe(e))
}

// describe renders a session. The caller holds e.Mu.
func (s *Server) describe(e *store.Entry) sessionRes {
	sess := e.Session
	res := sessionRes{
		SessionID:   e.ID,
		Suggestions: []solver.Ranked{},
		Sample:      []words.Word{},
	}
	if sess.State() == solver.StateActive {
		// Suggest moves an empty session to Exhausted.
		if ranked, err := sess.Suggest(); err == nil {
			res.Suggestions = solver.Top(ranked, 10)
		}
	}
	res.State = sess.State()
	c := sess.Candidates()
	res.Remaining = c.Len()
	if list := c.Words(); len(list) > sampleSize {
		res.Sample = list[:sampleSize]
	} else if len(list) > 0 {
		res.Sample = list
	}
	return res
}
