// internal/httpserver/routes_bench.go
//
// Benchmark routes:
//   - GET  /bench/runs      → recent runs, newest first (?limit=N)
//   - GET  /bench/runs/{id} → one run with its failures
//   - POST /bench           → start a run in the background (requires auth)
//
// Only one run is in flight at a time; a second POST gets 409.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/bench"
	"github.com/robalobadob/wordle-solver/internal/store"
)

// mountBench registers all /bench routes.
func (s *Server) mountBench(r chi.Router) {
	r.Route("/bench", func(r chi.Router) {
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
		r.With(s.requireAuth()).Post("/", s.handleStartBench)
	})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := s.runs.ListRuns(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("list runs")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, `{"error":"bad_id"}`, http.StatusBadRequest)
		return
	}
	run, err := s.runs.GetRun(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Int64("run", id).Msg("get run")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(run)
}

// startBenchReq may override the configured worker count.
type startBenchReq struct {
	Workers int `json:"workers"`
}

// handleStartBench runs the benchmark detached from the request and saves it.
func (s *Server) handleStartBench(w http.ResponseWriter, r *http.Request) {
	var req startBenchReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Workers <= 0 {
		req.Workers = s.cfg.Bench.Workers
	}

	s.benchMu.Lock()
	if s.benching {
		s.benchMu.Unlock()
		http.Error(w, `{"error":"bench_running"}`, http.StatusConflict)
		return
	}
	s.benching = true
	s.benchMu.Unlock()

	sub, _ := r.Context().Value(ctxSubjectKey{}).(string)
	opts := bench.Options{Workers: req.Workers, Solver: s.cfg.Solver, Session: s.cfg.Session}
	log.Info().Str("by", sub).Int("workers", opts.Workers).Msg("bench started")

	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		defer func() {
			s.benchMu.Lock()
			s.benching = false
			s.benchMu.Unlock()
		}()
		s.runBench(context.Background(), opts)
	}()

	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]bool{"started": true})
}

func (s *Server) runBench(ctx context.Context, opts bench.Options) {
	rep, err := bench.Run(ctx, s.vocab, opts)
	if err != nil {
		log.Error().Err(err).Msg("bench failed")
		return
	}
	id, err := s.runs.SaveRun(ctx, store.RunFromReport(rep))
	if err != nil {
		log.Error().Err(err).Msg("save run")
		return
	}
	log.Info().Int64("run", id).Float64("average", rep.Average()).Msg("bench finished")
}
