// internal/httpserver/routes_daily.go
//
// GET /daily/solve?date=YYYY-MM-DD plays the solver against the daily answer
// (today's when date is omitted) and reports how it went.
// Deterministic word selection is based on date + salt.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/daily"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/solve", s.handleDailySolve)
	})
}

type dailyRes struct {
	Date    string         `json:"date"`
	Answer  words.Word     `json:"answer"`
	Outcome solver.Outcome `json:"outcome"`
	Guesses []words.Word   `json:"guesses"`
	GivenUp bool           `json:"givenUp"`
}

func (s *Server) handleDailySolve(w http.ResponseWriter, r *http.Request) {
	date := time.Now().UTC()
	if q := r.URL.Query().Get("date"); q != "" {
		t, err := time.Parse("2006-01-02", q)
		if err != nil {
			http.Error(w, `{"error":"bad_date"}`, http.StatusBadRequest)
			return
		}
		date = t
	}
	answer := daily.Answer(s.vocab, date, s.cfg.Daily.Salt)
	sess := solver.NewSession(solver.NewRanker(s.vocab, s.cfg.Solver), s.cfg.Session)
	res, err := sess.Solve(game.New(answer))
	if err != nil {
		log.Error().Err(err).Msg("daily solve")
		http.Error(w, `{"error":"solve_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(dailyRes{
		Date:    daily.DateKey(date),
		Answer:  answer,
		Outcome: res.Outcome,
		Guesses: res.Guesses,
		GivenUp: res.GivenUp,
	})
}
