package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robalobadob/wordle-solver/internal/bench"
)

// ErrNotFound is returned for unknown run or session IDs.
var ErrNotFound = errors.New("not found")

// Run is a stored benchmark run.
type Run struct {
	ID            int64     `json:"id"`
	StartedAt     time.Time `json:"startedAt"`
	DurationMs    int64     `json:"durationMs"`
	Workers       int       `json:"workers"`
	TurnLimit     int       `json:"turnLimit"`
	MaxTurns      int       `json:"maxTurns"`
	CorrectWeight float64   `json:"correctWeight"`
	Lookahead     bool      `json:"lookahead"`
	Total         int       `json:"total"`
	Average       float64   `json:"average"`
	Distribution  []int     `json:"distribution"`
	Failures      []Failure `json:"failures,omitempty"`
}

// Failure is an answer that went past the turn limit in a run.
type Failure struct {
	Answer  string   `json:"answer"`
	Outcome string   `json:"outcome"`
	Guesses []string `json:"guesses"`
}

// RunFromReport converts a benchmark report into a storable run.
func RunFromReport(r *bench.Report) Run {
	run := Run{
		StartedAt:     r.StartedAt,
		DurationMs:    r.Duration.Milliseconds(),
		Workers:       r.Workers,
		TurnLimit:     r.Session.TurnLimit,
		MaxTurns:      r.Session.MaxTurns,
		CorrectWeight: r.Solver.CorrectWeight,
		Lookahead:     r.Solver.Lookahead,
		Total:         r.Total(),
		Average:       r.Average(),
		Distribution:  append([]int(nil), r.Distribution.Counts...),
	}
	if run.CorrectWeight == 0 {
		run.CorrectWeight = 1
	}
	for _, f := range r.Failures {
		guesses := make([]string, len(f.Guesses))
		for i, g := range f.Guesses {
			guesses[i] = g.String()
		}
		run.Failures = append(run.Failures, Failure{
			Answer:  f.Answer.String(),
			Outcome: string(f.Outcome),
			Guesses: guesses,
		})
	}
	return run
}

// RunStore persists benchmark runs.
type RunStore struct{ db *sql.DB }

// NewRunStore wraps an open, migrated database.
func NewRunStore(db *sql.DB) *RunStore { return &RunStore{db: db} }

// SaveRun inserts r with its failures and returns the new ID.
func (s *RunStore) SaveRun(ctx context.Context, r Run) (int64, error) {
	dist, err := json.Marshal(r.Distribution)
	if err != nil {
		return 0, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
        INSERT INTO bench_runs
            (started_at, duration_ms, workers, turn_limit, max_turns,
             correct_weight, lookahead, total, average, distribution)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.StartedAt.UTC().Format(time.RFC3339Nano), r.DurationMs, r.Workers, r.TurnLimit, r.MaxTurns,
		r.CorrectWeight, r.Lookahead, r.Total, r.Average, string(dist),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for _, f := range r.Failures {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO bench_failures (run_id, answer, outcome, guesses) VALUES (?, ?, ?, ?)`,
			id, f.Answer, f.Outcome, strings.Join(f.Guesses, " "),
		); err != nil {
			return 0, fmt.Errorf("insert failure %s: %w", f.Answer, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

const runColumns = `id, started_at, duration_ms, workers, turn_limit, max_turns,
       correct_weight, lookahead, total, average, distribution`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var r Run
	var started, dist string
	if err := row.Scan(&r.ID, &started, &r.DurationMs, &r.Workers, &r.TurnLimit, &r.MaxTurns,
		&r.CorrectWeight, &r.Lookahead, &r.Total, &r.Average, &dist); err != nil {
		return r, err
	}
	r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
	if err := json.Unmarshal([]byte(dist), &r.Distribution); err != nil {
		return r, fmt.Errorf("decode distribution of run %d: %w", r.ID, err)
	}
	return r, nil
}

// GetRun loads a run and its failures.
func (s *RunStore) GetRun(ctx context.Context, id int64) (Run, error) {
	r, err := scanRun(s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM bench_runs WHERE id=?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return r, ErrNotFound
	}
	if err != nil {
		return r, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT answer, outcome, guesses FROM bench_failures WHERE run_id=? ORDER BY rowid`, id)
	if err != nil {
		return r, err
	}
	defer rows.Close()
	for rows.Next() {
		var f Failure
		var guesses string
		if err := rows.Scan(&f.Answer, &f.Outcome, &guesses); err != nil {
			return r, err
		}
		f.Guesses = strings.Fields(guesses)
		r.Failures = append(r.Failures, f)
	}
	return r, rows.Err()
}

// ListRuns returns the newest runs first, without failures.
// Default limit is 20 if not specified.
func (s *RunStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM bench_runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Run, 0, limit)
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
