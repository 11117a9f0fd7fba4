package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

const testSecret = "test_secret"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	v, err := words.FromStrings([]string{"about", "taint", "slate", "gaint"}, []string{"soare"})
	require.NoError(t, err)
	db, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "solver.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Default()
	cfg.Server.JWTSecret = testSecret
	cfg.Bench.Workers = 2
	s := New(v, cfg, store.NewMemoryStore(), store.NewRunStore(db))
	t.Cleanup(s.Wait)
	return s
}

func do(t *testing.T, s *Server, method, path string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

type sessionBody struct {
	SessionID   string `json:"sessionId"`
	State       string `json:"state"`
	Remaining   int    `json:"remaining"`
	Suggestions []struct {
		Word  string  `json:"word"`
		Score float64 `json:"score"`
	} `json:"suggestions"`
	Sample []string `json:"sample"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestDiagnostics(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, s, http.MethodGet, "/debug/words", nil)
	assert.JSONEq(t, `{"answers":4,"allowed":5}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, `/no%22pe`, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found","path":"/no\"pe"}`, rec.Body.String())

	rec = do(t, s, http.MethodOptions, "/session/new", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCompare(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/compare", map[string]string{"guess": "taint", "target": "about"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pattern":"npnnc"}`, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/compare", map[string]string{"guess": "tai", "target": "about"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionFlow(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/session/new", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sess := decode[sessionBody](t, rec)
	assert.NotEmpty(t, sess.SessionID)
	assert.Equal(t, "active", sess.State)
	assert.Equal(t, 4, sess.Remaining)
	require.NotEmpty(t, sess.Suggestions)
	assert.Equal(t, "taint", sess.Suggestions[0].Word)
	assert.InDelta(t, 2.0, sess.Suggestions[0].Score, 1e-9)
	assert.Equal(t, []string{"about", "taint", "slate", "gaint"}, sess.Sample)

	rec = do(t, s, http.MethodPost, "/session/feedback",
		map[string]string{"sessionId": sess.SessionID, "guess": "taint", "pattern": "npnnc"})
	require.Equal(t, http.StatusOK, rec.Code)
	sess = decode[sessionBody](t, rec)
	assert.Equal(t, "active", sess.State)
	assert.Equal(t, 1, sess.Remaining)
	assert.Equal(t, []string{"about"}, sess.Sample)
	assert.Equal(t, "about", sess.Suggestions[0].Word)

	rec = do(t, s, http.MethodPost, "/session/feedback",
		map[string]string{"sessionId": sess.SessionID, "guess": "about", "pattern": "ccccc"})
	require.Equal(t, http.StatusOK, rec.Code)
	sess = decode[sessionBody](t, rec)
	assert.Equal(t, "solved", sess.State)
	assert.Empty(t, sess.Suggestions)

	rec = do(t, s, http.MethodPost, "/session/feedback",
		map[string]string{"sessionId": sess.SessionID, "guess": "about", "pattern": "ccccc"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSessionExhausted(t *testing.T) {
	s := newTestServer(t)
	sess := decode[sessionBody](t, do(t, s, http.MethodPost, "/session/new", nil))

	rec := do(t, s, http.MethodPost, "/session/feedback",
		map[string]string{"sessionId": sess.SessionID, "guess": "slate", "pattern": "nnnnn"})
	require.Equal(t, http.StatusOK, rec.Code)
	sess = decode[sessionBody](t, rec)
	assert.Equal(t, "exhausted", sess.State)
	assert.Equal(t, 0, sess.Remaining)
	assert.Empty(t, sess.Sample)
}

func TestFeedbackErrors(t *testing.T) {
	s := newTestServer(t)
	sess := decode[sessionBody](t, do(t, s, http.MethodPost, "/session/new", nil))

	cases := []struct {
		name string
		body map[string]string
		code int
	}{
		{"bad guess", map[string]string{"sessionId": sess.SessionID, "guess": "tain", "pattern": "nnnnn"}, http.StatusBadRequest},
		{"bad pattern", map[string]string{"sessionId": sess.SessionID, "guess": "taint", "pattern": "nnxnn"}, http.StatusBadRequest},
		{"unknown session", map[string]string{"sessionId": "missing", "guess": "taint", "pattern": "nnnnn"}, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/session/feedback", tc.body)
			assert.Equal(t, tc.code, rec.Code)
		})
	}

	// Rejected input must not touch the session.
	e, err := s.sessions.Get(context.Background(), sess.SessionID)
	require.NoError(t, err)
	assert.Empty(t, e.Session.Turns())
}

func TestWriteErrorEscapes(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, http.StatusBadRequest, `bad "word" \ here`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"bad \"word\" \\ here"}`, rec.Body.String())
}

type dailyBody struct {
	Date    string   `json:"date"`
	Answer  string   `json:"answer"`
	Outcome string   `json:"outcome"`
	Guesses []string `json:"guesses"`
}

func TestDailySolve(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/daily/solve?date=2026-10-18", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[dailyBody](t, rec)
	assert.Equal(t, "2026-10-18", res.Date)
	assert.Equal(t, "solved", res.Outcome)
	require.NotEmpty(t, res.Guesses)
	assert.Equal(t, res.Answer, res.Guesses[len(res.Guesses)-1])

	rec = do(t, s, http.MethodGet, "/daily/solve?date=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBenchRequiresAuth(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/bench", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other, _, err := SignToken("other_secret", "ci", time.Hour)
	require.NoError(t, err)
	rec = do(t, s, http.MethodPost, "/bench", nil, "Authorization", "Bearer "+other)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	expired, _, err := SignToken(testSecret, "ci", -time.Hour)
	require.NoError(t, err)
	rec = do(t, s, http.MethodPost, "/bench", nil, "Authorization", "Bearer "+expired)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBenchRunIsStored(t *testing.T) {
	s := newTestServer(t)

	tok, _, err := SignToken(testSecret, "ci", time.Hour)
	require.NoError(t, err)
	rec := do(t, s, http.MethodPost, "/bench", map[string]int{"workers": 2}, "Authorization", "Bearer "+tok)
	require.Equal(t, http.StatusAccepted, rec.Code)
	s.Wait()

	rec = do(t, s, http.MethodGet, "/bench/runs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	runs := decode[[]store.Run](t, rec)
	require.Len(t, runs, 1)
	assert.Equal(t, 4, runs[0].Total)
	assert.Equal(t, 2, runs[0].Workers)

	rec = do(t, s, http.MethodGet, "/bench/runs/"+strconv.FormatInt(runs[0].ID, 10), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	run := decode[store.Run](t, rec)
	assert.Equal(t, runs[0].ID, run.ID)
	assert.Len(t, run.Distribution, 7)

	rec = do(t, s, http.MethodGet, "/bench/runs/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, s, http.MethodGet, "/bench/runs/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignToken(t *testing.T) {
	tok, exp, err := SignToken(testSecret, "alice", 24*time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, time.Minute)

	sub, err := parseToken(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", sub)

	_, _, err = SignToken("", "alice", time.Hour)
	assert.Error(t, err)
}
