package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv makes sure variables from the developer's shell do not leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"WORDLE_CONFIG", "LOG_LEVEL", "WORDS_ANSWERS_FILE", "WORDS_ALLOWED_FILE", "DB_PATH",
		"PORT", "CLIENT_ORIGIN", "JWT_SECRET", "DAILY_SALT", "SOLVER_CORRECT_WEIGHT",
		"SOLVER_OPENING_THRESHOLD", "SOLVER_LOOKAHEAD", "BENCH_WORKERS",
	} {
		t.Setenv(k, "")
	}
	// godotenv reads .env from the working directory; run from an empty one.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 1.0, cfg.Solver.CorrectWeight)
	assert.Equal(t, 2000, cfg.Solver.OpeningThreshold)
	assert.Equal(t, 6, cfg.Session.TurnLimit)
	assert.Equal(t, 10, cfg.Session.MaxTurns)
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "solver.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
words:
  answers_file: /tmp/answers.txt
  allowed_file: /tmp/allowed.txt
solver:
  correct_weight: 2
  lookahead: true
  lookahead_top_k: 5
session:
  max_turns: 12
bench:
  workers: 3
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/answers.txt", cfg.Words.Source().AnswersFile)
	assert.Equal(t, 2.0, cfg.Solver.CorrectWeight)
	assert.True(t, cfg.Solver.Lookahead)
	assert.Equal(t, 5, cfg.Solver.LookaheadTopK)
	assert.Equal(t, 2000, cfg.Solver.OpeningThreshold, "unset keys keep their defaults")
	assert.Equal(t, 6, cfg.Session.TurnLimit)
	assert.Equal(t, 12, cfg.Session.MaxTurns)
	assert.Equal(t, 3, cfg.Bench.Workers)

	// The same file through WORDLE_CONFIG.
	t.Setenv("WORDLE_CONFIG", path)
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Bench.Workers)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("SOLVER_CORRECT_WEIGHT", "2")
	t.Setenv("SOLVER_OPENING_THRESHOLD", "0")
	t.Setenv("SOLVER_LOOKAHEAD", "true")
	t.Setenv("BENCH_WORKERS", "1")
	t.Setenv("DAILY_SALT", "pepper")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 2.0, cfg.Solver.CorrectWeight)
	assert.Equal(t, 0, cfg.Solver.OpeningThreshold)
	assert.True(t, cfg.Solver.Lookahead)
	assert.Equal(t, 1, cfg.Bench.Workers)
	assert.Equal(t, "pepper", cfg.Daily.Salt)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("solver: [1, 2"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)

	t.Setenv("BENCH_WORKERS", "many")
	_, err = Load("")
	assert.ErrorContains(t, err, "BENCH_WORKERS")
}

func TestDotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.WriteFile(".env", []byte("DAILY_SALT=from_dotenv\n"), 0o644))
	// godotenv never overrides a variable that exists, even when empty.
	require.NoError(t, os.Unsetenv("DAILY_SALT"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from_dotenv", cfg.Daily.Salt)
}
