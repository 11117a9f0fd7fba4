// Package config loads solver configuration.
//
// Sources, later ones winning:
//  1. built-in defaults
//  2. an optional YAML file (--config or WORDLE_CONFIG)
//  3. a .env file in the working directory
//  4. environment variables
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Config holds all solver configuration.
type Config struct {
	LogLevel string `yaml:"log_level"`

	// Word lists; empty paths fall back to the embedded lists.
	Words WordsConfig `yaml:"words"`

	// Ranker and game bounds.
	Solver  solver.Options        `yaml:"solver"`
	Session solver.SessionOptions `yaml:"session"`

	Bench  BenchConfig  `yaml:"bench"`
	Server ServerConfig `yaml:"server"`
	Daily  DailyConfig  `yaml:"daily"`
}

// WordsConfig names the word list files.
type WordsConfig struct {
	AnswersFile string `yaml:"answers_file"`
	AllowedFile string `yaml:"allowed_file"`
}

// Source converts the paths for words.Load.
func (w WordsConfig) Source() words.Source {
	return words.Source{AnswersFile: w.AnswersFile, AllowedFile: w.AllowedFile}
}

// BenchConfig configures benchmark runs.
type BenchConfig struct {
	Workers int    `yaml:"workers"` // 0 = one per CPU
	DBPath  string `yaml:"db_path"` // where runs are recorded
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ClientOrigin string `yaml:"client_origin"`
	JWTSecret    string `yaml:"jwt_secret"`
}

// DailyConfig configures the daily target.
type DailyConfig struct {
	Salt string `yaml:"salt"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Solver:   solver.DefaultOptions(),
		Session:  solver.DefaultSessionOptions(),
		Bench:    BenchConfig{DBPath: "./data/solver.db"},
		Server: ServerConfig{
			Port:         "5175",
			ClientOrigin: "http://localhost:5173",
			JWTSecret:    "dev_secret_change_me",
		},
		Daily: DailyConfig{Salt: "local_dev_salt"},
	}
}

// Load builds the configuration. path may be empty.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		path = os.Getenv("WORDLE_CONFIG")
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.Words.AnswersFile = getEnv("WORDS_ANSWERS_FILE", cfg.Words.AnswersFile)
	cfg.Words.AllowedFile = getEnv("WORDS_ALLOWED_FILE", cfg.Words.AllowedFile)
	cfg.Bench.DBPath = getEnv("DB_PATH", cfg.Bench.DBPath)
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Server.ClientOrigin = getEnv("CLIENT_ORIGIN", cfg.Server.ClientOrigin)
	cfg.Server.JWTSecret = getEnv("JWT_SECRET", cfg.Server.JWTSecret)
	cfg.Daily.Salt = getEnv("DAILY_SALT", cfg.Daily.Salt)

	var err error
	if cfg.Solver.CorrectWeight, err = envFloat("SOLVER_CORRECT_WEIGHT", cfg.Solver.CorrectWeight); err != nil {
		return err
	}
	if cfg.Solver.OpeningThreshold, err = envInt("SOLVER_OPENING_THRESHOLD", cfg.Solver.OpeningThreshold); err != nil {
		return err
	}
	if cfg.Solver.Lookahead, err = envBool("SOLVER_LOOKAHEAD", cfg.Solver.Lookahead); err != nil {
		return err
	}
	if cfg.Bench.Workers, err = envInt("BENCH_WORKERS", cfg.Bench.Workers); err != nil {
		return err
	}
	return nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}

func envFloat(k string, def float64) (float64, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, fmt.Errorf("%s: %w", k, err)
	}
	return f, nil
}

func envBool(k string, def bool) (bool, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", k, err)
	}
	return b, nil
}
