package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// AssertionMode picks the identity assertion provider wired into the ledger
type AssertionMode string

const (
	// AssertionSimulated runs the delayed, probabilistic camera check
	AssertionSimulated AssertionMode = "simulated"
	// AssertionApprove accepts every voter immediately
	AssertionApprove AssertionMode = "approve"
)

// DatabaseMemory keeps all state in process memory
const DatabaseMemory = "memory"

type Config struct {
	Port         int    `env:"PORT" envDefault:"3318"`
	DatabaseURL  string `env:"DATABASE_URL"`
	DatabaseType string `env:"DATABASE_TYPE" envDefault:"sqlite"`

	ActorTokenSalt string `env:"ACTOR_TOKEN_SALT"`

	AssertionMode          AssertionMode `env:"ASSERTION_MODE" envDefault:"simulated"`
	AssertionTimeout       time.Duration `env:"ASSERTION_TIMEOUT" envDefault:"10s"`
	AssertionSuccessRate   float64       `env:"ASSERTION_SUCCESS_RATE" envDefault:"0.8"`
	AssertionMinConfidence float64       `env:"ASSERTION_MIN_CONFIDENCE" envDefault:"0"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// ParseFlags builds the config from, in increasing precedence: an optional
// .env file, environment variables and command-line flags.
func ParseFlags(args []string) (Config, error) {
	var (
		port         int
		databaseURL  string
		databaseType string
		actorSalt    string
		mode         string
		timeout      time.Duration
		logLevel     string
		envFile      string
	)

	fs := flag.NewFlagSet("ballot-ledger", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&port, "p", 0, "Server port")
	fs.StringVar(&databaseURL, "d", "", "Database URL")
	fs.StringVar(&databaseType, "t", "", "Database type (sqlite, postgres, pgx or memory)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&actorSalt, "actor-salt", "", "Actor token salt (prefer env)")

	fs.StringVar(&mode, "assertion", "", "Identity assertion mode (simulated or approve)")
	fs.DurationVar(&timeout, "assertion-timeout", 0, "Identity assertion timeout")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&envFile, "env-file", ".env", "Optional dotenv file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// godotenv never overrides variables that are already set
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
			}
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	// CLI flags win over env
	if port != 0 {
		cfg.Port = port
	}
	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}
	if databaseType != "" {
		cfg.DatabaseType = databaseType
	}
	if actorSalt != "" {
		cfg.ActorTokenSalt = actorSalt
	}
	if mode != "" {
		cfg.AssertionMode = AssertionMode(mode)
	}
	if timeout != 0 {
		cfg.AssertionTimeout = timeout
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	c.DatabaseType = strings.ToLower(strings.TrimSpace(c.DatabaseType))
	switch c.DatabaseType {
	case "sqlite", "postgres", "pgx":
		if c.DatabaseURL == "" {
			return errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	case DatabaseMemory:
	default:
		return fmt.Errorf("unsupported database type %q", c.DatabaseType)
	}

	// Secrets - MUST be provided
	if c.ActorTokenSalt == "" {
		return errors.New("ACTOR_TOKEN_SALT required")
	}

	c.AssertionMode = AssertionMode(strings.ToLower(strings.TrimSpace(string(c.AssertionMode))))
	switch c.AssertionMode {
	case AssertionSimulated, AssertionApprove:
	default:
		return fmt.Errorf("unsupported assertion mode %q", c.AssertionMode)
	}
	if c.AssertionTimeout < 0 {
		return errors.New("assertion timeout must not be negative")
	}
	if c.AssertionSuccessRate < 0 || c.AssertionSuccessRate > 1 {
		return fmt.Errorf("assertion success rate %v out of range [0,1]", c.AssertionSuccessRate)
	}
	if c.AssertionMinConfidence < 0 || c.AssertionMinConfidence > 1 {
		return fmt.Errorf("assertion min confidence %v out of range [0,1]", c.AssertionMinConfidence)
	}
	return nil
}
