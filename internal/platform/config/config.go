package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Server captures process-level configuration.
type Server struct {
	Addr            string        `env:"ELIGIBILITY_ADDR" envDefault:":8080"`
	Environment     string        `env:"ELIGIBILITY_ENV" envDefault:"development"`
	ShutdownTimeout time.Duration `env:"ELIGIBILITY_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// RulesPath points at a course rule document; empty uses the built-in table.
	RulesPath string `env:"ELIGIBILITY_RULES_PATH"`

	Log   Log
	Audit Audit
}

// Log configures the structured application logger.
type Log struct {
	Level  string `env:"ELIGIBILITY_LOG_LEVEL" envDefault:"info"`
	Format string `env:"ELIGIBILITY_LOG_FORMAT" envDefault:"json"`
}

// Audit configures the request and response audit trails.
type Audit struct {
	InputPath  string `env:"ELIGIBILITY_INPUT_LOG" envDefault:"input.log"`
	OutputPath string `env:"ELIGIBILITY_OUTPUT_LOG" envDefault:"output.log"`

	// Optional Kafka mirror; disabled when no brokers are set.
	KafkaBrokers       []string `env:"ELIGIBILITY_KAFKA_BROKERS" envSeparator:","`
	KafkaRequestTopic  string   `env:"ELIGIBILITY_KAFKA_REQUEST_TOPIC" envDefault:"eligibility.requests"`
	KafkaResponseTopic string   `env:"ELIGIBILITY_KAFKA_RESPONSE_TOPIC" envDefault:"eligibility.responses"`
}

// KafkaEnabled reports whether audit lines are mirrored to Kafka.
func (a Audit) KafkaEnabled() bool {
	return len(a.KafkaBrokers) > 0
}

// FromEnv builds a Server config from the environment, reading ./.env first
// when it exists.
func FromEnv() (Server, error) {
	return Load(".env")
}

// Load builds a Server config from the process environment merged over the
// optional dotenv file at dotenvPath. Process variables take precedence; the
// process environment itself is never modified.
func Load(dotenvPath string) (Server, error) {
	vars := env.ToMap(os.Environ())
	if dotenvPath != "" {
		fileVars, err := godotenv.Read(dotenvPath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Server{}, fmt.Errorf("read %s: %w", dotenvPath, err)
		}
		for k, v := range fileVars {
			if _, set := vars[k]; !set {
				vars[k] = v
			}
		}
	}

	var cfg Server
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func (s Server) validate() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.Log.Level)); err != nil {
		return fmt.Errorf("invalid ELIGIBILITY_LOG_LEVEL %q", s.Log.Level)
	}
	switch strings.ToLower(s.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid ELIGIBILITY_LOG_FORMAT %q: want json or text", s.Log.Format)
	}
	if s.Audit.InputPath == "" || s.Audit.OutputPath == "" {
		return errors.New("audit log paths must not be empty")
	}
	if s.Audit.InputPath == s.Audit.OutputPath {
		return errors.New("request and response audit logs must use different files")
	}
	return nil
}
