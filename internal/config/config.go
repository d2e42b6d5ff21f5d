package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type Config struct {
	Port               string
	DatabaseURL        string
	Env                string // either prod or dev, dev binds to localhost only
	JwtSigningKey      []byte
	SentryDSN          string
	LogLevel           zerolog.Level
	SlowQueryThreshold time.Duration // statements slower than this are logged as warnings
}

const defaultSlowQueryThreshold = 200 * time.Millisecond

func LoadConfig() (Config, error) {
	// .env is optional, real environment variables take precedence
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		return Config{}, fmt.Errorf("PORT cannot be empty")
	}
	databaseURL, err := loadDatabaseURL()
	if err != nil {
		return Config{}, err
	}
	env := strings.ToLower(os.Getenv("ENV"))
	if env == "" {
		return Config{}, fmt.Errorf("ENV cannot be empty")
	}
	jwtSigningKey, err := LoadJWTSigningKey()
	if err != nil {
		return Config{}, err
	}
	logLevel := zerolog.InfoLevel
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		logLevel, err = zerolog.ParseLevel(strings.ToLower(lvl))
		if err != nil {
			return Config{}, errors.Wrap(err, "unable to parse LOG_LEVEL")
		}
	}
	slowQueryThreshold := defaultSlowQueryThreshold
	if raw := os.Getenv("SLOW_QUERY_THRESHOLD"); raw != "" {
		slowQueryThreshold, err = time.ParseDuration(raw)
		if err != nil {
			return Config{}, errors.Wrap(err, "unable to parse SLOW_QUERY_THRESHOLD")
		}
	}

	return Config{
		Port:               port,
		DatabaseURL:        databaseURL,
		Env:                env,
		JwtSigningKey:      jwtSigningKey,
		SentryDSN:          os.Getenv("SENTRY_DSN"),
		LogLevel:           logLevel,
		SlowQueryThreshold: slowQueryThreshold,
	}, nil
}

// LoadJWTSigningKey reads the base64 encoded JWT_SIGNING_KEY.
func LoadJWTSigningKey() ([]byte, error) {
	_ = godotenv.Load()

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		return nil, fmt.Errorf("JWT_SIGNING_KEY cannot be empty")
	}
	key, err := base64.StdEncoding.DecodeString(jwtSigningKey)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to decode jwt signing key to bytes")
	}
	return key, nil
}

// loadDatabaseURL prefers DATABASE_URL and otherwise assembles a connection
// string from the DATABASE_* parts, all of which are then required.
func loadDatabaseURL() (string, error) {
	if u := os.Getenv("DATABASE_URL"); u != "" {
		return u, nil
	}
	parts := []string{
		"DATABASE_USER",
		"DATABASE_PASSWORD",
		"DATABASE_HOST",
		"DATABASE_PORT",
		"DATABASE_NAME",
		"DATABASE_SSL_MODE",
	}
	values := make([]interface{}, 0, len(parts))
	for _, key := range parts {
		v := os.Getenv(key)
		if v == "" {
			return "", fmt.Errorf("DATABASE_URL or %s cannot be empty", key)
		}
		values = append(values, v)
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", values...), nil
}
