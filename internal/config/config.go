// Package config reads server settings from flags, falling back to
// TUTOR_* environment variables and then to defaults.
package config

import (
	"flag"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/pkg/errors"
)

type Config struct {
	Addr           string
	AllowedOrigins []string
	StrictChess    bool
	SessionTTL     time.Duration
	LogLevel       log.Level
}

const (
	defaultAddr    = ":3000"
	defaultOrigins = "http://localhost:5173"
	defaultTTL     = 30 * time.Minute
	defaultLevel   = "info"
)

// Load parses args (without the program name). Flags win over the
// environment.
func Load(args []string) (Config, error) {
	strict, err := envBool("TUTOR_STRICT_CHESS", false)
	if err != nil {
		return Config{}, err
	}
	ttl, err := envDuration("TUTOR_SESSION_TTL", defaultTTL)
	if err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	addr := fs.String("addr", envString("TUTOR_ADDR", defaultAddr), "listen address")
	origins := fs.String("origins", envString("TUTOR_ALLOWED_ORIGINS", defaultOrigins), "comma separated CORS and websocket origins")
	strictChess := fs.Bool("strict-chess", strict, "filter self-check moves and end chess games on checkmate")
	sessionTTL := fs.Duration("session-ttl", ttl, "idle time before a session is removed, 0 keeps sessions forever")
	level := fs.String("log-level", envString("TUTOR_LOG_LEVEL", defaultLevel), "debug, info, warn, error or fatal")
	if err := fs.Parse(args); err != nil {
		return Config{}, errors.Wrap(err, "parse flags")
	}

	if *sessionTTL < 0 {
		return Config{}, errors.Errorf("session ttl must not be negative, got %s", *sessionTTL)
	}
	lvl, err := log.ParseLevel(*level)
	if err != nil {
		return Config{}, errors.Wrapf(err, "log level %q", *level)
	}

	cfg := Config{
		Addr:           *addr,
		AllowedOrigins: splitList(*origins),
		StrictChess:    *strictChess,
		SessionTTL:     *sessionTTL,
		LogLevel:       lvl,
	}
	if cfg.Addr == "" {
		return Config{}, errors.New("listen address is empty")
	}
	return cfg, nil
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.Wrapf(err, "%s", key)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, errors.Wrapf(err, "%s", key)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
