package api

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds HTTP server settings.
type Config struct {
	Addr        string
	CORSOrigins []string

	// RequestTimeout bounds each request.
	RequestTimeout time.Duration

	// SessionTTL evicts sessions idle for longer; zero keeps them forever.
	SessionTTL time.Duration

	// MaxSessions caps live sessions per page; the least recently used one
	// is evicted first. Zero means no cap.
	MaxSessions int

	ShutdownTimeout time.Duration
}

// DefaultConfig returns settings for local use.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		CORSOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		RequestTimeout:  30 * time.Second,
		SessionTTL:      2 * time.Hour,
		MaxSessions:     1000,
		ShutdownTimeout: 10 * time.Second,
	}
}

// FromEnv overlays AFMLAB_HTTP_* variables on DefaultConfig.
func FromEnv() Config {
	def := DefaultConfig()
	return Config{
		Addr:            envOr("AFMLAB_HTTP_ADDR", def.Addr),
		CORSOrigins:     csvOr("AFMLAB_HTTP_CORS_ORIGINS", def.CORSOrigins),
		RequestTimeout:  durationOr("AFMLAB_HTTP_TIMEOUT", def.RequestTimeout),
		SessionTTL:      durationOr("AFMLAB_HTTP_SESSION_TTL", def.SessionTTL),
		MaxSessions:     intOr("AFMLAB_HTTP_MAX_SESSIONS", def.MaxSessions),
		ShutdownTimeout: def.ShutdownTimeout,
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func csvOr(k string, def []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func durationOr(k string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(k)); err == nil {
		return d
	}
	return def
}

func intOr(k string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil && n >= 0 {
		return n
	}
	return def
}
