package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver

	"resume-builder/internal/shared/telemetry"
)

// Profile names the kind of process that owns a resume store connection.
type Profile int

const (
	ProfileServer Profile = iota
	ProfileLambda
	ProfileMigrate
)

func (p Profile) String() string {
	switch p {
	case ProfileLambda:
		return "lambda"
	case ProfileMigrate:
		return "migrate"
	default:
		return "server"
	}
}

// RuntimeProfile picks ProfileLambda inside AWS Lambda and ProfileServer elsewhere.
func RuntimeProfile() Profile {
	if strings.TrimSpace(os.Getenv("AWS_LAMBDA_FUNCTION_NAME")) != "" {
		return ProfileLambda
	}
	return ProfileServer
}

// Pool is the database/sql pool sizing for the resumes table.
type Pool struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	MaxIdleTime time.Duration
	PingTimeout time.Duration
}

// PoolFor returns the default pool for a profile. Lambda keeps a couple of
// connections per warm container; migrate needs exactly one.
func PoolFor(p Profile) Pool {
	switch p {
	case ProfileLambda:
		return Pool{MaxOpen: 2, MaxIdle: 1, MaxLifetime: 15 * time.Minute, MaxIdleTime: 30 * time.Second, PingTimeout: 3 * time.Second}
	case ProfileMigrate:
		return Pool{MaxOpen: 1, MaxIdle: 1, MaxLifetime: time.Hour, MaxIdleTime: 2 * time.Minute, PingTimeout: 5 * time.Second}
	default:
		return Pool{MaxOpen: 10, MaxIdle: 5, MaxLifetime: time.Hour, MaxIdleTime: 2 * time.Minute, PingTimeout: 5 * time.Second}
	}
}

// WithEnv applies DB_* overrides read through lookup. Unparseable values are
// logged and ignored.
func (p Pool) WithEnv(lookup func(string) string) Pool {
	ints := []struct {
		key string
		dst *int
	}{
		{"DB_MAX_OPEN_CONNS", &p.MaxOpen},
		{"DB_MAX_IDLE_CONNS", &p.MaxIdle},
	}
	for _, o := range ints {
		raw := strings.TrimSpace(lookup(o.key))
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			telemetry.Warn("db.env_ignored", map[string]any{"key": o.key, "value": raw})
			continue
		}
		*o.dst = v
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"DB_CONN_MAX_LIFETIME", &p.MaxLifetime},
		{"DB_CONN_MAX_IDLE_TIME", &p.MaxIdleTime},
		{"DB_PING_TIMEOUT", &p.PingTimeout},
	}
	for _, o := range durations {
		raw := strings.TrimSpace(lookup(o.key))
		if raw == "" {
			continue
		}
		v, err := time.ParseDuration(raw)
		if err != nil || v <= 0 {
			telemetry.Warn("db.env_ignored", map[string]any{"key": o.key, "value": raw})
			continue
		}
		*o.dst = v
	}
	return p
}

// IsPostgresURI reports whether uri names a Postgres resume store.
func IsPostgresURI(uri string) bool {
	lower := strings.ToLower(strings.TrimSpace(uri))
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}

var (
	openDB = sql.Open

	sharedMu sync.Mutex
	shared   = map[string]*sql.DB{}
)

// OpenStore connects to the Postgres resume store with the profile's pool,
// adjusted by DB_* env vars. Under ProfileLambda the connection is kept for
// later invocations in the same container; a failed attempt is not cached.
func OpenStore(ctx context.Context, uri string, profile Profile) (*sql.DB, error) {
	if !IsPostgresURI(uri) {
		return nil, fmt.Errorf("not a postgres store URI")
	}
	pool := PoolFor(profile).WithEnv(os.Getenv)
	if profile != ProfileLambda {
		return open(ctx, uri, pool, profile)
	}

	sharedMu.Lock()
	defer sharedMu.Unlock()
	if conn, ok := shared[uri]; ok {
		telemetry.Info("db.reuse", map[string]any{"host": hostOf(uri)})
		return conn, nil
	}
	conn, err := open(ctx, uri, pool, profile)
	if err != nil {
		return nil, err
	}
	shared[uri] = conn
	return conn, nil
}

func open(ctx context.Context, uri string, pool Pool, profile Profile) (*sql.DB, error) {
	conn, err := openDB("pgx", uri)
	if err != nil {
		return nil, fmt.Errorf("open resume store: %w", err)
	}
	conn.SetMaxOpenConns(pool.MaxOpen)
	conn.SetMaxIdleConns(pool.MaxIdle)
	conn.SetConnMaxLifetime(pool.MaxLifetime)
	conn.SetConnMaxIdleTime(pool.MaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, pool.PingTimeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping resume store: %w", err)
	}

	telemetry.Info("db.open", map[string]any{
		"host":     hostOf(uri),
		"profile":  profile.String(),
		"max_open": pool.MaxOpen,
	})
	return conn, nil
}

// hostOf keeps credentials out of logs.
func hostOf(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	return u.Host
}
