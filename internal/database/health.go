package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Pinger is satisfied by *pgxpool.Pool and by the adapter around *redis.Client.
type Pinger interface {
	Ping(ctx context.Context) error
}

type redisPinger struct{ rdb *redis.Client }

func (p redisPinger) Ping(ctx context.Context) error { return p.rdb.Ping(ctx).Err() }

// Health reports the reachability of each backing store.
type Health struct {
	checks map[string]Pinger
}

// NewHealth wires the stores the server depends on.
func NewHealth(pool *pgxpool.Pool, rdb *redis.Client) *Health {
	return NewHealthFrom(map[string]Pinger{
		"postgres": pool,
		"redis":    redisPinger{rdb},
	})
}

// NewHealthFrom builds a Health from arbitrary checks.
func NewHealthFrom(checks map[string]Pinger) *Health {
	return &Health{checks: checks}
}

// Check pings every store with a short timeout and returns "ok" or the error text per store.
func (h *Health) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := make(map[string]string, len(h.checks))
	healthy := true
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			status[name] = err.Error()
			healthy = false
			continue
		}
		status[name] = "ok"
	}
	return status, healthy
}
