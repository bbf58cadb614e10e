package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pathfinder-edu/pathfinder-backend/internal/config"
	"github.com/pathfinder-edu/pathfinder-backend/internal/database"
)

// SystemHandler reports service health.
type SystemHandler struct {
	health    *database.Health
	rdb       *redis.Client
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler. rdb may be nil, in which
// case queue depths are omitted.
func NewSystemHandler(health *database.Health, rdb *redis.Client) *SystemHandler {
	return &SystemHandler{
		health:    health,
		rdb:       rdb,
		startTime: time.Now(),
	}
}

type healthReport struct {
	Status     string            `json:"status"`
	Checks     map[string]string `json:"checks"`
	Uptime     string            `json:"uptime"`
	Goroutines int               `json:"goroutines"`
	HeapAlloc  uint64            `json:"heap_alloc"`
	Queues     map[string]int64  `json:"queues,omitempty"`
}

// Health godoc
// GET /health
// Pings PostgreSQL and Redis; 503 when either is unreachable.
func (h *SystemHandler) Health(c *gin.Context) {
	checks, healthy := h.health.Check(c.Request.Context())

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	report := healthReport{
		Status:     "ok",
		Checks:     checks,
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
		Goroutines: runtime.NumGoroutine(),
		HeapAlloc:  ms.HeapAlloc,
		Queues:     h.queueDepths(c.Request.Context()),
	}

	status := http.StatusOK
	if !healthy {
		report.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}

// queueDepths reads the persistence backlog with pipelined LLEN.
func (h *SystemHandler) queueDepths(ctx context.Context) map[string]int64 {
	if h.rdb == nil {
		return nil
	}
	pipe := h.rdb.Pipeline()
	results := pipe.LLen(ctx, config.WorkerKey.PersistAssessmentResultsQueue)
	events := pipe.LLen(ctx, config.WorkerKey.PersistProctoringEventsQueue)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil
	}
	return map[string]int64{
		"assessment_results": results.Val(),
		"proctoring_events":  events.Val(),
	}
}
