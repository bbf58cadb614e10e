package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pathfinder-edu/pathfinder-backend/internal/config"
	"github.com/pathfinder-edu/pathfinder-backend/internal/model"
)

var proctoringEventColumns = []string{
	"id", "student_id", "session_id", "assessment_skill", "event_type", "suspicious",
	"suspicious_reasons", "client_timestamp", "server_timestamp", "ip_address",
	"user_agent", "device_fingerprint", "metadata",
}

// ProctoringWorker consumes persist_proctoring_events_queue into proctoring_events.
type ProctoringWorker struct {
	pool  *pgxpool.Pool
	batch *batcher[model.ProctoringEvent]
	log   zerolog.Logger
}

// NewProctoringWorker creates a new ProctoringWorker.
func NewProctoringWorker(pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *ProctoringWorker {
	w := &ProctoringWorker{
		pool: pool,
		log:  log.With().Str("component", "proctoring_worker").Logger(),
	}
	w.batch = newBatcher[model.ProctoringEvent](config.WorkerKey.PersistProctoringEventsQueue, rdb, w.log)
	w.batch.bulk = w.bulkInsert
	w.batch.row = w.insertOne
	return w
}

// Start runs until ctx is cancelled. Call in a goroutine.
func (w *ProctoringWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ProctoringWorker started")
	w.batch.run(ctx)
}

func (w *ProctoringWorker) bulkInsert(ctx context.Context, batch []*model.ProctoringEvent) error {
	rows := make([][]interface{}, 0, len(batch))
	for _, ev := range batch {
		row, err := eventRow(ev)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	_, err := w.pool.CopyFrom(
		ctx,
		pgx.Identifier{"proctoring_events"},
		proctoringEventColumns,
		pgx.CopyFromRows(rows),
	)
	return err
}

func (w *ProctoringWorker) insertOne(ctx context.Context, ev *model.ProctoringEvent) error {
	row, err := eventRow(ev)
	if err != nil {
		return err
	}

	_, err = w.pool.Exec(ctx,
		`INSERT INTO proctoring_events
		    (id, student_id, session_id, assessment_skill, event_type, suspicious,
		     suspicious_reasons, client_timestamp, server_timestamp, ip_address,
		     user_agent, device_fingerprint, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13::jsonb)
		 ON CONFLICT (id) DO NOTHING`,
		row...,
	)
	return err
}

func eventRow(ev *model.ProctoringEvent) ([]interface{}, error) {
	if ev.StudentID <= 0 || ev.SessionID == "" {
		return nil, fmt.Errorf("event %s: %w", ev.ID, errDropItem)
	}
	metadata := ev.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	meta, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("event %s metadata: %w", ev.ID, errDropItem)
	}
	reasons := ev.SuspiciousReasons
	if reasons == nil {
		reasons = []string{}
	}
	return []interface{}{
		ev.ID, ev.StudentID, ev.SessionID, ev.AssessmentSkill, string(ev.EventType), ev.Suspicious,
		reasons, ev.ClientTimestamp, ev.ServerTimestamp, ev.IPAddress,
		ev.UserAgent, ev.DeviceFingerprint, string(meta),
	}, nil
}
