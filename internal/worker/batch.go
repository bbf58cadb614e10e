package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	BatchSize    = 50
	BatchTimeout = 2 * time.Second
	PollTimeout  = 1 * time.Second // Must be >= 1s to satisfy Redis
)

// batcher drains one Redis list into PostgreSQL in batches: bulk insert
// first, then row by row, then back to the queue for whatever still failed.
type batcher[T any] struct {
	queue string
	rdb   *redis.Client
	log   zerolog.Logger

	bulk    func(ctx context.Context, batch []*T) error
	row     func(ctx context.Context, item *T) error
	requeue func(ctx context.Context, items []*T)

	// retryPause slows the loop down after a requeue so a dead database is not hammered.
	retryPause time.Duration
}

func newBatcher[T any](queue string, rdb *redis.Client, log zerolog.Logger) *batcher[T] {
	b := &batcher[T]{
		queue:      queue,
		rdb:        rdb,
		log:        log,
		retryPause: 2 * time.Second,
	}
	b.requeue = b.pushBack
	return b
}

func (b *batcher[T]) run(ctx context.Context) {
	buffer := make([]*T, 0, BatchSize)
	lastFlushTime := time.Now()

	for {
		// 1. Check Flush Conditions (Time or Size)
		if len(buffer) > 0 {
			if len(buffer) >= BatchSize || time.Since(lastFlushTime) >= BatchTimeout {
				b.flushSafe(ctx, buffer)
				buffer = make([]*T, 0, BatchSize)
				lastFlushTime = time.Now()
			}
		}

		// 2. Check Context (Graceful Shutdown)
		select {
		case <-ctx.Done():
			b.shutdown(buffer)
			return
		default:
		}

		// 3. Fetch from Redis. BLPop returns immediately if data exists.
		result, err := b.rdb.BLPop(ctx, PollTimeout, b.queue).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue // queue empty, loop back to check the flush timer
			}
			if ctx.Err() != nil {
				continue
			}
			b.log.Error().Err(err).Msg("Redis connection error, sleeping 3s")
			sleepCtx(ctx, 3*time.Second)
			continue
		}

		// 4. Decode
		if len(result) < 2 {
			continue
		}
		item := new(T)
		if err := json.Unmarshal([]byte(result[1]), item); err != nil {
			// Malformed JSON can never succeed. Log and discard.
			b.log.Error().Err(err).Str("data", result[1]).Msg("Discarding malformed JSON")
			continue
		}
		buffer = append(buffer, item)
	}
}

// flushSafe attempts bulk insert, then fallback insert, then requeue.
func (b *batcher[T]) flushSafe(ctx context.Context, batch []*T) {
	if len(batch) == 0 {
		return
	}
	err := b.bulk(ctx, batch)
	if err == nil {
		b.log.Debug().Int("count", len(batch)).Msg("Batch persisted")
		return
	}
	b.log.Warn().Err(err).Int("count", len(batch)).Msg("Bulk insert failed, attempting row-by-row recovery")

	failed := make([]*T, 0)
	for _, item := range batch {
		if err := b.row(ctx, item); err != nil {
			if errors.Is(err, errDropItem) {
				b.log.Error().Err(err).Msg("Dropping item that can never be stored")
				continue
			}
			b.log.Error().Err(err).Msg("Insert failed, requeueing")
			failed = append(failed, item)
		}
	}
	if len(failed) > 0 {
		b.requeue(ctx, failed)
	}
}

// errDropItem marks a row error that retrying cannot fix.
var errDropItem = errors.New("invalid item")

func (b *batcher[T]) pushBack(ctx context.Context, items []*T) {
	// Use a pipeline to push everything back quickly
	pipe := b.rdb.Pipeline()
	for _, item := range items {
		data, _ := json.Marshal(item)
		pipe.RPush(ctx, b.queue, data)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		b.log.Error().Err(err).Int("count", len(items)).Msg("CRITICAL: Failed to requeue items to Redis. Data loss occurred.")
		return
	}
	b.log.Info().Int("count", len(items)).Msg("Requeued failed items back to Redis")
	sleepCtx(ctx, b.retryPause)
}

func (b *batcher[T]) shutdown(buffer []*T) {
	b.log.Info().Int("pending", len(buffer)).Msg("Worker stopping, flushing remaining buffer...")

	// Give it 5 seconds to flush to DB
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	b.flushSafe(shutdownCtx, buffer)
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
