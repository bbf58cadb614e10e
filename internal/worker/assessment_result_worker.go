package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pathfinder-edu/pathfinder-backend/internal/config"
	"github.com/pathfinder-edu/pathfinder-backend/internal/model"
)

var assessmentResultColumns = []string{
	"id", "student_id", "skill_label", "categories", "highest_level", "level_label",
	"accuracy_percent", "total_questions", "correct_answers", "violations",
	"aborted", "abort_reason", "completed_at",
}

// AssessmentResultWorker consumes persist_assessment_results_queue, stores
// results and refreshes the latest assessment columns on student_profiles.
type AssessmentResultWorker struct {
	pool  *pgxpool.Pool
	batch *batcher[model.AssessmentResult]
	log   zerolog.Logger
}

// NewAssessmentResultWorker creates a new AssessmentResultWorker.
func NewAssessmentResultWorker(pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *AssessmentResultWorker {
	w := &AssessmentResultWorker{
		pool: pool,
		log:  log.With().Str("component", "assessment_result_worker").Logger(),
	}
	w.batch = newBatcher[model.AssessmentResult](config.WorkerKey.PersistAssessmentResultsQueue, rdb, w.log)
	w.batch.bulk = w.bulkInsert
	w.batch.row = w.insertOne
	return w
}

// Start runs until ctx is cancelled. Call in a goroutine.
func (w *AssessmentResultWorker) Start(ctx context.Context) {
	w.log.Info().Msg("AssessmentResultWorker started")
	w.batch.run(ctx)
}

func (w *AssessmentResultWorker) bulkInsert(ctx context.Context, batch []*model.AssessmentResult) error {
	rows := make([][]interface{}, 0, len(batch))
	for _, r := range batch {
		if r.StudentID <= 0 {
			// Return error to trigger fallback, which drops the bad item individually
			return fmt.Errorf("result %s: %w", r.ID, errDropItem)
		}
		rows = append(rows, resultRow(r))
	}

	return pgx.BeginFunc(ctx, w.pool, func(tx pgx.Tx) error {
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"assessment_results"}, assessmentResultColumns, pgx.CopyFromRows(rows)); err != nil {
			return err
		}
		return refreshProfiles(ctx, tx, latestPerStudent(batch))
	})
}

func (w *AssessmentResultWorker) insertOne(ctx context.Context, r *model.AssessmentResult) error {
	if r.StudentID <= 0 {
		return fmt.Errorf("result %s: %w", r.ID, errDropItem)
	}

	return pgx.BeginFunc(ctx, w.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`INSERT INTO assessment_results
			    (id, student_id, skill_label, categories, highest_level, level_label,
			     accuracy_percent, total_questions, correct_answers, violations,
			     aborted, abort_reason, completed_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			 ON CONFLICT (id) DO NOTHING`,
			resultRow(r)...,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			// Already stored by an earlier attempt.
			return nil
		}
		return refreshProfiles(ctx, tx, []*model.AssessmentResult{r})
	})
}

func resultRow(r *model.AssessmentResult) []interface{} {
	return []interface{}{
		r.ID, r.StudentID, r.SkillLabel, r.Categories, r.HighestLevel, r.LevelLabel,
		r.AccuracyPercent, r.TotalQuestions, r.CorrectAnswers, r.Violations,
		r.Aborted, r.AbortReason, r.CompletedAt,
	}
}

// latestPerStudent keeps one result per student so the upsert never touches
// a row twice.
func latestPerStudent(batch []*model.AssessmentResult) []*model.AssessmentResult {
	latest := make(map[int]*model.AssessmentResult, len(batch))
	order := make([]int, 0, len(batch))
	for _, r := range batch {
		cur, ok := latest[r.StudentID]
		if !ok {
			order = append(order, r.StudentID)
			latest[r.StudentID] = r
			continue
		}
		if !r.CompletedAt.Before(cur.CompletedAt) {
			latest[r.StudentID] = r
		}
	}
	out := make([]*model.AssessmentResult, 0, len(order))
	for _, id := range order {
		out = append(out, latest[id])
	}
	return out
}

// refreshProfiles writes the latest assessment onto student_profiles. An
// older result never overwrites a newer one.
func refreshProfiles(ctx context.Context, tx pgx.Tx, results []*model.AssessmentResult) error {
	n := len(results)
	ids := make([]int, 0, n)
	labels := make([]string, 0, n)
	levels := make([]int, 0, n)
	levelLabels := make([]string, 0, n)
	accuracy := make([]int, 0, n)
	completed := make([]time.Time, 0, n)
	for _, r := range results {
		ids = append(ids, r.StudentID)
		labels = append(labels, r.SkillLabel)
		levels = append(levels, r.HighestLevel)
		levelLabels = append(levelLabels, r.LevelLabel)
		accuracy = append(accuracy, r.AccuracyPercent)
		completed = append(completed, r.CompletedAt)
	}

	_, err := tx.Exec(ctx,
		`INSERT INTO student_profiles
		    (student_id, assessment_skill_label, assessment_level, assessment_level_label,
		     assessment_accuracy, assessment_completed_at)
		 SELECT * FROM UNNEST($1::int[], $2::text[], $3::int[], $4::text[], $5::int[], $6::timestamptz[])
		 ON CONFLICT (student_id) DO UPDATE SET
		    assessment_skill_label = EXCLUDED.assessment_skill_label,
		    assessment_level = EXCLUDED.assessment_level,
		    assessment_level_label = EXCLUDED.assessment_level_label,
		    assessment_accuracy = EXCLUDED.assessment_accuracy,
		    assessment_completed_at = EXCLUDED.assessment_completed_at,
		    updated_at = CURRENT_TIMESTAMP
		 WHERE student_profiles.assessment_completed_at IS NULL
		    OR student_profiles.assessment_completed_at <= EXCLUDED.assessment_completed_at`,
		ids, labels, levels, levelLabels, accuracy, completed,
	)
	return err
}
