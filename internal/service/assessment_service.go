package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pathfinder-edu/pathfinder-backend/internal/assessment"
	"github.com/pathfinder-edu/pathfinder-backend/internal/config"
	"github.com/pathfinder-edu/pathfinder-backend/internal/model"
)

// ErrRunningElsewhere is returned when the student already streams another assessment.
var ErrRunningElsewhere = errors.New("another assessment is already running for this student")

// activeRunTTL bounds a stale active-assessment claim left by a crashed server.
const activeRunTTL = time.Hour

// SkillSource provides the skills text saved on a student's profile.
type SkillSource interface {
	Interests(ctx context.Context, studentID int) (string, error)
}

// ResultPublisher hands a terminal result to persistence.
type ResultPublisher interface {
	PublishResult(ctx context.Context, res *model.AssessmentResult) error
}

// EventRecorder stores integrity events raised during a run.
type EventRecorder interface {
	Record(ctx context.Context, in ProctoringInput) (*model.ProctoringEvent, error)
}

// RunLocker keeps at most one streaming assessment per student.
type RunLocker interface {
	Acquire(ctx context.Context, studentID int, runID string) (bool, error)
	Release(ctx context.Context, studentID int, runID string) error
}

// RunMeta describes the client connection of a run.
type RunMeta struct {
	IPAddress   string
	UserAgent   string
	Fingerprint string
}

// AssessmentService creates assessment runs.
type AssessmentService struct {
	selector  *assessment.Selector
	cfg       assessment.Config
	skills    SkillSource
	publisher ResultPublisher
	recorder  EventRecorder
	locker    RunLocker
	log       zerolog.Logger
	now       func() time.Time
}

// NewAssessmentService creates a new AssessmentService. recorder and locker may be nil.
func NewAssessmentService(
	selector *assessment.Selector,
	cfg assessment.Config,
	skills SkillSource,
	publisher ResultPublisher,
	recorder EventRecorder,
	locker RunLocker,
	log zerolog.Logger,
) *AssessmentService {
	return &AssessmentService{
		selector:  selector,
		cfg:       cfg,
		skills:    skills,
		publisher: publisher,
		recorder:  recorder,
		locker:    locker,
		log:       log.With().Str("component", "assessment_service").Logger(),
		now:       time.Now,
	}
}

// Preload returns the skills saved on the profile, or "" when they cannot be read.
func (s *AssessmentService) Preload(ctx context.Context, studentID int) string {
	if s.skills == nil {
		return ""
	}
	text, err := s.skills.Interests(ctx, studentID)
	if err != nil {
		s.log.Warn().Err(err).Int("student_id", studentID).Msg("Failed to preload profile skills")
		return ""
	}
	return text
}

// NewRun creates a run in the NotStarted state.
func (s *AssessmentService) NewRun(studentID int, meta RunMeta) *AssessmentRun {
	id := uuid.New()
	return &AssessmentRun{
		svc:       s,
		id:        id,
		studentID: studentID,
		meta:      meta,
		session:   assessment.NewSession(s.selector, s.cfg),
		log:       s.log.With().Int("student_id", studentID).Str("session_id", id.String()).Logger(),
	}
}

// ─── Run ────────────────────────────────────────────────────────────

// Outcome is the terminal result of a run and whether it reached persistence.
type Outcome struct {
	Result assessment.Result
	Saved  bool
}

// AnswerStep is a scored answer plus the outcome when it ended the run.
type AnswerStep struct {
	assessment.Step
	Outcome *Outcome
}

// SignalStep is a monitor observation plus the outcome when it aborted the run.
type SignalStep struct {
	assessment.Observation
	Outcome *Outcome
}

// AssessmentRun is one streamed assessment. Its methods are safe for
// concurrent use.
type AssessmentRun struct {
	svc       *AssessmentService
	id        uuid.UUID
	studentID int
	meta      RunMeta
	log       zerolog.Logger

	mu      sync.Mutex
	session *assessment.Session
	locked  bool
	outcome *Outcome
	closed  bool
}

// ID returns the run's session id.
func (r *AssessmentRun) ID() string {
	return r.id.String()
}

// Session exposes read access to the underlying state machine. Callers must
// not mutate it.
func (r *AssessmentRun) Session() *assessment.Session {
	return r.session
}

// Start resolves the skills and returns the first question.
func (r *AssessmentRun) Start(ctx context.Context, skillText string) (assessment.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return assessment.Question{}, assessment.ErrSessionClosed
	}
	if r.session.State() != assessment.StateNotStarted {
		return assessment.Question{}, assessment.ErrAlreadyStarted
	}
	if len(assessment.ResolveSkills(skillText)) == 0 {
		return assessment.Question{}, assessment.ErrNoSkills
	}

	if err := r.acquire(ctx); err != nil {
		return assessment.Question{}, err
	}

	q, err := r.session.Start(skillText)
	if err != nil {
		r.release(ctx)
		return assessment.Question{}, err
	}

	r.log.Info().
		Str("skill_label", assessment.SkillLabel(r.session.Skills())).
		Int("categories", len(r.session.Categories())).
		Msg("Assessment started")
	return q, nil
}

// Answer scores a choice. Use assessment.NoSelection when nothing was picked.
func (r *AssessmentRun) Answer(ctx context.Context, choice int) (AnswerStep, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	step, err := r.session.Answer(choice)
	if err != nil {
		return AnswerStep{}, err
	}

	out := AnswerStep{Step: step}
	if step.Result != nil {
		out.Outcome = r.conclude(ctx, *step.Result)
	}
	return out, nil
}

// Signal reports a client event stamped with the server receipt time.
func (r *AssessmentRun) Signal(ctx context.Context, sig assessment.Signal) (SignalStep, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sig.At = r.svc.now()
	obs, err := r.session.Observe(sig)
	if err != nil {
		return SignalStep{Observation: obs}, err
	}

	out := SignalStep{Observation: obs}
	switch obs.Verdict {
	case assessment.VerdictBlocked, assessment.VerdictWarning, assessment.VerdictAborted:
		r.recordSignal(ctx, sig, obs)
	}

	if obs.Verdict == assessment.VerdictAborted {
		if res, ok := r.session.Result(); ok {
			r.record(ctx, model.EventAssessmentTerminated, map[string]any{
				"violations": res.Violations,
				"reason":     res.AbortReason,
			})
			out.Outcome = r.conclude(ctx, res)
		}
	}
	return out, nil
}

// Close tears the run down. A run closed before a terminal state is
// discarded without persisting anything.
func (r *AssessmentRun) Close(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	if !r.session.State().Terminal() && r.session.State() != assessment.StateNotStarted {
		r.log.Info().Int("round", r.session.Round()).Msg("Assessment discarded before completion")
	}
	r.session.Close()
	r.release(ctx)
	r.closed = true
}

// conclude publishes the result once. A publish failure only marks the
// outcome as unsaved.
func (r *AssessmentRun) conclude(ctx context.Context, res assessment.Result) *Outcome {
	if r.outcome != nil {
		return r.outcome
	}

	out := &Outcome{Result: res, Saved: true}
	if err := r.svc.publisher.PublishResult(ctx, r.toModel(res)); err != nil {
		out.Saved = false
		r.log.Error().Err(err).Str("skill_label", res.SkillLabel).Msg("Failed to publish assessment result")
	}

	r.log.Info().
		Str("skill_label", res.SkillLabel).
		Int("highest_level", int(res.HighestLevel)).
		Int("accuracy", res.Accuracy).
		Bool("aborted", res.Aborted()).
		Bool("saved", out.Saved).
		Msg("Assessment finished")

	r.outcome = out
	r.release(ctx)
	return out
}

func (r *AssessmentRun) toModel(res assessment.Result) *model.AssessmentResult {
	cats := make([]string, 0, len(res.Categories))
	for _, c := range res.Categories {
		cats = append(cats, string(c))
	}
	m := &model.AssessmentResult{
		ID:              r.id,
		StudentID:       r.studentID,
		SkillLabel:      res.SkillLabel,
		Categories:      cats,
		HighestLevel:    int(res.HighestLevel),
		LevelLabel:      string(res.Level.Value),
		AccuracyPercent: res.Accuracy,
		TotalQuestions:  res.TotalQuestions,
		CorrectAnswers:  res.CorrectAnswers,
		Violations:      res.Violations,
		Aborted:         res.Aborted(),
		CompletedAt:     r.svc.now().UTC(),
	}
	if res.Aborted() {
		reason := res.AbortReason
		m.AbortReason = &reason
	}
	return m
}

var signalEventTypes = map[assessment.SignalKind]model.ProctoringEventType{
	assessment.SignalVisibilityHidden: model.EventTabSwitch,
	assessment.SignalWindowBlur:       model.EventWindowBlur,
	assessment.SignalCopy:             model.EventCopyBlocked,
	assessment.SignalCut:              model.EventCutBlocked,
	assessment.SignalPaste:            model.EventPasteBlocked,
	assessment.SignalContextMenu:      model.EventContextMenuBlocked,
	assessment.SignalKeyDown:          model.EventShortcutBlocked,
}

func (r *AssessmentRun) recordSignal(ctx context.Context, sig assessment.Signal, obs assessment.Observation) {
	eventType, ok := signalEventTypes[sig.Kind]
	if !ok {
		return
	}
	meta := map[string]any{"signal": string(sig.Kind), "verdict": string(obs.Verdict)}
	if sig.Kind.Counts() {
		meta["violations"] = obs.Violations
	}
	if sig.Kind == assessment.SignalKeyDown {
		meta["key"] = sig.Key
	}
	r.record(ctx, eventType, meta)
}

func (r *AssessmentRun) record(ctx context.Context, eventType model.ProctoringEventType, meta map[string]any) {
	if r.svc.recorder == nil {
		return
	}
	_, err := r.svc.recorder.Record(ctx, ProctoringInput{
		StudentID:       r.studentID,
		SessionID:       r.id.String(),
		AssessmentSkill: assessment.SkillLabel(r.session.Skills()),
		EventType:       eventType,
		IPAddress:       r.meta.IPAddress,
		UserAgent:       r.meta.UserAgent,
		Fingerprint:     r.meta.Fingerprint,
		Metadata:        meta,
	})
	if err != nil {
		r.log.Warn().Err(err).Str("event_type", string(eventType)).Msg("Failed to record proctoring event")
	}
}

func (r *AssessmentRun) acquire(ctx context.Context) error {
	if r.svc.locker == nil {
		return nil
	}
	ok, err := r.svc.locker.Acquire(ctx, r.studentID, r.ID())
	if err != nil {
		r.log.Warn().Err(err).Msg("Active assessment check unavailable, continuing")
		return nil
	}
	if !ok {
		return ErrRunningElsewhere
	}
	r.locked = true
	return nil
}

func (r *AssessmentRun) release(ctx context.Context) {
	if !r.locked {
		return
	}
	r.locked = false
	if err := r.svc.locker.Release(context.WithoutCancel(ctx), r.studentID, r.ID()); err != nil {
		r.log.Warn().Err(err).Msg("Failed to release active assessment")
	}
}

// ─── Redis adapters ─────────────────────────────────────────────────

// RedisResultQueue pushes results to the persistence queue.
type RedisResultQueue struct {
	rdb *redis.Client
}

// NewRedisResultQueue creates a new RedisResultQueue.
func NewRedisResultQueue(rdb *redis.Client) *RedisResultQueue {
	return &RedisResultQueue{rdb: rdb}
}

// PublishResult implements ResultPublisher.
func (q *RedisResultQueue) PublishResult(ctx context.Context, res *model.AssessmentResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := q.rdb.RPush(ctx, config.WorkerKey.PersistAssessmentResultsQueue, data).Err(); err != nil {
		return fmt.Errorf("queue result: %w", err)
	}
	return nil
}

// releaseIfOwner deletes the claim only when it still belongs to the run.
var releaseIfOwner = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisRunLocker implements RunLocker with SET NX.
type RedisRunLocker struct {
	rdb *redis.Client
}

// NewRedisRunLocker creates a new RedisRunLocker.
func NewRedisRunLocker(rdb *redis.Client) *RedisRunLocker {
	return &RedisRunLocker{rdb: rdb}
}

// Acquire claims the student's active assessment slot for runID.
func (l *RedisRunLocker) Acquire(ctx context.Context, studentID int, runID string) (bool, error) {
	key := config.CacheKey.StudentActiveAssessmentKey(studentID)
	return l.rdb.SetNX(ctx, key, runID, activeRunTTL).Result()
}

// Release frees the slot if runID still holds it.
func (l *RedisRunLocker) Release(ctx context.Context, studentID int, runID string) error {
	key := config.CacheKey.StudentActiveAssessmentKey(studentID)
	return releaseIfOwner.Run(ctx, l.rdb, []string{key}, runID).Err()
}
