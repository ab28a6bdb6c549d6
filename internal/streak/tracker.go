package streak

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/rollfit/internal/telemetry/metrics"
	"github.com/2beens/rollfit/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=tracker_mocks_test.go -package=streak_test

// Notifier delivers milestone notifications to the user.
type Notifier interface {
	NotifyMilestone(ctx context.Context, userID string, milestone Milestone) error
}

// ActivityRecorder appends streak events to the user's activity history.
type ActivityRecorder interface {
	LoginEvaluated(ctx context.Context, userID string, rec Record, transition Transition) error
	WorkoutCompleted(ctx context.Context, userID string, rec Record) error
	MilestoneReached(ctx context.Context, userID string, milestone Milestone) error
}

type TrackerOption func(*Tracker)

func WithNotifier(notifier Notifier) TrackerOption {
	return func(t *Tracker) {
		t.notifier = notifier
	}
}

func WithActivityRecorder(recorder ActivityRecorder) TrackerOption {
	return func(t *Tracker) {
		t.activity = recorder
	}
}

func WithMetrics(metricsManager *metrics.Manager) TrackerOption {
	return func(t *Tracker) {
		t.metrics = metricsManager
	}
}

// Tracker maintains the per user login streak, the goal ladder and the
// lifetime workouts count on top of a Store.
type Tracker struct {
	store    Store
	notifier Notifier
	activity ActivityRecorder
	metrics  *metrics.Manager
}

func NewTracker(store Store, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		store: store,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// EvaluateLogin classifies the login on today against the stored record and
// persists the new streak state. A first time user gets the initial record.
func (t *Tracker) EvaluateLogin(ctx context.Context, userID string, today Date) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.streak.evaluate_login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("today", today.String()))

	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	span.SetAttributes(attribute.String("user-id", userID))
	if !today.InRange() {
		return nil, fmt.Errorf("today [%s]: %w", today.Time().Format(DateLayout), ErrDateOutOfRange)
	}

	rec, err := t.store.Get(ctx, userID)
	if errors.Is(err, ErrRecordNotFound) {
		initial := NewRecord(today)
		created, err := t.store.Create(ctx, userID, initial)
		if err != nil {
			t.storeFailed("create")
			return nil, fmt.Errorf("create streak record: %w", err)
		}
		if created {
			log.Debugf("streak record created for user [%s] on %s", userID, today)
			t.loginEvaluated(ctx, userID, initial, TransitionInitial)
			return &initial, nil
		}

		// someone else created it in between, evaluate against theirs
		rec, err = t.store.Get(ctx, userID)
		if err != nil {
			t.storeFailed("get")
			return nil, fmt.Errorf("get streak record after create race: %w", asPersistenceErr(err))
		}
	} else if err != nil {
		t.storeFailed("get")
		return nil, fmt.Errorf("get streak record: %w", err)
	}

	updated, transition := EvaluateLogin(*rec, today)
	if err := t.store.MergeLogin(ctx, userID, updated.Login()); err != nil {
		t.storeFailed("merge_login")
		return nil, fmt.Errorf("save login evaluation: %w", asPersistenceErr(err))
	}
	span.SetAttributes(attribute.String("transition", transition.String()))

	t.loginEvaluated(ctx, userID, updated, transition)
	if milestone, ok := reachedMilestone(*rec, updated, transition); ok {
		t.milestoneReached(ctx, userID, milestone)
	}

	return &updated, nil
}

// RecordWorkoutCompletion counts a finished workout, at most once per calendar day.
// It requires an existing record and fails with ErrPreconditionFailed otherwise.
func (t *Tracker) RecordWorkoutCompletion(ctx context.Context, userID string, today Date) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.streak.record_workout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("today", today.String()))

	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	span.SetAttributes(attribute.String("user-id", userID))
	if !today.InRange() {
		return nil, fmt.Errorf("today [%s]: %w", today.Time().Format(DateLayout), ErrDateOutOfRange)
	}

	rec, err := t.store.Get(ctx, userID)
	if errors.Is(err, ErrRecordNotFound) {
		return nil, ErrPreconditionFailed
	} else if err != nil {
		t.storeFailed("get")
		return nil, fmt.Errorf("get streak record: %w", err)
	}

	updated, counted := RecordWorkout(*rec, today)
	if !counted {
		t.workoutCompleted("noop")
		return &updated, nil
	}

	if err := t.store.MergeWorkout(ctx, userID, updated.Workout()); err != nil {
		t.storeFailed("merge_workout")
		return nil, fmt.Errorf("save workout completion: %w", asPersistenceErr(err))
	}

	t.workoutCompleted("incremented")
	if t.activity != nil {
		if err := t.activity.WorkoutCompleted(ctx, userID, updated); err != nil {
			t.activityFailed(err)
		}
	}

	return &updated, nil
}

// Get returns the stored record without evaluating anything.
func (t *Tracker) Get(ctx context.Context, userID string) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.streak.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	rec, err := t.store.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrRecordNotFound) {
			t.storeFailed("get")
		}
		return nil, err
	}
	return rec, nil
}

func (t *Tracker) loginEvaluated(ctx context.Context, userID string, rec Record, transition Transition) {
	if t.metrics != nil {
		t.metrics.CounterStreakEvaluations.WithLabelValues(transition.String()).Inc()
	}
	if t.activity == nil {
		return
	}
	if err := t.activity.LoginEvaluated(ctx, userID, rec, transition); err != nil {
		t.activityFailed(err)
	}
}

func (t *Tracker) milestoneReached(ctx context.Context, userID string, milestone Milestone) {
	log.Infof("user [%s] reached streak %d, next goal %d", userID, milestone.Streak, milestone.NextGoal)
	if t.metrics != nil {
		t.metrics.CounterMilestones.Inc()
	}

	if t.notifier != nil {
		if err := t.notifier.NotifyMilestone(ctx, userID, milestone); err != nil {
			log.Errorf("notify milestone for user [%s]: %s", userID, err)
			if t.metrics != nil {
				t.metrics.CounterNotificationsFailed.Inc()
			}
		}
	}

	if t.activity != nil {
		if err := t.activity.MilestoneReached(ctx, userID, milestone); err != nil {
			t.activityFailed(err)
		}
	}
}

func (t *Tracker) workoutCompleted(result string) {
	if t.metrics != nil {
		t.metrics.CounterWorkoutCompletions.WithLabelValues(result).Inc()
	}
}

func (t *Tracker) storeFailed(op string) {
	if t.metrics != nil {
		t.metrics.CounterStoreErrors.WithLabelValues(op).Inc()
	}
}

func (t *Tracker) activityFailed(err error) {
	log.Errorf("record streak activity: %s", err)
	if t.metrics != nil {
		t.metrics.CounterActivityRecordsFailed.Inc()
	}
}

// asPersistenceErr makes sure a store failure surfaces as ErrPersistenceUnavailable,
// including a record that disappeared between read and write.
func asPersistenceErr(err error) error {
	if errors.Is(err, ErrPersistenceUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
}
