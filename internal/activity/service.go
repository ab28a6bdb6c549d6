package activity

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/2beens/rollfit/internal/streak"
	"github.com/2beens/rollfit/internal/telemetry/tracing"
)

var _ streak.ActivityRecorder = (*Service)(nil)

type Service struct {
	repo *Repo
	now  func() time.Time
}

func NewService(repo *Repo) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) LoginEvaluated(ctx context.Context, userID string, rec streak.Record, transition streak.Transition) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activity.add.login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = s.repo.Add(ctx, Event{
		UserID:    userID,
		Type:      EventTypeLoginEvaluated,
		Day:       rec.LastLoginDate,
		Timestamp: s.now(),
		Data: map[string]string{
			"transition":    transition.String(),
			"currentStreak": strconv.Itoa(rec.CurrentStreak),
			"longestStreak": strconv.Itoa(rec.LongestStreak),
			"currentGoal":   strconv.Itoa(rec.CurrentGoal),
		},
	})
	if err != nil {
		return fmt.Errorf("add login evaluated event: %w", err)
	}
	return nil
}

func (s *Service) WorkoutCompleted(ctx context.Context, userID string, rec streak.Record) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activity.add.workout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = s.repo.Add(ctx, Event{
		UserID:    userID,
		Type:      EventTypeWorkoutCompleted,
		Day:       rec.LastWorkoutDate,
		Timestamp: s.now(),
		Data: map[string]string{
			"totalWorkouts": strconv.Itoa(rec.TotalWorkouts),
		},
	})
	if err != nil {
		return fmt.Errorf("add workout completed event: %w", err)
	}
	return nil
}

func (s *Service) MilestoneReached(ctx context.Context, userID string, milestone streak.Milestone) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activity.add.milestone")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = s.repo.Add(ctx, Event{
		UserID:    userID,
		Type:      EventTypeMilestoneReached,
		Day:       milestone.Day,
		Timestamp: s.now(),
		Data: map[string]string{
			"streak":   strconv.Itoa(milestone.Streak),
			"nextGoal": strconv.Itoa(milestone.NextGoal),
		},
	})
	if err != nil {
		return fmt.Errorf("add milestone reached event: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, params ListParams) (_ []Event, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activity.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	events, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	total, err = s.repo.Count(ctx, params.EventParams)
	if err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}
	return events, total, nil
}
