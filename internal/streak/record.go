package streak

import (
	"fmt"

	"go.uber.org/multierr"
)

// GoalStep is the distance between two rungs of the goal ladder: 15, 30, 45, ...
const GoalStep = 15

// Record is the per user streak document, stored under userStreaks/{userId}.
type Record struct {
	CurrentStreak   int  `json:"currentStreak"`
	LongestStreak   int  `json:"longestStreak"`
	LastLoginDate   Date `json:"lastLoginDate"`
	TotalWorkouts   int  `json:"totalWorkouts"`
	LastWorkoutDate Date `json:"lastWorkoutDate"`
	CurrentGoal     int  `json:"currentGoal"`
}

// LoginFields is the part of the record owned by login evaluation.
type LoginFields struct {
	CurrentStreak int
	LongestStreak int
	CurrentGoal   int
	LastLoginDate Date
}

// WorkoutFields is the part of the record owned by workout completion.
type WorkoutFields struct {
	TotalWorkouts   int
	LastWorkoutDate Date
}

func NewRecord(today Date) Record {
	return Record{
		CurrentStreak:   0,
		LongestStreak:   0,
		CurrentGoal:     GoalStep,
		LastLoginDate:   today,
		LastWorkoutDate: today,
		TotalWorkouts:   0,
	}
}

// NextGoal returns the smallest positive multiple of GoalStep strictly greater than streak.
func NextGoal(streak int) int {
	if streak < 0 {
		streak = 0
	}
	return GoalStep * (streak/GoalStep + 1)
}

func (r Record) Login() LoginFields {
	return LoginFields{
		CurrentStreak: r.CurrentStreak,
		LongestStreak: r.LongestStreak,
		CurrentGoal:   r.CurrentGoal,
		LastLoginDate: r.LastLoginDate,
	}
}

func (r Record) Workout() WorkoutFields {
	return WorkoutFields{
		TotalWorkouts:   r.TotalWorkouts,
		LastWorkoutDate: r.LastWorkoutDate,
	}
}

func (r *Record) ApplyLogin(f LoginFields) {
	r.CurrentStreak = f.CurrentStreak
	r.LongestStreak = f.LongestStreak
	r.CurrentGoal = f.CurrentGoal
	r.LastLoginDate = f.LastLoginDate
}

func (r *Record) ApplyWorkout(f WorkoutFields) {
	r.TotalWorkouts = f.TotalWorkouts
	r.LastWorkoutDate = f.LastWorkoutDate
}

// Validate checks the record invariants and reports every violation found.
func (r Record) Validate() error {
	var err error
	if r.CurrentStreak < 0 || r.LongestStreak < 0 || r.TotalWorkouts < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: negative counter", ErrInvalidRecord))
	}
	if r.CurrentStreak > r.LongestStreak {
		err = multierr.Append(err, fmt.Errorf(
			"%w: current streak %d exceeds longest %d", ErrInvalidRecord, r.CurrentStreak, r.LongestStreak,
		))
	}
	if expected := NextGoal(r.CurrentStreak); r.CurrentGoal != expected {
		err = multierr.Append(err, fmt.Errorf(
			"%w: goal %d, expected %d for streak %d", ErrInvalidRecord, r.CurrentGoal, expected, r.CurrentStreak,
		))
	}
	if r.LastLoginDate.IsZero() {
		err = multierr.Append(err, fmt.Errorf("%w: missing last login date", ErrInvalidRecord))
	}
	if r.LastWorkoutDate.IsZero() {
		err = multierr.Append(err, fmt.Errorf("%w: missing last workout date", ErrInvalidRecord))
	}
	return err
}

// RepairLogin restores the login group invariants, leaving dates and workout counters as they are.
// The second return value reports whether anything changed.
func RepairLogin(r Record) (Record, bool) {
	fixed := r
	if fixed.CurrentStreak < 0 {
		fixed.CurrentStreak = 0
	}
	if fixed.LongestStreak < fixed.CurrentStreak {
		fixed.LongestStreak = fixed.CurrentStreak
	}
	fixed.CurrentGoal = NextGoal(fixed.CurrentStreak)
	return fixed, fixed != r
}
