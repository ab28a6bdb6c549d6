package activity

import (
	"time"

	"github.com/2beens/rollfit/internal/streak"
)

// Event is a single entry of a user's activity log, e.g.:
//   - login evaluated (with the resulting streak and transition)
//   - workout completed (with the lifetime workouts count)
//   - milestone reached (with the reached streak and the next goal)
type Event struct {
	ID        int               `json:"id"`
	UserID    string            `json:"userId"`
	Type      EventType         `json:"type"`
	Day       streak.Date       `json:"day"`
	Timestamp time.Time         `json:"timestamp"`
	Data      map[string]string `json:"data"`
}

// EventType can be one of:
//   - login_evaluated
//   - workout_completed
//   - milestone_reached
type EventType string

const (
	EventTypeLoginEvaluated   EventType = "login_evaluated"
	EventTypeWorkoutCompleted EventType = "workout_completed"
	EventTypeMilestoneReached EventType = "milestone_reached"
)

func (et EventType) String() string {
	return string(et)
}

func (et EventType) IsValid() bool {
	switch et {
	case EventTypeLoginEvaluated,
		EventTypeWorkoutCompleted,
		EventTypeMilestoneReached:
		return true
	default:
		return false
	}
}
