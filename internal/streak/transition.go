package streak

// Transition classifies a login evaluation.
type Transition string

const (
	TransitionInitial     Transition = "initial"
	TransitionSameDay     Transition = "same_day"
	TransitionConsecutive Transition = "consecutive"
	TransitionGap         Transition = "gap"
)

func (t Transition) String() string {
	return string(t)
}

// EvaluateLogin applies a login on the calendar day today to rec.
//
// The day distance is absolute, so a today earlier than the stored login date
// is classified like a forward move of the same size. The stored login date
// always becomes today, which keeps a repeated evaluation for the same day a no-op.
func EvaluateLogin(rec Record, today Date) (Record, Transition) {
	diffDays := rec.LastLoginDate.DaysUntil(today)
	if diffDays < 0 {
		diffDays = -diffDays
	}

	var transition Transition
	switch {
	case diffDays == 0:
		transition = TransitionSameDay
	case diffDays == 1:
		transition = TransitionConsecutive
		rec.CurrentStreak++
		if rec.CurrentStreak > rec.LongestStreak {
			rec.LongestStreak = rec.CurrentStreak
		}
		rec.CurrentGoal = NextGoal(rec.CurrentStreak)
	default:
		transition = TransitionGap
		rec.CurrentStreak = 1
		rec.CurrentGoal = GoalStep
		// longest only ever grows; a first streak of 1 after a gap is still a streak
		if rec.LongestStreak < rec.CurrentStreak {
			rec.LongestStreak = rec.CurrentStreak
		}
	}

	rec.LastLoginDate = today
	return rec, transition
}

// RecordWorkout counts a workout completion on the calendar day today.
// At most one workout is counted per calendar day; a today that is not after
// the last counted workout day is a no-op.
func RecordWorkout(rec Record, today Date) (Record, bool) {
	if !today.After(rec.LastWorkoutDate) {
		return rec, false
	}
	rec.TotalWorkouts++
	rec.LastWorkoutDate = today
	return rec, true
}

// Milestone is reported when a consecutive day login moves the goal up a rung.
type Milestone struct {
	Streak   int  `json:"streak"`
	NextGoal int  `json:"nextGoal"`
	Day      Date `json:"day"`
}

func reachedMilestone(before, after Record, transition Transition) (Milestone, bool) {
	if transition != TransitionConsecutive || after.CurrentGoal <= before.CurrentGoal {
		return Milestone{}, false
	}
	return Milestone{
		Streak:   after.CurrentStreak,
		NextGoal: after.CurrentGoal,
		Day:      after.LastLoginDate,
	}, true
}
