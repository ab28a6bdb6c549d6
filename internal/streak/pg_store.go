package streak

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/rollfit/internal/telemetry/tracing"
	"github.com/2beens/rollfit/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ Store = (*PgStore)(nil)

// PgStore keeps records in the user_streaks table, one row per user.
type PgStore struct {
	db *pgxpool.Pool
}

func NewPgStore(db *pgxpool.Pool) *PgStore {
	return &PgStore{
		db: db,
	}
}

func (s *PgStore) Get(ctx context.Context, userID string) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.streak.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	row := s.db.QueryRow(ctx, `
		SELECT current_streak, longest_streak, current_goal, last_login_date, total_workouts, last_workout_date
		FROM user_streaks
		WHERE user_id = $1
	`, userID)

	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRecordNotFound
	} else if err != nil {
		return nil, fmt.Errorf("%w: get: %w", ErrPersistenceUnavailable, err)
	}
	return rec, nil
}

func (s *PgStore) Create(ctx context.Context, userID string, rec Record) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.streak.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = s.db.Exec(ctx, `
		INSERT INTO user_streaks (user_id, current_streak, longest_streak, current_goal, last_login_date, total_workouts, last_workout_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		userID,
		rec.CurrentStreak, rec.LongestStreak, rec.CurrentGoal, rec.LastLoginDate.Time(),
		rec.TotalWorkouts, rec.LastWorkoutDate.Time(),
	)
	if pkg.IsUniqueViolationError(err) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("%w: create: %w", ErrPersistenceUnavailable, err)
	}
	return true, nil
}

func (s *PgStore) MergeLogin(ctx context.Context, userID string, fields LoginFields) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.streak.merge_login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := s.db.Exec(ctx, `
		UPDATE user_streaks
		SET current_streak = $2, longest_streak = $3, current_goal = $4, last_login_date = $5, updated_at = now()
		WHERE user_id = $1
	`, userID, fields.CurrentStreak, fields.LongestStreak, fields.CurrentGoal, fields.LastLoginDate.Time())
	if err != nil {
		return fmt.Errorf("%w: merge login: %w", ErrPersistenceUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *PgStore) MergeWorkout(ctx context.Context, userID string, fields WorkoutFields) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.streak.merge_workout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := s.db.Exec(ctx, `
		UPDATE user_streaks
		SET total_workouts = $2, last_workout_date = $3, updated_at = now()
		WHERE user_id = $1
	`, userID, fields.TotalWorkouts, fields.LastWorkoutDate.Time())
	if err != nil {
		return fmt.Errorf("%w: merge workout: %w", ErrPersistenceUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *PgStore) Scan(ctx context.Context, fn ScanFunc) error {
	rows, err := s.db.Query(ctx, `
		SELECT user_id, current_streak, longest_streak, current_goal, last_login_date, total_workouts, last_workout_date
		FROM user_streaks
		ORDER BY user_id
	`)
	if err != nil {
		return fmt.Errorf("%w: scan: %w", ErrPersistenceUnavailable, err)
	}

	type userRecord struct {
		userID string
		rec    Record
	}
	// collect first, fn may write to the same table
	var all []userRecord
	for rows.Next() {
		var userID string
		rec, err := scanRecord(rows, &userID)
		if err != nil {
			rows.Close()
			return fmt.Errorf("%w: scan row: %w", ErrPersistenceUnavailable, err)
		}
		all = append(all, userRecord{userID: userID, rec: *rec})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: scan rows: %w", ErrPersistenceUnavailable, err)
	}

	for _, ur := range all {
		if err := fn(ur.userID, ur.rec, nil); err != nil {
			return err
		}
	}
	return nil
}

// scanRecord reads the record columns, optionally preceded by extra destinations.
func scanRecord(row pgx.Row, prefix ...any) (*Record, error) {
	var (
		rec                          Record
		lastLoginDay, lastWorkoutDay time.Time
	)
	dest := append(prefix,
		&rec.CurrentStreak, &rec.LongestStreak, &rec.CurrentGoal, &lastLoginDay,
		&rec.TotalWorkouts, &lastWorkoutDay,
	)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	rec.LastLoginDate = DateOf(lastLoginDay)
	rec.LastWorkoutDate = DateOf(lastWorkoutDay)
	return &rec, nil
}
