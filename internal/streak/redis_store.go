package streak

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/2beens/rollfit/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

var _ Store = (*RedisStore)(nil)

const (
	fieldCurrentStreak   = "currentStreak"
	fieldLongestStreak   = "longestStreak"
	fieldLastLoginDate   = "lastLoginDate"
	fieldTotalWorkouts   = "totalWorkouts"
	fieldLastWorkoutDate = "lastWorkoutDate"
	fieldCurrentGoal     = "currentGoal"

	redisScanBatch = 100
)

// createIfAbsentScript writes the whole hash only when the key does not exist yet.
var createIfAbsentScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	return 0
end
redis.call("HSET", KEYS[1], unpack(ARGV))
return 1
`)

// mergeIfExistsScript patches the given hash fields of an existing key.
var mergeIfExistsScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return 0
end
redis.call("HSET", KEYS[1], unpack(ARGV))
return 1
`)

// RedisStore keeps every record as a redis hash under userStreaks/{userId}.
type RedisStore struct {
	redisClient *redis.Client
}

func NewRedisStore(redisClient *redis.Client) *RedisStore {
	return &RedisStore{
		redisClient: redisClient,
	}
}

func (s *RedisStore) Get(ctx context.Context, userID string) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redis.streak.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	fields, err := s.redisClient.HGetAll(ctx, recordKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: hgetall: %w", ErrPersistenceUnavailable, err)
	}
	if len(fields) == 0 {
		return nil, ErrRecordNotFound
	}

	rec, err := recordFromHash(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: decode record of [%s]: %w", ErrPersistenceUnavailable, ErrUndecodableRecord, userID, err)
	}
	return rec, nil
}

func (s *RedisStore) Create(ctx context.Context, userID string, rec Record) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redis.streak.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	args := append(loginHashArgs(rec.Login()), workoutHashArgs(rec.Workout())...)
	created, err := createIfAbsentScript.Run(ctx, s.redisClient, []string{recordKey(userID)}, args...).Int()
	if err != nil {
		return false, fmt.Errorf("%w: create: %w", ErrPersistenceUnavailable, err)
	}
	return created == 1, nil
}

func (s *RedisStore) MergeLogin(ctx context.Context, userID string, fields LoginFields) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redis.streak.merge_login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	return s.merge(ctx, userID, loginHashArgs(fields))
}

func (s *RedisStore) MergeWorkout(ctx context.Context, userID string, fields WorkoutFields) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redis.streak.merge_workout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	return s.merge(ctx, userID, workoutHashArgs(fields))
}

func (s *RedisStore) merge(ctx context.Context, userID string, args []interface{}) error {
	merged, err := mergeIfExistsScript.Run(ctx, s.redisClient, []string{recordKey(userID)}, args...).Int()
	if err != nil {
		return fmt.Errorf("%w: merge: %w", ErrPersistenceUnavailable, err)
	}
	if merged == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *RedisStore) Scan(ctx context.Context, fn ScanFunc) error {
	iter := s.redisClient.Scan(ctx, 0, KeyPrefix+"*", redisScanBatch).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		userID := strings.TrimPrefix(key, KeyPrefix)
		rec, err := s.Get(ctx, userID)
		switch {
		case errors.Is(err, ErrRecordNotFound):
			continue
		case errors.Is(err, ErrUndecodableRecord):
			log.Warnf("scan: cannot decode streak record [%s]: %s", key, err)
			if err := fn(userID, Record{}, err); err != nil {
				return err
			}
			continue
		case err != nil:
			return err
		}
		if err := fn(userID, *rec, nil); err != nil {
			return err
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("%w: scan: %w", ErrPersistenceUnavailable, err)
	}
	return nil
}

func loginHashArgs(f LoginFields) []interface{} {
	return []interface{}{
		fieldCurrentStreak, f.CurrentStreak,
		fieldLongestStreak, f.LongestStreak,
		fieldCurrentGoal, f.CurrentGoal,
		fieldLastLoginDate, f.LastLoginDate.String(),
	}
}

func workoutHashArgs(f WorkoutFields) []interface{} {
	return []interface{}{
		fieldTotalWorkouts, f.TotalWorkouts,
		fieldLastWorkoutDate, f.LastWorkoutDate.String(),
	}
}

func recordFromHash(fields map[string]string) (*Record, error) {
	var (
		rec Record
		err error
	)
	ints := map[string]*int{
		fieldCurrentStreak: &rec.CurrentStreak,
		fieldLongestStreak: &rec.LongestStreak,
		fieldTotalWorkouts: &rec.TotalWorkouts,
		fieldCurrentGoal:   &rec.CurrentGoal,
	}
	for name, dst := range ints {
		raw, ok := fields[name]
		if !ok {
			return nil, fmt.Errorf("missing field %s", name)
		}
		if *dst, err = strconv.Atoi(raw); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	}

	if rec.LastLoginDate, err = ParseDate(fields[fieldLastLoginDate]); err != nil {
		return nil, fmt.Errorf("parse %s: %w", fieldLastLoginDate, err)
	}
	if rec.LastWorkoutDate, err = ParseDate(fields[fieldLastWorkoutDate]); err != nil {
		return nil, fmt.Errorf("parse %s: %w", fieldLastWorkoutDate, err)
	}
	return &rec, nil
}
