package streak

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/rollfit/internal/telemetry/tracing"

	"cloud.google.com/go/firestore"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var _ Store = (*FirestoreStore)(nil)

const FirestoreCollection = "userStreaks"

// firestoreRecord is the document layout of userStreaks/{userId}.
// Dates are stored as YYYY-MM-DD strings, as the mobile clients read them.
type firestoreRecord struct {
	CurrentStreak   int    `firestore:"currentStreak"`
	LongestStreak   int    `firestore:"longestStreak"`
	LastLoginDate   string `firestore:"lastLoginDate"`
	TotalWorkouts   int    `firestore:"totalWorkouts"`
	LastWorkoutDate string `firestore:"lastWorkoutDate"`
	CurrentGoal     int    `firestore:"currentGoal"`
}

// FirestoreStore keeps records as documents of the userStreaks collection.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{
		client: client,
	}
}

func (s *FirestoreStore) doc(userID string) *firestore.DocumentRef {
	return s.client.Collection(FirestoreCollection).Doc(userID)
}

func (s *FirestoreStore) Get(ctx context.Context, userID string) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "firestore.streak.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	snap, err := s.doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrRecordNotFound
	} else if err != nil {
		return nil, fmt.Errorf("%w: get: %w", ErrPersistenceUnavailable, err)
	}
	return decodeSnapshot(snap)
}

func (s *FirestoreStore) Create(ctx context.Context, userID string, rec Record) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "firestore.streak.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = s.doc(userID).Create(ctx, firestoreRecord{
		CurrentStreak:   rec.CurrentStreak,
		LongestStreak:   rec.LongestStreak,
		LastLoginDate:   rec.LastLoginDate.String(),
		TotalWorkouts:   rec.TotalWorkouts,
		LastWorkoutDate: rec.LastWorkoutDate.String(),
		CurrentGoal:     rec.CurrentGoal,
	})
	if status.Code(err) == codes.AlreadyExists {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("%w: create: %w", ErrPersistenceUnavailable, err)
	}
	return true, nil
}

func (s *FirestoreStore) MergeLogin(ctx context.Context, userID string, fields LoginFields) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "firestore.streak.merge_login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	return s.update(ctx, userID, loginUpdates(fields))
}

func (s *FirestoreStore) MergeWorkout(ctx context.Context, userID string, fields WorkoutFields) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "firestore.streak.merge_workout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	return s.update(ctx, userID, workoutUpdates(fields))
}

// update fails with NotFound on a missing document, it never creates one.
func (s *FirestoreStore) update(ctx context.Context, userID string, updates []firestore.Update) error {
	_, err := s.doc(userID).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return ErrRecordNotFound
	} else if err != nil {
		return fmt.Errorf("%w: update: %w", ErrPersistenceUnavailable, err)
	}
	return nil
}

func (s *FirestoreStore) Scan(ctx context.Context, fn ScanFunc) error {
	iter := s.client.Collection(FirestoreCollection).Documents(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		} else if err != nil {
			return fmt.Errorf("%w: scan: %w", ErrPersistenceUnavailable, err)
		}

		rec, err := decodeSnapshot(snap)
		if err != nil {
			log.Warnf("scan: cannot decode streak document [%s]: %s", snap.Ref.ID, err)
			if err := fn(snap.Ref.ID, Record{}, err); err != nil {
				return err
			}
			continue
		}
		if err := fn(snap.Ref.ID, *rec, nil); err != nil {
			return err
		}
	}
}

func loginUpdates(f LoginFields) []firestore.Update {
	return []firestore.Update{
		{Path: fieldCurrentStreak, Value: f.CurrentStreak},
		{Path: fieldLongestStreak, Value: f.LongestStreak},
		{Path: fieldCurrentGoal, Value: f.CurrentGoal},
		{Path: fieldLastLoginDate, Value: f.LastLoginDate.String()},
	}
}

func workoutUpdates(f WorkoutFields) []firestore.Update {
	return []firestore.Update{
		{Path: fieldTotalWorkouts, Value: f.TotalWorkouts},
		{Path: fieldLastWorkoutDate, Value: f.LastWorkoutDate.String()},
	}
}

func decodeSnapshot(snap *firestore.DocumentSnapshot) (*Record, error) {
	var doc firestoreRecord
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w: decode %s: %w", ErrPersistenceUnavailable, ErrUndecodableRecord, snap.Ref.ID, err)
	}
	return doc.record()
}

func (d firestoreRecord) record() (*Record, error) {
	lastLogin, err := ParseDate(d.LastLoginDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrPersistenceUnavailable, ErrUndecodableRecord, err)
	}
	lastWorkout, err := ParseDate(d.LastWorkoutDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrPersistenceUnavailable, ErrUndecodableRecord, err)
	}
	return &Record{
		CurrentStreak:   d.CurrentStreak,
		LongestStreak:   d.LongestStreak,
		LastLoginDate:   lastLogin,
		TotalWorkouts:   d.TotalWorkouts,
		LastWorkoutDate: lastWorkout,
		CurrentGoal:     d.CurrentGoal,
	}, nil
}
