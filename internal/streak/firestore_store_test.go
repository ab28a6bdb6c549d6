//go:build integration_test || all_tests

package streak

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/iterator"
)

// needs a running emulator: gcloud emulators firestore start --host-port=localhost:8200
func testFirestoreStoreSetup(t *testing.T) (*FirestoreStore, func()) {
	t.Helper()

	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "rollfit-test")
	require.NoError(t, err)

	// start from an empty collection
	iter := client.Collection(FirestoreCollection).Documents(ctx)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		require.NoError(t, err)
		_, err = snap.Ref.Delete(ctx)
		require.NoError(t, err)
	}
	iter.Stop()

	return NewFirestoreStore(client), func() {
		_ = client.Close()
	}
}

func TestFirestoreStore_CreateGetMerge(t *testing.T) {
	store, shutdown := testFirestoreStoreSetup(t)
	defer shutdown()

	ctx := context.Background()
	day := MustParseDate("2024-03-01")

	_, err := store.Get(ctx, "user-1")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	created, err := store.Create(ctx, "user-1", NewRecord(day))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.Create(ctx, "user-1", NewRecord(day.AddDays(3)))
	require.NoError(t, err)
	assert.False(t, created)

	require.NoError(t, store.MergeLogin(ctx, "user-1", LoginFields{
		CurrentStreak: 1,
		LongestStreak: 1,
		CurrentGoal:   15,
		LastLoginDate: day.AddDays(1),
	}))
	require.NoError(t, store.MergeWorkout(ctx, "user-1", WorkoutFields{
		TotalWorkouts:   1,
		LastWorkoutDate: day.AddDays(1),
	}))

	rec, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, Record{
		CurrentStreak:   1,
		LongestStreak:   1,
		CurrentGoal:     15,
		LastLoginDate:   day.AddDays(1),
		TotalWorkouts:   1,
		LastWorkoutDate: day.AddDays(1),
	}, *rec)

	err = store.MergeLogin(ctx, "missing", LoginFields{LastLoginDate: day})
	assert.ErrorIs(t, err, ErrRecordNotFound)

	var seen []string
	require.NoError(t, store.Scan(ctx, func(userID string, _ Record, _ error) error {
		seen = append(seen, userID)
		return nil
	}))
	assert.Equal(t, []string{"user-1"}, seen)
}
