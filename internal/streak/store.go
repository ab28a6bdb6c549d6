package streak

import "context"

//go:generate mockgen -source=$GOFILE -destination=store_mocks_test.go -package=streak_test

// Store persists one Record per user, addressed as userStreaks/{userId}.
//
// Writes after creation are merges of a single field group, so a login
// evaluation and a workout completion racing on the same user never clobber
// each other's fields.
type Store interface {
	// Get returns ErrRecordNotFound when the user has no record yet.
	Get(ctx context.Context, userID string) (*Record, error)
	// Create stores rec only if the user has no record yet, and reports whether it did.
	Create(ctx context.Context, userID string, rec Record) (created bool, err error)
	// MergeLogin overwrites the login field group of an existing record.
	MergeLogin(ctx context.Context, userID string, fields LoginFields) error
	// MergeWorkout overwrites the workout field group of an existing record.
	MergeWorkout(ctx context.Context, userID string, fields WorkoutFields) error
	// Scan calls fn for every stored record; a non nil error from fn stops the scan.
	Scan(ctx context.Context, fn ScanFunc) error
}

// ScanFunc receives one stored record. A record that cannot be decoded is
// passed with decodeErr set (wrapping ErrUndecodableRecord) and a zero rec.
type ScanFunc func(userID string, rec Record, decodeErr error) error

// KeyPrefix is the document path prefix of all streak records.
const KeyPrefix = "userStreaks/"

func recordKey(userID string) string {
	return KeyPrefix + userID
}
