package streak

import (
	"context"
	"sort"
	"sync"
)

var _ Store = (*MemStore)(nil)

// MemStore keeps records in process memory. Used for local development and tests.
type MemStore struct {
	records map[string]Record
	mutex   sync.RWMutex
}

func NewMemStore() *MemStore {
	return &MemStore{
		records: map[string]Record{},
	}
}

func (s *MemStore) Get(_ context.Context, userID string) (*Record, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	rec, ok := s.records[userID]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &rec, nil
}

func (s *MemStore) Create(_ context.Context, userID string, rec Record) (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.records[userID]; ok {
		return false, nil
	}
	s.records[userID] = rec
	return true, nil
}

func (s *MemStore) MergeLogin(_ context.Context, userID string, fields LoginFields) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	rec, ok := s.records[userID]
	if !ok {
		return ErrRecordNotFound
	}
	rec.ApplyLogin(fields)
	s.records[userID] = rec
	return nil
}

func (s *MemStore) MergeWorkout(_ context.Context, userID string, fields WorkoutFields) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	rec, ok := s.records[userID]
	if !ok {
		return ErrRecordNotFound
	}
	rec.ApplyWorkout(fields)
	s.records[userID] = rec
	return nil
}

func (s *MemStore) Scan(ctx context.Context, fn ScanFunc) error {
	s.mutex.RLock()
	userIDs := make([]string, 0, len(s.records))
	for userID := range s.records {
		userIDs = append(userIDs, userID)
	}
	s.mutex.RUnlock()
	sort.Strings(userIDs)

	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := s.Get(ctx, userID)
		if err != nil {
			continue
		}
		if err := fn(userID, *rec, nil); err != nil {
			return err
		}
	}
	return nil
}
