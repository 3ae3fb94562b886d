package store

import (
	"context"
	"sync"

	"score-server/internal/interfaces"
	"score-server/internal/models"

	"go.uber.org/zap"
)

// Compile-time check to ensure MemoryStore implements NotificationStore.
var _ interfaces.NotificationStore = (*MemoryStore)(nil)

// MemoryStore is the in-memory notification store. Registrations live for the
// process lifetime only; a production deployment should use the Redis store.
type MemoryStore struct {
	mu      sync.RWMutex
	details map[int64]models.NotificationDetails
	logger  *zap.Logger
}

// NewMemoryStore creates an empty in-memory NotificationStore.
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryStore{
		details: make(map[int64]models.NotificationDetails),
		logger:  logger.Named("MemoryNotificationStore"),
	}
}

func (s *MemoryStore) Get(_ context.Context, fid int64) (*models.NotificationDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.details[fid]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (s *MemoryStore) Set(_ context.Context, fid int64, details models.NotificationDetails) error {
	s.mu.Lock()
	s.details[fid] = details
	s.mu.Unlock()
	s.logger.Debug("Saved notification details", zap.Int64("fid", fid))
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, fid int64) (bool, error) {
	s.mu.Lock()
	_, existed := s.details[fid]
	delete(s.details, fid)
	s.mu.Unlock()
	s.logger.Debug("Deleted notification details", zap.Int64("fid", fid), zap.Bool("existed", existed))
	return existed, nil
}

func (s *MemoryStore) Has(_ context.Context, fid int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.details[fid]
	return ok, nil
}

func (s *MemoryStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.details)), nil
}

func (s *MemoryStore) FIDs(_ context.Context) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fids := make([]int64, 0, len(s.details))
	for fid := range s.details {
		fids = append(fids, fid)
	}
	return fids, nil
}
