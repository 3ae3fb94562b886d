package interfaces

import (
	"context"

	"score-server/internal/models"
)

// NotificationStore owns the fid -> notification details registrations.
// At most one credential per fid, last write wins. Implementations must make
// each operation atomic; callers never mutate the underlying state directly.
type NotificationStore interface {
	// Get returns the stored details for a fid, or nil when absent.
	Get(ctx context.Context, fid int64) (*models.NotificationDetails, error)
	// Set inserts or overwrites the details for a fid.
	Set(ctx context.Context, fid int64, details models.NotificationDetails) error
	// Delete removes the registration if present and reports whether one existed.
	Delete(ctx context.Context, fid int64) (bool, error)
	// Has reports whether a fid currently has a registration.
	Has(ctx context.Context, fid int64) (bool, error)
	// Count returns the number of registered fids.
	Count(ctx context.Context) (int64, error)
	// FIDs returns a snapshot of all registered fids, order not significant.
	// Kept for broadcast use.
	FIDs(ctx context.Context) ([]int64, error)
}
