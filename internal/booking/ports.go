package booking

import (
	"context"

	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/domain"
)

// ShowBookingStore persists the per-user, per-show occupancy record. Put is
// a full-document overwrite guarded by the version read; implementations
// return domain.ErrVersionConflict when the guard fails.
type ShowBookingStore interface {
	Get(ctx context.Context, userID, showID string) (*domain.ShowBooking, error)
	Put(ctx context.Context, userID, showID string, b *domain.ShowBooking) error
}

// HistoryStore persists the per-user booking history document under the same
// overwrite-with-version contract.
type HistoryStore interface {
	Get(ctx context.Context, userID string) (*domain.History, error)
	Put(ctx context.Context, userID string, h *domain.History) error
}

// Catalog supplies movie titles. Title is fail-open: it returns "" when the
// lookup fails.
type Catalog interface {
	Title(ctx context.Context, movieID string) string
}
