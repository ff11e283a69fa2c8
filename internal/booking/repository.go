package booking

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/domain"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/observability"
)

// maxMergeAttempts bounds the re-read-and-merge loop on version conflicts.
const maxMergeAttempts = 3

// Repository owns the read-merge-write cycle over the two booking documents.
// The underlying store only offers get and full overwrite, so every merge
// re-reads, applies the change and writes back under the version guard,
// retrying a bounded number of times when a concurrent writer got there
// first.
type Repository struct {
	shows   ShowBookingStore
	history HistoryStore
	logger  observability.Logger
}

func NewRepository(shows ShowBookingStore, history HistoryStore, logger observability.Logger) *Repository {
	return &Repository{shows: shows, history: history, logger: logger}
}

// BookedSeats returns the seats the user already holds for the show. A
// missing record is an empty set, not an error.
func (r *Repository) BookedSeats(ctx context.Context, userID string, show domain.Show) ([]string, error) {
	rec, err := r.shows.Get(ctx, userID, show.MovieID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec.Seats, nil
}

// History returns the user's booking history, empty when none exists yet.
func (r *Repository) History(ctx context.Context, userID string) (*domain.History, error) {
	h, err := r.history.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.History{}, nil
	}
	return h, err
}

// Confirm merges the selection into the show record and appends a history
// entry. The show-record write always happens first; a crash between the two
// leaves an updated show record with no history entry, which a later retry
// repairs (the show merge is idempotent under union). The history append is
// not idempotent: retrying a Confirm that failed after the history write
// landed can duplicate an entry.
func (r *Repository) Confirm(ctx context.Context, userID string, show domain.Show, title string, seats []string, unitPrice int64) (domain.HistoryEntry, error) {
	if len(seats) == 0 {
		return domain.HistoryEntry{}, domain.ErrEmptySelection
	}

	if err := r.mergeShowRecord(ctx, userID, show, title, seats); err != nil {
		observability.BookingWriteFailures.Inc()
		return domain.HistoryEntry{}, errors.Wrap(err, "merge show record")
	}

	entry := domain.NewHistoryEntry(show, title, seats, unitPrice)
	if err := r.appendHistory(ctx, userID, entry); err != nil {
		observability.BookingWriteFailures.Inc()
		return domain.HistoryEntry{}, errors.Wrap(err, "append history")
	}

	observability.BookingsConfirmed.Inc()
	r.logger.WithField("user_id", userID).WithField("show_id", show.MovieID).Info("booking confirmed")
	return entry, nil
}

func (r *Repository) mergeShowRecord(ctx context.Context, userID string, show domain.Show, title string, seats []string) error {
	var lastErr error
	for attempt := 0; attempt < maxMergeAttempts; attempt++ {
		rec, err := r.shows.Get(ctx, userID, show.MovieID)
		if errors.Is(err, domain.ErrNotFound) {
			rec = &domain.ShowBooking{
				Date:   show.Date,
				Time:   show.Time,
				ShowID: show.MovieID,
				Title:  title,
			}
		} else if err != nil {
			return err
		}

		rec.MergeSeats(seats)
		rec.Date, rec.Time = show.Date, show.Time
		if title != "" {
			rec.Title = title
		}

		lastErr = r.shows.Put(ctx, userID, show.MovieID, rec)
		if !errors.Is(lastErr, domain.ErrVersionConflict) {
			return lastErr
		}
	}
	return lastErr
}

func (r *Repository) appendHistory(ctx context.Context, userID string, entry domain.HistoryEntry) error {
	var lastErr error
	for attempt := 0; attempt < maxMergeAttempts; attempt++ {
		h, err := r.history.Get(ctx, userID)
		if errors.Is(err, domain.ErrNotFound) {
			h = &domain.History{}
		} else if err != nil {
			return err
		}

		h.Bookings = append(h.Bookings, entry)

		lastErr = r.history.Put(ctx, userID, h)
		if !errors.Is(lastErr, domain.ErrVersionConflict) {
			return lastErr
		}
	}
	return lastErr
}

// CancelHistory removes the user's history entries for a show. It does not
// free the seats in the show record; that asymmetry matches how the product
// behaves, and ReleaseSeats exists for callers that do want the seats back.
func (r *Repository) CancelHistory(ctx context.Context, userID, showID string) (int, error) {
	var removed int
	var lastErr error
	for attempt := 0; attempt < maxMergeAttempts; attempt++ {
		h, err := r.history.Get(ctx, userID)
		if errors.Is(err, domain.ErrNotFound) {
			return 0, nil
		}
		if err != nil {
			return 0, err
		}

		removed = h.RemoveEntries(showID)
		if removed == 0 {
			return 0, nil
		}

		lastErr = r.history.Put(ctx, userID, h)
		if !errors.Is(lastErr, domain.ErrVersionConflict) {
			return removed, lastErr
		}
	}
	return 0, lastErr
}

// ReleaseSeats removes the given seats from the show record, making them
// selectable again. Explicitly separate from CancelHistory.
func (r *Repository) ReleaseSeats(ctx context.Context, userID, showID string, seats []string) error {
	drop := make(map[string]struct{}, len(seats))
	for _, s := range seats {
		drop[s] = struct{}{}
	}

	var lastErr error
	for attempt := 0; attempt < maxMergeAttempts; attempt++ {
		rec, err := r.shows.Get(ctx, userID, showID)
		if err != nil {
			return err
		}

		kept := rec.Seats[:0]
		for _, s := range rec.Seats {
			if _, ok := drop[s]; !ok {
				kept = append(kept, s)
			}
		}
		rec.Seats = kept

		lastErr = r.shows.Put(ctx, userID, showID, rec)
		if !errors.Is(lastErr, domain.ErrVersionConflict) {
			return lastErr
		}
	}
	return lastErr
}
