package booking

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/domain"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/observability"
)

var testShow = domain.Show{MovieID: "m42", Date: "2025-03-30", Time: "6:00 PM"}

func newTestRepo() (*Repository, *fakeShowStore, *fakeHistoryStore) {
	shows := newFakeShowStore()
	history := newFakeHistoryStore()
	return NewRepository(shows, history, observability.NewLogger()), shows, history
}

func TestConfirm_CreatesBothRecords(t *testing.T) {
	repo, shows, _ := newTestRepo()
	ctx := context.Background()

	entry, err := repo.Confirm(ctx, "u1", testShow, "Interstellar", []string{"A1", "A2"}, 200)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, entry.Seats)
	assert.Equal(t, int64(400), entry.TotalPrice)
	assert.Equal(t, "Interstellar", entry.Title)

	rec, err := shows.Get(ctx, "u1", "m42")
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, rec.Seats)
	assert.Equal(t, "6:00 PM", rec.Time)

	h, err := repo.History(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, h.Bookings, 1)
	assert.Equal(t, entry, h.Bookings[0])
}

func TestConfirm_UnionsIntoExistingRecord(t *testing.T) {
	repo, shows, _ := newTestRepo()
	ctx := context.Background()

	_, err := repo.Confirm(ctx, "u1", testShow, "T", []string{"B5"}, 200)
	require.NoError(t, err)

	// second confirm overlaps on A1 deliberately
	_, err = repo.Confirm(ctx, "u1", testShow, "T", []string{"A1", "B5"}, 200)
	require.NoError(t, err)

	rec, err := shows.Get(ctx, "u1", "m42")
	require.NoError(t, err)
	assert.Equal(t, []string{"B5", "A1"}, rec.Seats)
}

func TestConfirm_EmptySelection(t *testing.T) {
	repo, shows, history := newTestRepo()

	_, err := repo.Confirm(context.Background(), "u1", testShow, "T", nil, 200)
	assert.ErrorIs(t, err, domain.ErrEmptySelection)
	assert.Zero(t, shows.puts)
	assert.Zero(t, history.puts)
}

func TestConfirm_RetriesVersionConflict(t *testing.T) {
	repo, shows, _ := newTestRepo()
	ctx := context.Background()

	// seed a record, then make the first overwrite lose to a concurrent
	// writer
	_, err := repo.Confirm(ctx, "u1", testShow, "T", []string{"A1"}, 200)
	require.NoError(t, err)

	shows.failPuts = 1
	shows.putErr = domain.ErrVersionConflict

	_, err = repo.Confirm(ctx, "u1", testShow, "T", []string{"A2"}, 200)
	require.NoError(t, err)

	rec, err := shows.Get(ctx, "u1", "m42")
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, rec.Seats)
}

func TestConfirm_GivesUpAfterRepeatedConflicts(t *testing.T) {
	repo, shows, history := newTestRepo()

	shows.failPuts = maxMergeAttempts
	shows.putErr = domain.ErrVersionConflict

	_, err := repo.Confirm(context.Background(), "u1", testShow, "T", []string{"A1"}, 200)
	assert.ErrorIs(t, err, domain.ErrVersionConflict)
	// no history entry may exist without a show-record write
	assert.Zero(t, history.puts)
}

func TestConfirm_ShowWriteBeforeHistory(t *testing.T) {
	repo, shows, history := newTestRepo()
	ctx := context.Background()

	history.failPuts = maxMergeAttempts
	history.putErr = errors.New("store down")

	_, err := repo.Confirm(ctx, "u1", testShow, "T", []string{"A1"}, 200)
	require.Error(t, err)

	// the show record landed even though the history append failed; a retry
	// re-merges it idempotently
	rec, err := shows.Get(ctx, "u1", "m42")
	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, rec.Seats)

	history.failPuts = 0
	_, err = repo.Confirm(ctx, "u1", testShow, "T", []string{"A1"}, 200)
	require.NoError(t, err)

	rec, err = shows.Get(ctx, "u1", "m42")
	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, rec.Seats)
}

// The naive client overwrote the whole document with whatever it had read at
// session start, silently dropping a concurrent writer's seats. The version
// guard turns that lost update into a conflict the repository resolves by
// re-reading.
func TestLostUpdatePrevented(t *testing.T) {
	repo, shows, _ := newTestRepo()
	ctx := context.Background()

	_, err := repo.Confirm(ctx, "u1", testShow, "T", []string{"A1"}, 200)
	require.NoError(t, err)

	// a stale writer holding version 0 must be rejected by the store
	stale := &domain.ShowBooking{Seats: []string{"Z9"}, ShowID: "m42", Version: 0}
	err = shows.Put(ctx, "u1", "m42", stale)
	assert.ErrorIs(t, err, domain.ErrVersionConflict)

	// while the repository, re-reading, merges instead of clobbering
	_, err = repo.Confirm(ctx, "u1", testShow, "T", []string{"B2"}, 200)
	require.NoError(t, err)

	rec, err := shows.Get(ctx, "u1", "m42")
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "B2"}, rec.Seats)
}

func TestCancelHistory_LeavesShowRecord(t *testing.T) {
	repo, shows, _ := newTestRepo()
	ctx := context.Background()

	_, err := repo.Confirm(ctx, "u1", testShow, "T", []string{"A1", "A2"}, 200)
	require.NoError(t, err)

	removed, err := repo.CancelHistory(ctx, "u1", "m42")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	h, err := repo.History(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, h.Bookings)

	// the occupancy record still holds the seats; cancellation does not
	// free them
	rec, err := shows.Get(ctx, "u1", "m42")
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, rec.Seats)
}

func TestCancelHistory_NothingToRemove(t *testing.T) {
	repo, _, _ := newTestRepo()

	removed, err := repo.CancelHistory(context.Background(), "u1", "m42")
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestReleaseSeats(t *testing.T) {
	repo, shows, _ := newTestRepo()
	ctx := context.Background()

	_, err := repo.Confirm(ctx, "u1", testShow, "T", []string{"A1", "A2", "B3"}, 200)
	require.NoError(t, err)

	require.NoError(t, repo.ReleaseSeats(ctx, "u1", "m42", []string{"A1", "B3"}))

	rec, err := shows.Get(ctx, "u1", "m42")
	require.NoError(t, err)
	assert.Equal(t, []string{"A2"}, rec.Seats)
}

func TestBookedSeats_MissingRecordIsEmpty(t *testing.T) {
	repo, _, _ := newTestRepo()

	seats, err := repo.BookedSeats(context.Background(), "u1", testShow)
	require.NoError(t, err)
	assert.Empty(t, seats)
}
