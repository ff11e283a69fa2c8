package booking

import (
	"context"
	"sync"

	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/domain"
)

// fakeShowStore mimics the document store contract: get and full overwrite
// guarded by a version token.
type fakeShowStore struct {
	mu   sync.Mutex
	docs map[string]domain.ShowBooking
	// failPuts makes the next n Put calls fail with the given error.
	failPuts int
	putErr   error
	puts     int
}

func newFakeShowStore() *fakeShowStore {
	return &fakeShowStore{docs: make(map[string]domain.ShowBooking)}
}

func key(userID, showID string) string { return userID + "_" + showID }

func (f *fakeShowStore) Get(_ context.Context, userID, showID string) (*domain.ShowBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[key(userID, showID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := doc
	cp.Seats = append([]string(nil), doc.Seats...)
	return &cp, nil
}

func (f *fakeShowStore) Put(_ context.Context, userID, showID string, b *domain.ShowBooking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	if f.failPuts > 0 {
		f.failPuts--
		return f.putErr
	}
	k := key(userID, showID)
	cur, ok := f.docs[k]
	if ok && cur.Version != b.Version {
		return domain.ErrVersionConflict
	}
	if !ok && b.Version != 0 {
		return domain.ErrVersionConflict
	}
	stored := *b
	stored.Seats = append([]string(nil), b.Seats...)
	stored.Version = b.Version + 1
	f.docs[k] = stored
	return nil
}

type fakeHistoryStore struct {
	mu       sync.Mutex
	docs     map[string]domain.History
	failPuts int
	putErr   error
	puts     int
}

func newFakeHistoryStore() *fakeHistoryStore {
	return &fakeHistoryStore{docs: make(map[string]domain.History)}
}

func (f *fakeHistoryStore) Get(_ context.Context, userID string) (*domain.History, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := doc
	cp.Bookings = append([]domain.HistoryEntry(nil), doc.Bookings...)
	return &cp, nil
}

func (f *fakeHistoryStore) Put(_ context.Context, userID string, h *domain.History) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	if f.failPuts > 0 {
		f.failPuts--
		return f.putErr
	}
	cur, ok := f.docs[userID]
	if ok && cur.Version != h.Version {
		return domain.ErrVersionConflict
	}
	if !ok && h.Version != 0 {
		return domain.ErrVersionConflict
	}
	stored := domain.History{
		Bookings: append([]domain.HistoryEntry(nil), h.Bookings...),
		Version:  h.Version + 1,
	}
	f.docs[userID] = stored
	return nil
}

type fakeCatalog struct {
	title string
}

func (f *fakeCatalog) Title(context.Context, string) string { return f.title }
