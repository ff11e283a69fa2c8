package booking

import (
	"context"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/domain"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/observability"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/seatmap"
)

type State string

const (
	StateLoading    State = "loading"
	StateReady      State = "ready"
	StateSubmitting State = "submitting"
	StateConfirmed  State = "confirmed"
	StateFailed     State = "failed"
)

// Session is one pass through seat selection for a single show. It is driven
// by explicit calls (Load, Toggle, Confirm, Retry) and owns only transient
// selection state; the authoritative booked set lives in the repository.
// A session is not safe for concurrent use; each caller gets its own.
type Session struct {
	repo      *Repository
	catalog   Catalog
	identity  *domain.Identity
	show      domain.Show
	grid      map[string]struct{}
	unitPrice int64
	logger    observability.Logger

	state    State
	title    string
	booked   map[string]struct{}
	selected map[string]struct{}
	order    []string
}

// NewSession captures the caller's identity once, at construction. A nil
// identity is a valid anonymous session: browsing and toggling work, and
// Confirm reports domain.ErrUnauthenticated so the caller can redirect to
// login. grid is the set of addressable seat ids for the hall; ids outside
// it can never enter the selection.
func NewSession(repo *Repository, catalog Catalog, identity *domain.Identity, show domain.Show, grid map[string]struct{}, unitPrice int64, logger observability.Logger) *Session {
	return &Session{
		repo:      repo,
		catalog:   catalog,
		identity:  identity,
		show:      show,
		grid:      grid,
		unitPrice: unitPrice,
		logger:    logger,
		state:     StateLoading,
		booked:    make(map[string]struct{}),
		selected:  make(map[string]struct{}),
	}
}

// Load fetches the user's booked seats and the movie title concurrently.
// Both fetches fail open: a store error means an empty booked set, a catalog
// error means a blank title. Load always leaves the session Ready.
func (s *Session) Load(ctx context.Context) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if s.identity == nil {
			return nil
		}
		seats, err := s.repo.BookedSeats(gctx, s.identity.UserID, s.show)
		if err != nil {
			s.logger.WithError(err).Warn("booked seats fetch failed, treating as none")
			return nil
		}
		for _, seat := range seats {
			s.booked[seat] = struct{}{}
		}
		return nil
	})

	g.Go(func() error {
		s.title = s.catalog.Title(gctx, s.show.MovieID)
		return nil
	})

	g.Wait()
	s.state = StateReady
}

// Toggle flips a seat in or out of the selection. Ids outside the grid and
// booked seats never change the selection, and toggling is ignored outside
// Ready.
func (s *Session) Toggle(id string) {
	if s.state != StateReady {
		return
	}
	if _, ok := s.grid[id]; !ok {
		return
	}
	if _, ok := s.booked[id]; ok {
		return
	}
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		kept := s.order[:0]
		for _, sel := range s.order {
			if sel != id {
				kept = append(kept, sel)
			}
		}
		s.order = kept
		return
	}
	s.selected[id] = struct{}{}
	s.order = append(s.order, id)
}

// Select adds a seat to the selection and reports why it cannot be added,
// unlike the silent Toggle a grid UI drives. Selecting an already selected
// seat is a no-op, not a deselect.
func (s *Session) Select(id string) error {
	if s.state != StateReady {
		return domain.ErrNotReady
	}
	if _, ok := s.grid[id]; !ok {
		return errors.Wrapf(domain.ErrInvalidInput, "unknown seat %q", id)
	}
	if _, ok := s.booked[id]; ok {
		return errors.Wrapf(domain.ErrSeatBooked, "seat %q", id)
	}
	if _, ok := s.selected[id]; !ok {
		s.selected[id] = struct{}{}
		s.order = append(s.order, id)
	}
	return nil
}

// Confirm merges the selection into the remote records. Preconditions: the
// session is Ready, something is selected, and the caller is authenticated.
// On failure the session lands in Failed and Retry returns it to Ready.
func (s *Session) Confirm(ctx context.Context) (domain.HistoryEntry, error) {
	if s.state != StateReady {
		return domain.HistoryEntry{}, domain.ErrNotReady
	}
	if len(s.order) == 0 {
		return domain.HistoryEntry{}, domain.ErrEmptySelection
	}
	if s.identity == nil {
		return domain.HistoryEntry{}, domain.ErrUnauthenticated
	}

	s.state = StateSubmitting
	entry, err := s.repo.Confirm(ctx, s.identity.UserID, s.show, s.title, s.Selected(), s.unitPrice)
	if err != nil {
		s.state = StateFailed
		return domain.HistoryEntry{}, err
	}

	for id := range s.selected {
		s.booked[id] = struct{}{}
	}
	s.selected = make(map[string]struct{})
	s.order = nil
	s.state = StateConfirmed
	return entry, nil
}

// Retry returns a Failed session to Ready so the user can confirm again.
func (s *Session) Retry() {
	if s.state == StateFailed {
		s.state = StateReady
	}
}

func (s *Session) State() State { return s.state }
func (s *Session) Title() string { return s.title }

// Selected returns the selection in the order the seats were picked.
func (s *Session) Selected() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Session) Booked() []string {
	out := make([]string, 0, len(s.booked))
	for id := range s.booked {
		out = append(out, id)
	}
	return out
}

// Status derives the rendering state of a single seat.
func (s *Session) Status(id string) seatmap.Status {
	return seatmap.StatusOf(id, s.booked, s.selected)
}

// Price is the running total for the current selection.
func (s *Session) Price() int64 {
	return seatmap.Price(len(s.order), s.unitPrice)
}
