package domain

// ShowBooking is the authoritative seat-occupancy record for one user+show
// pair. Seats is a union of every seat the user has ever confirmed for the
// show; the booking flow only ever grows it. Version is the optimistic
// concurrency token checked by the document store on overwrite.
type ShowBooking struct {
	Seats   []string
	Date    string
	Time    string
	ShowID  string
	Title   string
	Version int64
}

// History holds a user's ordered booking entries, one document per user.
type History struct {
	Bookings []HistoryEntry
	Version  int64
}

// HistoryEntry records a single confirmed booking. TotalPrice is fixed at
// confirmation time and never recomputed.
type HistoryEntry struct {
	ShowID     string
	Title      string
	Date       string
	Time       string
	Seats      []string
	TotalPrice int64
}

// Show identifies a bookable screening: movie plus a flat date+time pair.
type Show struct {
	MovieID string
	Date    string
	Time    string
}

// MergeSeats unions extra into the booking's seat set, preserving the order
// of the existing seats and appending new ones in the order given.
func (b *ShowBooking) MergeSeats(extra []string) {
	seen := make(map[string]struct{}, len(b.Seats))
	for _, s := range b.Seats {
		seen[s] = struct{}{}
	}
	for _, s := range extra {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		b.Seats = append(b.Seats, s)
	}
}

// RemoveEntries drops every history entry for the given show. It returns how
// many entries were removed. The show's occupancy record is deliberately left
// untouched; freeing those seats is a separate operation.
func (h *History) RemoveEntries(showID string) int {
	kept := h.Bookings[:0]
	removed := 0
	for _, e := range h.Bookings {
		if e.ShowID == showID {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	h.Bookings = kept
	return removed
}

func NewHistoryEntry(show Show, title string, seats []string, unitPrice int64) HistoryEntry {
	return HistoryEntry{
		ShowID:     show.MovieID,
		Title:      title,
		Date:       show.Date,
		Time:       show.Time,
		Seats:      seats,
		TotalPrice: int64(len(seats)) * unitPrice,
	}
}
