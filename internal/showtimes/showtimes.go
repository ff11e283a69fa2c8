// Package showtimes produces the (date, time) pair handed to the seat
// selection flow.
package showtimes

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/domain"
)

// DefaultWindowDays is how many candidate dates are offered, today included.
const DefaultWindowDays = 6

var slots = []string{"7:00 AM", "10:00 AM", "2:00 PM", "6:00 PM", "10:00 PM"}

var ErrIncomplete = errors.New("date and time must both be chosen")

// Window returns n consecutive dates starting at now's calendar day, as
// ISO-8601 date strings.
func Window(now time.Time, n int) []string {
	if n <= 0 {
		n = DefaultWindowDays
	}
	dates := make([]string, n)
	for i := 0; i < n; i++ {
		dates[i] = now.AddDate(0, 0, i).Format("2006-01-02")
	}
	return dates
}

// Slots returns the fixed time-slot labels. The labels are part of the wire
// contract: they are stored verbatim in booking records.
func Slots() []string {
	out := make([]string, len(slots))
	copy(out, slots)
	return out
}

// Picker enforces toggle-group semantics over one date and one time slot:
// picking a new value replaces the previous one, re-picking the current value
// clears it.
type Picker struct {
	movieID string
	date    string
	time    string
}

func NewPicker(movieID string) *Picker {
	return &Picker{movieID: movieID}
}

func (p *Picker) SelectDate(date string) {
	if p.date == date {
		p.date = ""
		return
	}
	p.date = date
}

func (p *Picker) SelectTime(slot string) {
	if p.time == slot {
		p.time = ""
		return
	}
	p.time = slot
}

func (p *Picker) Date() string { return p.date }
func (p *Picker) Time() string { return p.time }

// Complete reports whether both a date and a time are chosen.
func (p *Picker) Complete() bool {
	return p.date != "" && p.time != ""
}

// Continue hands over the chosen show. It fails unless the picker is
// complete; this is the only contract between the picker and the seat
// selection flow.
func (p *Picker) Continue() (domain.Show, error) {
	if !p.Complete() {
		return domain.Show{}, ErrIncomplete
	}
	return domain.Show{MovieID: p.movieID, Date: p.date, Time: p.time}, nil
}
