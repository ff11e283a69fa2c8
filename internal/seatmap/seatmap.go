// Package seatmap generates the addressable seat grid for a hall and derives
// per-seat status from the booked and selected sets. It holds no state of its
// own.
package seatmap

import "fmt"

type Category string

const (
	CategorySilver  Category = "silver"
	CategoryGold    Category = "gold"
	CategoryPremium Category = "premium"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusSelected  Status = "selected"
	StatusBooked    Status = "booked"
)

// Default hall shape. Rows C and H are structural gaps: they exist as row
// indices (and keep their category slot) but produce no addressable seats.
const (
	DefaultRows      = 10
	DefaultCols      = 10
	DefaultUnitPrice = 200
)

var DefaultHiddenRows = []rune{'C', 'H'}

type Seat struct {
	ID       string
	Row      rune
	Col      int
	Category Category
}

type Row struct {
	Index    int
	Letter   rune
	Category Category
	Seats    []Seat
}

// CategoryOf maps a zero-based row index to its tier.
func CategoryOf(rowIndex int) Category {
	switch {
	case rowIndex <= 2:
		return CategorySilver
	case rowIndex <= 6:
		return CategoryGold
	default:
		return CategoryPremium
	}
}

// Generate builds the grid for a hall of rows×cols, omitting hidden row
// letters from the addressable id space entirely. Seat ids are
// "<RowLetter><1-based column>", e.g. "D7" — this exact format is persisted
// in booking records, so it must not change. Generation is deterministic.
func Generate(rows, cols int, hidden []rune) []Row {
	hiddenSet := make(map[rune]struct{}, len(hidden))
	for _, r := range hidden {
		hiddenSet[r] = struct{}{}
	}

	grid := make([]Row, 0, rows)
	for ri := 0; ri < rows; ri++ {
		letter := rune('A' + ri)
		if _, ok := hiddenSet[letter]; ok {
			continue
		}
		row := Row{
			Index:    ri,
			Letter:   letter,
			Category: CategoryOf(ri),
			Seats:    make([]Seat, 0, cols),
		}
		for ci := 0; ci < cols; ci++ {
			row.Seats = append(row.Seats, Seat{
				ID:       fmt.Sprintf("%c%d", letter, ci+1),
				Row:      letter,
				Col:      ci + 1,
				Category: row.Category,
			})
		}
		grid = append(grid, row)
	}
	return grid
}

// IDSet returns the addressable seat ids of a hall as a lookup set. Ids not
// in the set, hidden-row ids included, do not exist and must never reach a
// booking record.
func IDSet(rows, cols int, hidden []rune) map[string]struct{} {
	ids := make(map[string]struct{}, rows*cols)
	for _, row := range Generate(rows, cols, hidden) {
		for _, seat := range row.Seats {
			ids[seat.ID] = struct{}{}
		}
	}
	return ids
}

// StatusOf derives a seat's state. Booked wins over selected wins over
// available.
func StatusOf(id string, booked, selected map[string]struct{}) Status {
	if _, ok := booked[id]; ok {
		return StatusBooked
	}
	if _, ok := selected[id]; ok {
		return StatusSelected
	}
	return StatusAvailable
}

// Price is the flat total for n seats. Category is cosmetic and does not
// enter the price.
func Price(n int, unitPrice int64) int64 {
	return int64(n) * unitPrice
}
