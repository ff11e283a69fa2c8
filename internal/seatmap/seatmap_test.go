package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_UniqueIDsAndCount(t *testing.T) {
	cases := []struct {
		name   string
		rows   int
		cols   int
		hidden []rune
	}{
		{"default hall", 10, 10, []rune{'C', 'H'}},
		{"no hidden rows", 5, 8, nil},
		{"single row", 1, 4, nil},
		{"all but one hidden", 3, 2, []rune{'A', 'B'}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			grid := Generate(tc.rows, tc.cols, tc.hidden)

			seen := make(map[string]struct{})
			total := 0
			for _, row := range grid {
				for _, seat := range row.Seats {
					_, dup := seen[seat.ID]
					require.False(t, dup, "duplicate seat id %s", seat.ID)
					seen[seat.ID] = struct{}{}
					total++
				}
			}
			assert.Equal(t, (tc.rows-len(tc.hidden))*tc.cols, total)
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(10, 10, []rune{'C', 'H'})
	b := Generate(10, 10, []rune{'C', 'H'})
	assert.Equal(t, a, b)
}

func TestGenerate_HiddenRowsKeepIndices(t *testing.T) {
	grid := Generate(10, 10, []rune{'C', 'H'})

	letters := make([]rune, 0, len(grid))
	for _, row := range grid {
		letters = append(letters, row.Letter)
	}
	assert.Equal(t, []rune{'A', 'B', 'D', 'E', 'F', 'G', 'I', 'J'}, letters)

	// Row D keeps index 3, so it stays in the gold tier even though it is
	// the third visible row.
	for _, row := range grid {
		if row.Letter == 'D' {
			assert.Equal(t, 3, row.Index)
			assert.Equal(t, CategoryGold, row.Category)
		}
	}
}

func TestIDSet_MatchesGrid(t *testing.T) {
	ids := IDSet(10, 10, []rune{'C', 'H'})
	assert.Len(t, ids, 80)

	assert.Contains(t, ids, "A1")
	assert.Contains(t, ids, "J10")
	// hidden rows produce no addressable ids
	assert.NotContains(t, ids, "C5")
	assert.NotContains(t, ids, "H1")
	// out-of-grid ids do not exist
	assert.NotContains(t, ids, "Z99")
	assert.NotContains(t, ids, "A11")
}

func TestCategoryOf_Thresholds(t *testing.T) {
	assert.Equal(t, CategorySilver, CategoryOf(0))
	assert.Equal(t, CategorySilver, CategoryOf(2))
	assert.Equal(t, CategoryGold, CategoryOf(3))
	assert.Equal(t, CategoryGold, CategoryOf(6))
	assert.Equal(t, CategoryPremium, CategoryOf(7))
	assert.Equal(t, CategoryPremium, CategoryOf(42))
}

func TestStatusOf_Precedence(t *testing.T) {
	booked := map[string]struct{}{"B5": {}}
	selected := map[string]struct{}{"A1": {}, "B5": {}}

	assert.Equal(t, StatusBooked, StatusOf("B5", booked, selected))
	assert.Equal(t, StatusSelected, StatusOf("A1", booked, selected))
	assert.Equal(t, StatusAvailable, StatusOf("J10", booked, selected))
}

func TestPrice_Linear(t *testing.T) {
	assert.Equal(t, int64(0), Price(0, 200))
	assert.Equal(t, int64(400), Price(2, 200))
	// adding one seat always adds exactly the unit price
	for n := 0; n < 10; n++ {
		assert.Equal(t, int64(200), Price(n+1, 200)-Price(n, 200))
	}
}
