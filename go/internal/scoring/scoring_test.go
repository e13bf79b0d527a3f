package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_Scenarios(t *testing.T) {
	tests := []struct {
		name                 string
		ph, pa, ah, aa, want int
	}{
		{name: "exact score", ph: 2, pa: 1, ah: 2, aa: 1, want: 5},
		{name: "home win one goal margin both sides", ph: 2, pa: 1, ah: 3, aa: 2, want: 4},
		{name: "home win differential from higher score", ph: 2, pa: 1, ah: 1, aa: 0, want: 4},
		{name: "both draws different score", ph: 1, pa: 1, ah: 2, aa: 2, want: 3},
		{name: "home win predicted actual goalless draw", ph: 2, pa: 0, ah: 0, aa: 0, want: 0},
		{name: "away win same differential", ph: 0, pa: 1, ah: 1, aa: 2, want: 4},
		{name: "winner only", ph: 1, pa: 0, ah: 3, aa: 1, want: 3},
		{name: "away winner only", ph: 0, pa: 3, ah: 1, aa: 2, want: 3},
		{name: "wrong winner", ph: 0, pa: 2, ah: 1, aa: 0, want: 0},
		{name: "draw predicted winner happened", ph: 1, pa: 1, ah: 2, aa: 0, want: 0},
		{name: "exact draw", ph: 2, pa: 2, ah: 2, aa: 2, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.ph, tt.pa, tt.ah, tt.aa))
		})
	}
}

func TestScore_RangeAndSymmetry(t *testing.T) {
	allowed := map[int]bool{0: true, 3: true, 4: true, 5: true}

	for ph := 0; ph <= 6; ph++ {
		for pa := 0; pa <= 6; pa++ {
			for ah := 0; ah <= 6; ah++ {
				for aa := 0; aa <= 6; aa++ {
					got := Score(ph, pa, ah, aa)
					if !allowed[got] {
						t.Fatalf("Score(%d,%d,%d,%d) = %d, outside {0,3,4,5}", ph, pa, ah, aa, got)
					}
					if mirrored := Score(pa, ph, aa, ah); mirrored != got {
						t.Fatalf("Score(%d,%d,%d,%d) = %d but mirrored = %d", ph, pa, ah, aa, got, mirrored)
					}
					if (got == 5) != (ph == ah && pa == aa) {
						t.Fatalf("Score(%d,%d,%d,%d) = %d, 5 must mean exact", ph, pa, ah, aa, got)
					}
				}
			}
		}
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, CategoryExact, Classify(5))
	assert.Equal(t, CategoryDifferential, Classify(4))
	assert.Equal(t, CategoryWinner, Classify(3))
	assert.Equal(t, CategoryMiss, Classify(0))
	assert.Equal(t, CategoryMiss, Classify(-1))
}
