package inventory

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSeatSum(t *testing.T) {
	tests := []struct {
		name  string
		total int
		seats []int
		ok    bool
	}{
		{"exact", 10, []int{6, 4}, true},
		{"short", 10, []int{6, 3}, false},
		{"over", 10, []int{6, 5}, false},
		{"no tiers zero total", 0, nil, true},
		{"no tiers", 10, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSeatSum(tt.total, tt.seats)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrSeatSumMismatch)
			}
		})
	}
}

func TestAllocateSumsToTotal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for total := 1; total <= 50; total++ {
		for tiers := 1; tiers <= 6; tiers++ {
			bins, err := Allocate(total, tiers, rng)
			require.NoError(t, err)
			require.Len(t, bins, tiers)
			sum := 0
			for _, b := range bins {
				assert.GreaterOrEqual(t, b, 0)
				sum += b
			}
			assert.Equal(t, total, sum)
		}
	}
}

func TestAllocateTwoTiers(t *testing.T) {
	bins, err := Allocate(10, 2, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Len(t, bins, 2)
	assert.Equal(t, 10, bins[0]+bins[1])
	assert.NoError(t, CheckSeatSum(10, bins))
}

func TestAllocateIsDeterministicForSeed(t *testing.T) {
	a, err := Allocate(100, 3, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, err := Allocate(100, 3, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestAllocateRefuses(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := Allocate(0, 2, rng)
	assert.ErrorIs(t, err, ErrNothingToAllocate)
	_, err = Allocate(10, 0, rng)
	assert.ErrorIs(t, err, ErrNothingToAllocate)
	_, err = Allocate(-3, 2, rng)
	assert.ErrorIs(t, err, ErrNothingToAllocate)
}

func TestParseTotal(t *testing.T) {
	n, err := ParseTotal(" 120 ")
	require.NoError(t, err)
	assert.Equal(t, 120, n)

	for _, in := range []string{"", "abc", "0", "-5", "1.5"} {
		_, err := ParseTotal(in)
		assert.ErrorIs(t, err, ErrNothingToAllocate, in)
	}

	n, err = ParseTotal("1000000")
	require.NoError(t, err)
	assert.Equal(t, MaxSeats, n)
	for _, in := range []string{"1000001", "999999999"} {
		_, err := ParseTotal(in)
		assert.ErrorIs(t, err, ErrTooManySeats, in)
	}
}

func TestAllocateRefusesOversizedTotal(t *testing.T) {
	_, err := Allocate(MaxSeats+1, 2, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrTooManySeats)
}
