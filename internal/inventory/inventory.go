// Package inventory enforces the tier seat-sum invariant and pre-fills tier
// seat counts with a randomized allocation.
package inventory

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// MaxSeats bounds a randomized allocation, which draws once per seat.
const MaxSeats = 1_000_000

var (
	ErrSeatSumMismatch   = errors.New("The sum of seats in all tiers must equal the total seats for the event.")
	ErrNothingToAllocate = errors.New("Please enter total seats and add at least one tier.")
	ErrTooManySeats      = fmt.Errorf("Total seats must be at most %d.", MaxSeats)
)

// CheckSeatSum returns ErrSeatSumMismatch unless seats add up to total.
func CheckSeatSum(total int, seats []int) error {
	sum := 0
	for _, s := range seats {
		sum += s
	}
	if sum != total {
		return ErrSeatSumMismatch
	}
	return nil
}

// Allocate distributes total units over tiers bins, choosing a bin uniformly
// at random for each unit. The result is a multinomial draw, not an even
// split.
func Allocate(total, tiers int, rng *rand.Rand) ([]int, error) {
	if total <= 0 || tiers <= 0 {
		return nil, ErrNothingToAllocate
	}
	if total > MaxSeats {
		return nil, ErrTooManySeats
	}
	bins := make([]int, tiers)
	for i := 0; i < total; i++ {
		bins[rng.Intn(tiers)]++
	}
	return bins, nil
}

// ParseTotal reads a declared event total. Blank, non-numeric, and
// non-positive values are refused, as is anything above MaxSeats.
func ParseTotal(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, ErrNothingToAllocate
	}
	if n > MaxSeats {
		return 0, ErrTooManySeats
	}
	return n, nil
}
