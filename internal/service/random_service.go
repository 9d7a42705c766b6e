package service

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrEmptyRange is returned when start >= end, leaving nothing to draw from.
var ErrEmptyRange = errors.New("empty range")

// RandomService draws integers from half-open ranges.
type RandomService interface {
	RandomInRange(start, end uint64) (uint64, error)
}

type randomService struct {
	uint64n func(n uint64) uint64
}

// NewRandomService returns a RandomService using the process-wide generator.
func NewRandomService() RandomService {
	return &randomService{uint64n: rand.Uint64N}
}

// RandomInRange returns a uniformly distributed value in [start, end).
func (s *randomService) RandomInRange(start, end uint64) (uint64, error) {
	if start >= end {
		return 0, fmt.Errorf("cannot sample %d..%d: %w", start, end, ErrEmptyRange)
	}
	return start + s.uint64n(end-start), nil
}
