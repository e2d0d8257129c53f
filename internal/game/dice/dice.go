// Package dice rolls the two six-sided dice and picks random cards.
//
// A Roller is deterministic with respect to its seed: two rollers built
// from the same seed produce the same sequence of sums and picks.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
)

// Sides is the number of faces on each die.
const Sides = 6

// Source yields uniform integers in [0, n).
type Source interface {
	Intn(n int) int
}

// Roller rolls 2d6 from a seeded source. It is safe for concurrent use.
type Roller struct {
	mu   sync.Mutex
	seed int64
	rng  *rand.Rand
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewSource seeds a roller. A zero seed draws a fresh one from crypto/rand.
func NewSource(seed int64) (*Roller, error) {
	if seed == 0 {
		var err error
		if seed, err = NewSeed(); err != nil {
			return nil, err
		}
	}
	return &Roller{seed: seed, rng: rand.New(rand.NewSource(seed))}, nil
}

// Seed returns the seed the roller started from.
func (r *Roller) Seed() int64 {
	return r.seed
}

// Intn returns a uniform integer in [0, n).
func (r *Roller) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// Roll throws two dice and returns both faces.
func (r *Roller) Roll() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(Sides) + 1, r.rng.Intn(Sides) + 1
}

// Sum throws two dice and returns their total.
func (r *Roller) Sum() int {
	a, b := r.Roll()
	return a + b
}

// Roll2d6 throws two dice drawn from src and returns their total.
func Roll2d6(src Source) int {
	return src.Intn(Sides) + 1 + src.Intn(Sides) + 1
}

// Fixed replays a scripted sequence of values, cycling when exhausted.
// Values are returned modulo n so a script never yields out of range.
type Fixed struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewFixed returns a Source that yields values in order.
func NewFixed(values ...int) *Fixed {
	return &Fixed{values: values}
}

func (f *Fixed) Intn(n int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.values) == 0 || n <= 0 {
		return 0
	}
	v := f.values[f.next%len(f.values)]
	f.next++
	return ((v % n) + n) % n
}
