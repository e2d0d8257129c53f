// Package resource implements the counted resource ledger held by players and
// the bank, and the build cost table.
package resource

import (
	"errors"
	"fmt"
	"strings"
)

// Resource is a tile yield type.
type Resource int

const (
	None Resource = iota
	Ore
	Wheat
	Sheep
	Brick
	Wood
)

// Tradeable lists every resource a ledger counts, in canonical order.
var Tradeable = [...]Resource{Ore, Wheat, Sheep, Brick, Wood}

var resourceNames = map[Resource]string{
	None:  "none",
	Ore:   "ore",
	Wheat: "wheat",
	Sheep: "sheep",
	Brick: "brick",
	Wood:  "wood",
}

func (r Resource) String() string {
	if name, ok := resourceNames[r]; ok {
		return name
	}
	return fmt.Sprintf("resource_%d", int(r))
}

// IsTradeable reports whether r has a ledger entry.
func (r Resource) IsTradeable() bool {
	return r >= Ore && r <= Wood
}

// Parse resolves a resource name, case-insensitively. "desert" is an alias
// for None.
func Parse(name string) (Resource, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "desert" {
		return None, nil
	}
	for r, rn := range resourceNames {
		if rn == n {
			return r, nil
		}
	}
	return None, fmt.Errorf("unknown resource %q", name)
}

// ErrInsufficient is returned when a debit would leave a negative count.
var ErrInsufficient = errors.New("insufficient resources")

// Group is a ledger with exactly one signed count per tradeable resource.
// The zero value is the empty ledger.
type Group struct {
	counts [len(Tradeable)]int
}

// Empty returns a ledger with every count at zero.
func Empty() Group {
	return Group{}
}

// New returns a ledger holding the given counts.
func New(ore, wheat, sheep, brick, wood int) Group {
	return Group{counts: [len(Tradeable)]int{ore, wheat, sheep, brick, wood}}
}

// Of returns a ledger holding amount of kind and nothing else.
func Of(kind Resource, amount int) Group {
	g := Empty()
	g.Add(kind, amount)
	return g
}

func index(kind Resource) (int, bool) {
	if !kind.IsTradeable() {
		return 0, false
	}
	return int(kind - Ore), true
}

// Get returns the count for kind, zero for non-tradeable kinds.
func (g Group) Get(kind Resource) int {
	i, ok := index(kind)
	if !ok {
		return 0
	}
	return g.counts[i]
}

// Add adds amount to kind's existing entry. Kinds without an entry are
// ignored; the key set never grows.
func (g *Group) Add(kind Resource, amount int) {
	i, ok := index(kind)
	if !ok {
		return
	}
	g.counts[i] += amount
}

// Merge adds other into g entrywise.
func (g *Group) Merge(other Group) {
	for i := range g.counts {
		g.counts[i] += other.counts[i]
	}
}

// Plus returns the entrywise sum of g and other.
func (g Group) Plus(other Group) Group {
	g.Merge(other)
	return g
}

// Sub returns g minus other, or ErrInsufficient if any entry would go
// negative. g itself is never modified.
func (g Group) Sub(other Group) (Group, error) {
	result := g
	for i := range result.counts {
		result.counts[i] -= other.counts[i]
		if result.counts[i] < 0 {
			return g, fmt.Errorf("%w: need %d %s, have %d",
				ErrInsufficient, other.counts[i], Tradeable[i], g.counts[i])
		}
	}
	return result, nil
}

// Covers reports whether g holds at least other in every entry.
func (g Group) Covers(other Group) bool {
	_, err := g.Sub(other)
	return err == nil
}

// Total returns the sum of every entry.
func (g Group) Total() int {
	total := 0
	for _, c := range g.counts {
		total += c
	}
	return total
}

// IsZero reports whether every entry is zero.
func (g Group) IsZero() bool {
	return g == Group{}
}

// IsNonNegative reports whether no entry is below zero.
func (g Group) IsNonNegative() bool {
	for _, c := range g.counts {
		if c < 0 {
			return false
		}
	}
	return true
}

// Each calls fn for every entry in canonical order.
func (g Group) Each(fn func(kind Resource, count int)) {
	for i, kind := range Tradeable {
		fn(kind, g.counts[i])
	}
}

// Nth returns the resource of the n-th card when the hand is laid out in
// canonical order, zero-based. Used to pick a random card from a hand.
func (g Group) Nth(n int) (Resource, bool) {
	if n < 0 {
		return None, false
	}
	for i, c := range g.counts {
		if c <= 0 {
			continue
		}
		if n < c {
			return Tradeable[i], true
		}
		n -= c
	}
	return None, false
}

// Map returns the non-zero entries keyed by resource name.
func (g Group) Map() map[string]int {
	out := make(map[string]int, len(g.counts))
	g.Each(func(kind Resource, count int) {
		if count != 0 {
			out[kind.String()] = count
		}
	})
	return out
}

func (g Group) String() string {
	parts := make([]string, 0, len(g.counts))
	g.Each(func(kind Resource, count int) {
		if count != 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", kind, count))
		}
	})
	return "{" + strings.Join(parts, " ") + "}"
}

// FromMap builds a ledger from resource names to counts.
func FromMap(m map[string]int) (Group, error) {
	g := Empty()
	for name, count := range m {
		kind, err := Parse(name)
		if err != nil {
			return Group{}, err
		}
		if !kind.IsTradeable() {
			return Group{}, fmt.Errorf("resource %q has no ledger entry", name)
		}
		g.Add(kind, count)
	}
	return g, nil
}
