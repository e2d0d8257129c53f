package axial

import (
	"testing"
)

func TestNeighborsAreDistinctAndSymmetric(t *testing.T) {
	points := []Axial{New(0, 0), New(2, 2), New(-4, 3), New(7, -11)}

	for _, a := range points {
		neighbors := a.Neighbors()
		seen := make(map[Axial]bool, len(neighbors))
		for _, n := range neighbors {
			if n == a {
				t.Fatalf("%s listed as its own neighbor", a)
			}
			if seen[n] {
				t.Fatalf("duplicate neighbor %s of %s", n, a)
			}
			seen[n] = true

			back := false
			for _, nn := range n.Neighbors() {
				if nn == a {
					back = true
					break
				}
			}
			if !back {
				t.Fatalf("%s is a neighbor of %s but not vice versa", n, a)
			}
		}
		if len(seen) != 6 {
			t.Fatalf("expected 6 neighbors of %s, got %d", a, len(seen))
		}
	}
}

func TestNeighborsDeterministicOrder(t *testing.T) {
	a := New(3, -1)
	first := a.Neighbors()
	second := a.Neighbors()
	if first != second {
		t.Fatalf("neighbor order changed between calls: %v vs %v", first, second)
	}
	if first[0] != New(4, -1) {
		t.Fatalf("expected first neighbor (4,-1), got %s", first[0])
	}
}

func TestCompareIsLexicographic(t *testing.T) {
	tests := []struct {
		a, b Axial
		want int
	}{
		{New(0, 0), New(0, 0), 0},
		{New(-1, 5), New(0, -5), -1},
		{New(1, -5), New(0, 5), 1},
		{New(2, 1), New(2, 3), -1},
		{New(2, 3), New(2, 1), 1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Fatalf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if tt.a.Less(tt.b) != (tt.want < 0) {
			t.Fatalf("Less(%s, %s) disagrees with Compare", tt.a, tt.b)
		}
	}
}

func TestIsHexCenter(t *testing.T) {
	centers := []Axial{New(0, 0), New(2, 2), New(4, -2), New(-4, 2), New(-2, -2), New(3, 0)}
	for _, c := range centers {
		if !IsHexCenter(c) {
			t.Fatalf("expected %s to be a hex center", c)
		}
		for _, n := range c.Neighbors() {
			if IsHexCenter(n) {
				t.Fatalf("corner %s of %s reported as a hex center", n, c)
			}
		}
	}
}

func TestRenderSpaceRoundTrip(t *testing.T) {
	if p := ToRenderSpace(New(0, 0)); p.X != 0 || p.Y != 0 {
		t.Fatalf("expected origin to map to (0,0), got %+v", p)
	}

	for q := -8; q <= 8; q++ {
		for r := -8; r <= 8; r++ {
			a := New(q, r)
			if got := FromRenderSpace(ToRenderSpace(a)); got != a {
				t.Fatalf("round trip of %s produced %s", a, got)
			}
		}
	}
}

func TestRenderSpaceNeighborsAreUnitDistance(t *testing.T) {
	origin := ToRenderSpace(New(1, 1))
	for _, n := range New(1, 1).Neighbors() {
		p := ToRenderSpace(n)
		dx, dy := p.X-origin.X, p.Y-origin.Y
		d2 := dx*dx + dy*dy
		if d2 < Scale*Scale-1e-6 || d2 > Scale*Scale+1e-6 {
			t.Fatalf("neighbor %s is %.3f away squared, want %.3f", n, d2, Scale*Scale)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Axial
		err  bool
	}{
		{"2,2", New(2, 2), false},
		{"(-3, 4)", New(-3, 4), false},
		{" 0,-1 ", New(0, -1), false},
		{"1", Axial{}, true},
		{"a,b", Axial{}, true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.err {
			if err == nil {
				t.Fatalf("expected error parsing %q", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error parsing %q: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
