// file: internal/levenshtein/distance_test.go
// version: 1.1.0
// guid: 7a8b9c0d-1e2f-3a4b-5c6d-7e8f9a0b1c2d

package levenshtein

import (
	"errors"
	"math/rand"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"kitten", "mitten", 1},
		{"saturday", "sunday", 3},
		{"abc", "abc", 0},
		{"ABC", "abc", 0}, // case insensitive
		{"flaw", "lawn", 2},
		{"gumbo", "gambol", 2},
	}
	for _, tt := range tests {
		got, err := Distance(tt.a, tt.b)
		if err != nil {
			t.Fatalf("Distance(%q, %q) error: %v", tt.a, tt.b, err)
		}
		if got != tt.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDistanceTwoRow(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"sitting", "kitten", 3},
		{"ABC", "abc", 0},
	}
	for _, tt := range tests {
		got, err := DistanceTwoRow(tt.a, tt.b)
		if err != nil {
			t.Fatalf("DistanceTwoRow(%q, %q) error: %v", tt.a, tt.b, err)
		}
		if got != tt.want {
			t.Errorf("DistanceTwoRow(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDistanceSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"", "hello"},
		{"abcdef", "fedcba"},
		{"The Hobbit", "The Rabbit"},
	}
	for _, p := range pairs {
		ab, err := Distance(p[0], p[1])
		if err != nil {
			t.Fatal(err)
		}
		ba, err := Distance(p[1], p[0])
		if err != nil {
			t.Fatal(err)
		}
		if ab != ba {
			t.Errorf("Distance(%q, %q) = %d but reversed = %d", p[0], p[1], ab, ba)
		}
	}
}

func TestDistanceBounds(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"a", "aaaa"},
		{"dune", "june"},
		{"", "xyz"},
	}
	for _, p := range pairs {
		d, err := Distance(p[0], p[1])
		if err != nil {
			t.Fatal(err)
		}
		lo := len(p[0]) - len(p[1])
		if lo < 0 {
			lo = -lo
		}
		hi := max(len(p[0]), len(p[1]))
		if d < lo || d > hi {
			t.Errorf("Distance(%q, %q) = %d, outside [%d, %d]", p[0], p[1], d, lo, hi)
		}
	}
}

func TestCheckLengths(t *testing.T) {
	if err := CheckLengths(MaxInputLen, MaxInputLen); err != nil {
		t.Errorf("lengths at the bound should pass, got %v", err)
	}
	err := CheckLengths(MaxInputLen+1, 0)
	if !errors.Is(err, ErrInputTooLarge) {
		t.Errorf("first operand over bound: got %v, want ErrInputTooLarge", err)
	}
	err = CheckLengths(0, MaxInputLen+1)
	if !errors.Is(err, ErrInputTooLarge) {
		t.Errorf("second operand over bound: got %v, want ErrInputTooLarge", err)
	}
}

// randomString produces a string of length up to 24 over a small
// alphabet so random pairs still collide often.
func randomString(r *rand.Rand) string {
	const alphabet = "abcdeABCDE "
	n := r.Intn(25)
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(b)
}

func TestStrategiesAgree(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 1500; i++ {
		a := randomString(r)
		b := randomString(r)
		full, err := Distance(a, b)
		if err != nil {
			t.Fatal(err)
		}
		rolling, err := DistanceTwoRow(a, b)
		if err != nil {
			t.Fatal(err)
		}
		if full != rolling {
			t.Fatalf("pair %d: Distance(%q, %q) = %d but DistanceTwoRow = %d",
				i, a, b, full, rolling)
		}
	}
}
