package hashutil

import "testing"

func TestSumDeterminism(t *testing.T) {
	inputs := []string{
		"",
		"a",
		"Priya Sharma",
		"Marcus Johnson" + "review",
		"Wei Zhangaccent",
		"some very long string with punctuation, digits 0123456789 and unicode: résumé",
	}

	for _, in := range inputs {
		first := Sum(in)
		for i := 0; i < 100; i++ {
			if got := Sum(in); got != first {
				t.Fatalf("Sum(%q) not stable: first=%d got=%d", in, first, got)
			}
		}
	}
}

func TestSumNonNegative(t *testing.T) {
	inputs := []string{"", "a", "zz", "candidate name", "\x00\xff\xfe", "Fatima Al-Hassanappearance"}
	for _, in := range inputs {
		if got := Sum(in); got < 0 {
			t.Errorf("Sum(%q) = %d, want non-negative", in, got)
		}
	}
}

func TestSumKnownValues(t *testing.T) {
	// Pinned values guard against accidental algorithm changes, which would
	// silently reshuffle every simulated outcome.
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a", 97},
		{"ab", 3105},
		{"abc", 96354},
	}
	for _, tt := range tests {
		if got := Sum(tt.in); got != tt.want {
			t.Errorf("Sum(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestModRange(t *testing.T) {
	inputs := []string{"x", "Sarah Chen", "James Wilsonbackground", "Priya Sharmagender"}
	for _, in := range inputs {
		for _, m := range []int{2, 3, 4, 5, 6, 7} {
			got := Mod(in, m)
			if got < 0 || got >= m {
				t.Errorf("Mod(%q, %d) = %d, out of range", in, m, got)
			}
			if got != Sum(in)%m {
				t.Errorf("Mod(%q, %d) inconsistent with Sum", in, m)
			}
		}
	}
}
