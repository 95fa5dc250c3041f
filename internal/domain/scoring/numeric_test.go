package scoring

import (
	"math"
	"testing"
)

func TestParseDecimal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want float64
	}{
		{"4.5", 4.5},
		{" 12.0 ", 12.0},
		{"0", 0},
		{"-0.3", -0.3},
		{"", 0},
		{"n/a", 0},
		{"12,5", 0},
	}

	for _, tc := range cases {
		if got := ParseDecimal(tc.in); got != tc.want {
			t.Fatalf("ParseDecimal(%q): got=%v want=%v", tc.in, got, tc.want)
		}
	}
}

func TestPer90(t *testing.T) {
	t.Parallel()

	if got := Per90(5, 0); got != 0 {
		t.Fatalf("zero minutes should yield zero, got %v", got)
	}
	if got := Per90(4, 900); got != 0.4 {
		t.Fatalf("Per90(4, 900): got=%v want=0.4", got)
	}
}

func TestPercentile_EmptyPopulation(t *testing.T) {
	t.Parallel()

	for _, v := range []float64{-3, 0, 0.7, 99} {
		if got := Percentile(v, nil); got != 0.5 {
			t.Fatalf("Percentile(%v, empty): got=%v want=0.5", v, got)
		}
	}
}

func TestPercentile_RankWithTies(t *testing.T) {
	t.Parallel()

	population := []float64{1, 2, 2, 3}

	if got := Percentile(3, population); math.Abs(got-0.875) > 1e-9 {
		t.Fatalf("top value: got=%v want=0.875", got)
	}
	if got := Percentile(2, population); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("tied value: got=%v want=0.5", got)
	}
	if got := Percentile(1, population); math.Abs(got-0.125) > 1e-9 {
		t.Fatalf("bottom value: got=%v want=0.125", got)
	}
}
