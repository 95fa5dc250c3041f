package scoring

import (
	"strconv"
	"strings"
)

// ParseDecimal parses the numeric strings the upstream API uses for expected
// stats and form. Malformed or empty input yields zero, never an error.
func ParseDecimal(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Per90 normalizes a season aggregate to a per-90-minutes rate.
func Per90(value float64, minutes int) float64 {
	if minutes <= 0 {
		return 0
	}
	return value / float64(minutes) * 90
}

// Percentile ranks v within population as a fraction in [0,1]: the share of
// values strictly below v plus half the ties. An empty population gives 0.5.
func Percentile(v float64, population []float64) float64 {
	if len(population) == 0 {
		return 0.5
	}

	below, ties := 0, 0
	for _, p := range population {
		switch {
		case p < v:
			below++
		case p == v:
			ties++
		}
	}

	return (float64(below) + float64(ties)/2) / float64(len(population))
}
