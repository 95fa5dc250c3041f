package resilience

import "time"

type BreakerSettings struct {
	Enabled     bool
	MaxFailures int
	Cooldown    time.Duration
	MaxProbes   int
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Enabled:     true,
		MaxFailures: 5,
		Cooldown:    15 * time.Second,
		MaxProbes:   2,
	}
}

// NormalizeBreakerSettings replaces out-of-range values with defaults so a
// partially configured breaker still behaves sanely.
func NormalizeBreakerSettings(s BreakerSettings) BreakerSettings {
	def := DefaultBreakerSettings()
	if s.MaxFailures < 1 {
		s.MaxFailures = def.MaxFailures
	}
	if s.Cooldown <= 0 {
		s.Cooldown = def.Cooldown
	}
	if s.MaxProbes < 1 {
		s.MaxProbes = def.MaxProbes
	}
	return s
}
