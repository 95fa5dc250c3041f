package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitClosed   CircuitState = "closed"
	CircuitOpen     CircuitState = "open"
	CircuitHalfOpen CircuitState = "half_open"
)

// CircuitBreaker guards an upstream dependency. After enough consecutive
// failures it opens, rejects calls until the cooldown elapses, then lets a
// limited number of probe requests through before closing again.
type CircuitBreaker struct {
	mu sync.Mutex

	maxFailures int
	cooldown    time.Duration
	maxProbes   int

	state         CircuitState
	failures      int
	openedAt      time.Time
	probesActive  int
	probesCleared int
	clock         func() time.Time
}

func NewCircuitBreaker(maxFailures int, cooldown time.Duration, maxProbes int) *CircuitBreaker {
	if maxFailures < 1 {
		maxFailures = 1
	}
	if cooldown <= 0 {
		cooldown = 15 * time.Second
	}
	if maxProbes < 1 {
		maxProbes = 1
	}

	return &CircuitBreaker{
		maxFailures: maxFailures,
		cooldown:    cooldown,
		maxProbes:   maxProbes,
		state:       CircuitClosed,
		clock:       time.Now,
	}
}

// Allow reports whether a call may proceed. Callers must follow up with
// RecordSuccess or RecordFailure when Allow returns nil.
func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitOpen {
		if b.clock().Sub(b.openedAt) < b.cooldown {
			return ErrCircuitOpen
		}
		b.enterHalfOpen()
	}

	if b.state == CircuitHalfOpen {
		if b.probesActive >= b.maxProbes {
			return ErrCircuitOpen
		}
		b.probesActive++
	}

	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitClosed:
		b.failures = 0
	case CircuitHalfOpen:
		if b.probesActive > 0 {
			b.probesActive--
		}
		b.probesCleared++
		if b.probesCleared >= b.maxProbes && b.probesActive == 0 {
			b.enterClosed()
		}
	}
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitClosed:
		b.failures++
		if b.failures >= b.maxFailures {
			b.enterOpen()
		}
	case CircuitHalfOpen:
		if b.probesActive > 0 {
			b.probesActive--
		}
		b.enterOpen()
	case CircuitOpen:
		b.openedAt = b.clock()
	}
}

func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitOpen && b.clock().Sub(b.openedAt) >= b.cooldown {
		return CircuitHalfOpen
	}

	return b.state
}

func (b *CircuitBreaker) enterClosed() {
	b.state = CircuitClosed
	b.failures = 0
	b.probesActive = 0
	b.probesCleared = 0
	b.openedAt = time.Time{}
}

func (b *CircuitBreaker) enterOpen() {
	b.state = CircuitOpen
	b.openedAt = b.clock()
	b.probesActive = 0
	b.probesCleared = 0
}

func (b *CircuitBreaker) enterHalfOpen() {
	b.state = CircuitHalfOpen
	b.probesActive = 0
	b.probesCleared = 0
}
