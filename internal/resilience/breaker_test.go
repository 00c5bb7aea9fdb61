package resilience

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestBreaker(settings Settings) (*Breaker, *clock) {
	c := &clock{now: time.Unix(1700000000, 0)}
	settings.now = c.Now
	return New(settings), c
}

func run(b *Breaker, outcomes ...bool) {
	for _, ok := range outcomes {
		if b.Allow() == nil {
			b.Record(ok)
		}
	}
}

func TestBreakerStateTransitions(t *testing.T) {
	tests := []struct {
		name          string
		settings      Settings
		requests      []bool // true = success, false = failure
		expectedState State
	}{
		{
			name:          "stays closed on successes",
			settings:      Settings{Threshold: 2},
			requests:      []bool{true, true, true},
			expectedState: StateClosed,
		},
		{
			name:          "opens after consecutive failures",
			settings:      Settings{Threshold: 3},
			requests:      []bool{false, false, false},
			expectedState: StateOpen,
		},
		{
			name:          "success resets the failure count",
			settings:      Settings{Threshold: 3},
			requests:      []bool{false, false, true, false, false},
			expectedState: StateClosed,
		},
		{
			name:          "default threshold",
			requests:      []bool{false, false, false, false, false},
			expectedState: StateOpen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breaker, _ := newTestBreaker(tt.settings)
			run(breaker, tt.requests...)
			assert.Equal(t, tt.expectedState, breaker.State())
		})
	}
}

func TestBreakerRejectsWhileOpen(t *testing.T) {
	breaker, _ := newTestBreaker(Settings{Threshold: 1, Cooldown: time.Minute})
	run(breaker, false)

	assert.ErrorIs(t, breaker.Allow(), ErrCircuitOpen)
}

func TestBreakerHalfOpenRecovery(t *testing.T) {
	breaker, c := newTestBreaker(Settings{Threshold: 1, Cooldown: time.Minute})
	run(breaker, false)

	c.Advance(time.Minute)
	assert.Equal(t, StateHalfOpen, breaker.State())

	require.NoError(t, breaker.Allow())
	assert.ErrorIs(t, breaker.Allow(), ErrProbing)
	breaker.Record(true)

	assert.Equal(t, StateClosed, breaker.State())
	assert.NoError(t, breaker.Allow())
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	breaker, c := newTestBreaker(Settings{Threshold: 1, Cooldown: time.Minute})
	run(breaker, false)
	c.Advance(2 * time.Minute)

	require.NoError(t, breaker.Allow())
	breaker.Record(false)

	assert.Equal(t, StateOpen, breaker.State())
	c.Advance(59 * time.Second)
	assert.ErrorIs(t, breaker.Allow(), ErrCircuitOpen)
}

func TestBreakerStateChangeCallback(t *testing.T) {
	var transitions []string
	breaker, c := newTestBreaker(Settings{
		Threshold: 1,
		Cooldown:  time.Second,
		OnStateChange: func(from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	run(breaker, false)
	c.Advance(time.Second)
	run(breaker, true)

	assert.Equal(t, []string{"closed->open", "open->half-open", "half-open->closed"}, transitions)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unknown", State(42).String())
}
