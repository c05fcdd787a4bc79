// Package clock provides the clock used for session time bookkeeping.
// It is replaceable with a mock in tests.
package clock

import (
	"github.com/benbjohnson/clock"
)

type Clock = clock.Clock
type Timer = clock.Timer
type Mock = clock.Mock

var globalClock Clock = clock.New()

func Get() Clock {
	return globalClock
}

func Set(clk Clock) {
	globalClock = clk
}

func New() Clock {
	return clock.New()
}

func NewMock() *Mock {
	return clock.NewMock()
}
