package recorder

import (
	"github.com/xaionaro-go/screenrec/clock"
	"github.com/xaionaro-go/screenrec/process"
)

type Option interface {
	apply(*Recorder)
}

// OptionProcessController overrides how the encoder process is spawned and
// signaled; primarily for tests and for platforms needing a custom
// controller.
type OptionProcessController struct {
	Controller process.Controller
}

func (opt OptionProcessController) apply(r *Recorder) {
	r.ProcessController = opt.Controller
}

// OptionClock overrides the session clock.
type OptionClock struct {
	Clock clock.Clock
}

func (opt OptionClock) apply(r *Recorder) {
	r.Clock = opt.Clock
}
