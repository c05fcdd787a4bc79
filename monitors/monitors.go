// Package monitors enumerates displays of the virtual display space.
package monitors

import (
	"context"
	"fmt"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/kbinani/screenshot"
	"github.com/xaionaro-go/screenrec"
)

type Directory struct{}

var _ screenrec.MonitorDirectory = (*Directory)(nil)

func New() *Directory {
	return &Directory{}
}

// DefaultMonitor is the synthetic descriptor returned when the platform
// reports no displays (e.g. a headless session); the list is guaranteed to
// never be empty.
var DefaultMonitor = screenrec.Monitor{
	Name:   "Default (Full Screen)",
	Width:  1920,
	Height: 1080,
}

func (d *Directory) ListMonitors(
	ctx context.Context,
) []screenrec.Monitor {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		logger.Debugf(ctx, "no active displays reported, falling back to the default monitor descriptor")
		return []screenrec.Monitor{DefaultMonitor}
	}

	monitors := make([]screenrec.Monitor, 0, n)
	for i := 0; i < n; i++ {
		bounds := screenshot.GetDisplayBounds(i)
		monitors = append(monitors, screenrec.Monitor{
			Name:   fmt.Sprintf("Display %d (%dx%d)", i, bounds.Dx(), bounds.Dy()),
			Width:  uint(bounds.Dx()),
			Height: uint(bounds.Dy()),
			X:      bounds.Min.X,
			Y:      bounds.Min.Y,
		})
	}
	return monitors
}
