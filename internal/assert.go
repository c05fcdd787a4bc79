package internal

import (
	"context"

	"github.com/facebookincubator/go-belt/tool/logger"
)

// Assert panics (through the logger, so the belt gets flushed) when an
// internal invariant is broken.
func Assert(
	ctx context.Context,
	mustBeTrue bool,
	description string,
) {
	if mustBeTrue {
		return
	}

	logger.Panic(ctx, "assertion failed: "+description)
}
