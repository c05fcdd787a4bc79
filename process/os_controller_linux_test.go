//go:build linux
// +build linux

package process

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSpawnMissingExecutable(t *testing.T) {
	ctx := context.Background()
	_, err := NewController().Spawn(ctx, "/definitely/not/an/executable")
	require.Error(t, err)
}

func TestGracefulStop(t *testing.T) {
	ctx := context.Background()
	h, err := NewController().Spawn(ctx, "sleep", "60")
	require.NoError(t, err)

	require.NoError(t, h.RequestStop(ctx))
	require.True(t, h.WaitExited(ctx, 5*time.Second))
}

func TestSuspendResumeKill(t *testing.T) {
	ctx := context.Background()
	h, err := NewController().Spawn(ctx, "sleep", "60")
	require.NoError(t, err)

	require.NoError(t, h.Suspend(ctx))
	require.False(t, h.WaitExited(ctx, 100*time.Millisecond))
	require.NoError(t, h.Resume(ctx))

	require.NoError(t, h.Kill(ctx))
	require.True(t, h.WaitExited(ctx, time.Second))
}

func TestWaitExitedHonorsContext(t *testing.T) {
	ctx := context.Background()
	h, err := NewController().Spawn(ctx, "sleep", "60")
	require.NoError(t, err)
	defer func() { require.NoError(t, h.Kill(ctx)) }()

	cancelledCtx, cancelFn := context.WithCancel(ctx)
	cancelFn()
	require.False(t, h.WaitExited(cancelledCtx, time.Minute))
}
