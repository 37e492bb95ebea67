package cooldown

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestTracker(interval time.Duration) (*Tracker, *time.Time) {
	t := New(nil, interval)
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	t.now = func() time.Time { return now }
	return t, &now
}

func TestSecondInvocationInsideWindowIsRejected(t *testing.T) {
	tr, now := newTestTracker(10 * time.Second)
	ctx := context.Background()

	require.Zero(t, tr.Check(ctx, "m1", "verify"))

	*now = now.Add(3 * time.Second)
	wait := tr.Check(ctx, "m1", "verify")
	require.Equal(t, 7*time.Second, wait)

	// A rejected attempt does not restart the window.
	*now = now.Add(7 * time.Second)
	require.Zero(t, tr.Check(ctx, "m1", "verify"))
}

func TestWindowsAreScopedPerMemberAndCommand(t *testing.T) {
	tr, _ := newTestTracker(10 * time.Second)
	ctx := context.Background()

	require.Zero(t, tr.Check(ctx, "m1", "verify"))
	require.Zero(t, tr.Check(ctx, "m2", "verify"), "other members are unaffected")
	require.Zero(t, tr.Check(ctx, "m1", "status"), "other commands are unaffected")
	require.NotZero(t, tr.Check(ctx, "m1", "verify"))
}

func TestZeroIntervalDisablesCooldown(t *testing.T) {
	tr, _ := newTestTracker(0)
	ctx := context.Background()
	require.Zero(t, tr.Check(ctx, "m1", "verify"))
	require.Zero(t, tr.Check(ctx, "m1", "verify"))
}
