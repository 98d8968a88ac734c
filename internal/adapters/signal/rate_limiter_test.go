package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRoomRateLimiterBlocksOverLimit(t *testing.T) {
	rl := NewRoomRateLimiter(2, time.Minute)

	require.True(t, rl.Allow("a"))
	require.True(t, rl.Allow("a"))
	require.False(t, rl.Allow("a"))

	// Each connection has its own window.
	require.True(t, rl.Allow("b"))
}

func TestRoomRateLimiterWindowExpiry(t *testing.T) {
	rl := NewRoomRateLimiter(1, 10*time.Millisecond)

	require.True(t, rl.Allow("a"))
	require.False(t, rl.Allow("a"))

	time.Sleep(20 * time.Millisecond)
	require.True(t, rl.Allow("a"))
}

func TestRoomRateLimiterForget(t *testing.T) {
	rl := NewRoomRateLimiter(1, time.Minute)

	require.True(t, rl.Allow("a"))
	require.False(t, rl.Allow("a"))

	rl.Forget("a")
	require.True(t, rl.Allow("a"))
}
