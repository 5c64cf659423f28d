package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// The limiter must be safe to leave out of the wiring entirely: a nil
// limiter or a limiter without a redis client always allows.
func TestLimiterNilSafety(t *testing.T) {
	ctx := context.Background()

	var nilLimiter *LoginLimiter
	assert.True(t, nilLimiter.Allow(ctx, "alice"))
	nilLimiter.RecordFailure(ctx, "alice")
	nilLimiter.Reset(ctx, "alice")

	noClient := NewLoginLimiter(nil, 10, 15*time.Minute, zerolog.Nop())
	assert.True(t, noClient.Allow(ctx, "alice"))
	noClient.RecordFailure(ctx, "alice")
	noClient.Reset(ctx, "alice")
}

func TestLimiterDisabledByZeroMax(t *testing.T) {
	limiter := NewLoginLimiter(nil, 0, 15*time.Minute, zerolog.Nop())
	assert.True(t, limiter.Allow(context.Background(), "alice"))
}
