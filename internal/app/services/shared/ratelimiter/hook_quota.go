package ratelimiter

import (
	"context"
	"fmt"
	"math"
	"medirdv-service/internal/app/contracts"
	"medirdv-service/internal/pkg/constvars"
	"strings"
	"time"

	"go.uber.org/zap"
)

const unknownIssuer = "unknown"

// HookQuota budgets working-hours hooks per issuer. The counter lives in redis
// so every instance draws from the same window.
type HookQuota struct {
	redis contracts.RedisRepository
	log   *zap.Logger

	// Limit of zero or less disables the quota.
	Limit  int
	Window time.Duration
	Clock  func() time.Time
}

func NewHookQuota(redis contracts.RedisRepository, log *zap.Logger, limitPerMinute int) *HookQuota {
	return &HookQuota{
		redis:  redis,
		log:    log,
		Limit:  limitPerMinute,
		Window: time.Minute,
		Clock:  time.Now,
	}
}

// Decision is the outcome of one Take. RetryAfter is zero when the hook may proceed.
type Decision struct {
	Count      int
	RetryAfter time.Duration
}

func (d Decision) Allowed() bool {
	return d.RetryAfter == 0
}

// RetryAfterSeconds rounds RetryAfter up for the Retry-After header.
func (d Decision) RetryAfterSeconds() int {
	if d.Allowed() {
		return 0
	}
	return int(math.Ceil(d.RetryAfter.Seconds()))
}

// Take counts one hook for issuer in the current window.
func (q *HookQuota) Take(ctx context.Context, issuer string) (Decision, error) {
	if q.Limit <= 0 {
		return Decision{}, nil
	}

	now := q.Clock().UTC()
	window := q.Window
	if window <= 0 {
		window = time.Minute
	}
	windowStart := now.Truncate(window)
	untilNext := windowStart.Add(window).Sub(now)

	key := hookQuotaKey(issuer, windowStart)
	count, err := q.redis.IncrementWithTTL(ctx, key, untilNext+time.Second)
	if err != nil {
		q.log.Error("ratelimiter.HookQuota.Take increment failed",
			zap.String(constvars.LoggingIssuerKey, issuer),
			zap.String("key", key),
			zap.Error(err),
		)
		return Decision{}, err
	}

	if count > q.Limit {
		return Decision{Count: count, RetryAfter: untilNext}, nil
	}
	return Decision{Count: count}, nil
}

func hookQuotaKey(issuer string, windowStart time.Time) string {
	issuer = strings.ToLower(strings.TrimSpace(issuer))
	if issuer == "" {
		issuer = unknownIssuer
	}
	return fmt.Sprintf("%s:%s:%d", constvars.RedisKeyHookLimiterGroup, issuer, windowStart.Unix())
}
