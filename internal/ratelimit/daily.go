package ratelimit

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// checkScript reads the counter, refuses without incrementing once the limit
// is reached, and anchors the expiry to the first request in the window. The
// whole check-and-increment is atomic so concurrent requests from one client
// cannot slip past the ceiling.
var checkScript = redis.NewScript(`
local count = tonumber(redis.call("GET", KEYS[1]) or "0")
if count >= tonumber(ARGV[1]) then
  return -1
end
count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return count
`)

// Result reports whether the action is allowed and how many remain in the
// current window.
type Result struct {
	Allowed   bool `json:"allowed"`
	Remaining int  `json:"remaining"`
}

// DailyLimiter caps actions per client identity in a fixed window anchored to
// the client's first request.
type DailyLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

// NewDailyLimiter builds a limiter on a shared Redis client.
func NewDailyLimiter(client *redis.Client, prefix string, limit int, window time.Duration) (*DailyLimiter, error) {
	if client == nil {
		return nil, errors.New("rate limiter requires a redis client")
	}
	if limit <= 0 || window <= 0 {
		return nil, errors.New("rate limiter requires positive limit and window")
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &DailyLimiter{client: client, prefix: prefix, limit: limit, window: window}, nil
}

// Check consumes one slot for clientID if any remain. At the ceiling it does
// not increment, so blocked requests never push the window further out.
func (l *DailyLimiter) Check(ctx context.Context, clientID string) (Result, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		clientID = "unknown"
	}
	key := l.prefix + ":" + clientID
	count, err := checkScript.Run(ctx, l.client, []string{key}, l.limit, l.window.Milliseconds()).Int64()
	if err != nil {
		return Result{}, err
	}
	if count < 0 {
		return Result{Allowed: false, Remaining: 0}, nil
	}
	return Result{Allowed: true, Remaining: l.limit - int(count)}, nil
}
