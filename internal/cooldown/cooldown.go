// Package cooldown gates repeat slash-command invocations per member.  A
// member may run each command at most once per interval; the second
// invocation inside the window is rejected with the remaining wait time
// and causes no state change.
package cooldown

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Tracker records the last use of each member+command pair.  When a Redis
// client is available the window lives there, atomically claimed by a
// small Lua script; with a nil client the tracker degrades to an
// in-process map, which is sufficient for a single-instance bot.
type Tracker struct {
	rdb      *redis.Client
	interval time.Duration

	mu   sync.Mutex
	last map[string]time.Time
	now  func() time.Time
}

// claimScript returns the remaining window in milliseconds when the key is
// still cooling down, or claims the key and returns 0.
var claimScript = redis.NewScript(`
    local ttl = redis.call('PTTL', KEYS[1])
    if ttl > 0 then
        return ttl
    end
    redis.call('SET', KEYS[1], 1, 'PX', ARGV[1])
    return 0
`)

// New returns a tracker enforcing the given minimum interval.  rdb may be
// nil; the tracker then keeps state in memory.
func New(rdb *redis.Client, interval time.Duration) *Tracker {
	return &Tracker{
		rdb:      rdb,
		interval: interval,
		last:     make(map[string]time.Time),
		now:      time.Now,
	}
}

// Check claims the member+command window.  It returns zero when the
// invocation is allowed (and the window is started), or the remaining wait
// time when the member must hold off.  Redis errors fall back to allowing
// the command: a broken cooldown backend must not lock members out of
// verification.
func (t *Tracker) Check(ctx context.Context, memberID, command string) time.Duration {
	if t.interval <= 0 {
		return 0
	}
	if t.rdb != nil {
		key := strings.Join([]string{"cooldown", memberID, command}, ":")
		v, err := claimScript.Run(ctx, t.rdb, []string{key}, t.interval.Milliseconds()).Int64()
		if err != nil {
			log.Printf("cooldown: redis error for %s: %v", key, err)
			return 0
		}
		return time.Duration(v) * time.Millisecond
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	key := memberID + ":" + command
	now := t.now()
	if used, ok := t.last[key]; ok {
		if wait := t.interval - now.Sub(used); wait > 0 {
			return wait
		}
	}
	t.last[key] = now
	return 0
}
