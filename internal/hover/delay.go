package hover

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultDelay is how long the pointer must rest on a target before its
// documentation is shown.
const DefaultDelay = 500 * time.Millisecond

// DelayFromSetting parses a millisecond override. Empty, unparsable and
// non-positive values yield DefaultDelay.
func DelayFromSetting(raw string) time.Duration {
	if d, ok := ParseDelay(raw); ok {
		return d
	}
	return DefaultDelay
}

// ParseDelay parses a positive millisecond count.
func ParseDelay(raw string) (time.Duration, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || ms <= 0 || ms > math.MaxInt64/int64(time.Millisecond) {
		return 0, false
	}
	return time.Duration(ms) * time.Millisecond, true
}
