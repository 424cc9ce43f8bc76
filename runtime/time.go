package runtime

import "time"

// nowFn and sleepFn are swappable so tests can make rt_timer_ms/rt_sleep_ms
// deterministic, the same replaceable-hook idiom spec.md's allocation hook
// uses for rt_alloc.
var (
	nowFn   = time.Now
	sleepFn = time.Sleep
)

// startedAt anchors rt_timer_ms's monotonic reading.
var startedAt = nowFn()

// RtTimerMs implements rt_timer_ms: milliseconds since process start,
// monotonic across repeated calls.
func RtTimerMs() int64 {
	return nowFn().Sub(startedAt).Milliseconds()
}

// RtSleepMs implements rt_sleep_ms: negative durations clamp to zero.
func RtSleepMs(ms int64) {
	if ms < 0 {
		ms = 0
	}
	sleepFn(time.Duration(ms) * time.Millisecond)
}
