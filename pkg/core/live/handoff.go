package live

import (
	"sync"
	"time"
)

// handOffText is the synthetic instruction injected when a session stays
// open past the hand-off threshold.
const handOffText = "System note: the student has been in this session for a while. Gently offer to connect them with a human counselor for personalized guidance, then continue helping."

// handOffTimer arms a single delayed prompt per open session. Once it
// fires it stays spent until Cancel resets it when the session leaves the
// open state.
type handOffTimer struct {
	delay time.Duration

	mu        sync.Mutex
	active    bool
	fired     bool
	startTime time.Time
	timer     *time.Timer

	onFire func()
}

func newHandOffTimer(delay time.Duration, onFire func()) *handOffTimer {
	return &handOffTimer{delay: delay, onFire: onFire}
}

// Start arms the timer. A second Start while armed or after firing is a
// no-op.
func (h *handOffTimer) Start() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.active || h.fired {
		return
	}

	h.active = true
	h.startTime = time.Now()
	h.timer = time.AfterFunc(h.delay, h.fire)
}

func (h *handOffTimer) fire() {
	h.mu.Lock()
	if !h.active {
		h.mu.Unlock()
		return
	}
	h.active = false
	h.fired = true
	callback := h.onFire
	h.mu.Unlock()

	if callback != nil {
		callback()
	}
}

// Cancel disarms the timer and clears the spent flag so the next open
// session starts fresh.
func (h *handOffTimer) Cancel() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.timer != nil {
		h.timer.Stop()
	}
	h.active = false
	h.fired = false
}

// Fired reports whether the prompt has been injected this session.
func (h *handOffTimer) Fired() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.fired
}

// TimeRemaining returns the time until the prompt fires, or zero when the
// timer is not armed.
func (h *handOffTimer) TimeRemaining() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.active {
		return 0
	}
	remaining := h.delay - time.Since(h.startTime)
	if remaining < 0 {
		return 0
	}
	return remaining
}
