package live

import (
	"context"
	"sync"
)

// CaptureSource provides microphone audio as fixed-size frames of float32
// samples in [-1, 1] at the session's input rate. Start acquires the
// device; a refused grant surfaces as a permission error. The returned
// channel closes when the source stops.
type CaptureSource interface {
	Start(ctx context.Context) (<-chan []float32, error)
	Stop() error
}

// frameQueue is a bounded FIFO of encoded capture frames sitting between
// the microphone and the transport. When the transport falls behind, the
// oldest frame is discarded so capture never blocks and latency stays
// bounded.
type frameQueue struct {
	ch chan []byte

	mu      sync.Mutex
	dropped int
}

func newFrameQueue(depth int) *frameQueue {
	if depth < 1 {
		depth = 1
	}
	return &frameQueue{ch: make(chan []byte, depth)}
}

// Push enqueues a frame, evicting the oldest queued frame if full.
func (q *frameQueue) Push(frame []byte) {
	for {
		select {
		case q.ch <- frame:
			return
		default:
		}
		select {
		case <-q.ch:
			q.mu.Lock()
			q.dropped++
			q.mu.Unlock()
		default:
		}
	}
}

// Frames returns the consumer side of the queue.
func (q *frameQueue) Frames() <-chan []byte {
	return q.ch
}

// TakeDropped returns the drop count since the last call and resets it.
func (q *frameQueue) TakeDropped() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := q.dropped
	q.dropped = 0
	return n
}

// Len returns the number of frames currently queued.
func (q *frameQueue) Len() int {
	return len(q.ch)
}
