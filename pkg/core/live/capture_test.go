package live

import "testing"

func TestFrameQueue_FIFO(t *testing.T) {
	q := newFrameQueue(4)
	q.Push([]byte{1})
	q.Push([]byte{2})

	if got := <-q.Frames(); got[0] != 1 {
		t.Errorf("first frame = %d, want 1", got[0])
	}
	if got := <-q.Frames(); got[0] != 2 {
		t.Errorf("second frame = %d, want 2", got[0])
	}
	if got := q.TakeDropped(); got != 0 {
		t.Errorf("dropped = %d, want 0", got)
	}
}

func TestFrameQueue_DropsOldestWhenFull(t *testing.T) {
	q := newFrameQueue(2)
	q.Push([]byte{1})
	q.Push([]byte{2})
	q.Push([]byte{3}) // evicts frame 1

	if got := q.Len(); got != 2 {
		t.Fatalf("len = %d, want 2", got)
	}
	if got := <-q.Frames(); got[0] != 2 {
		t.Errorf("oldest surviving frame = %d, want 2", got[0])
	}
	if got := <-q.Frames(); got[0] != 3 {
		t.Errorf("newest frame = %d, want 3", got[0])
	}
	if got := q.TakeDropped(); got != 1 {
		t.Errorf("dropped = %d, want 1", got)
	}
	// Counter resets after read.
	if got := q.TakeDropped(); got != 0 {
		t.Errorf("dropped after reset = %d, want 0", got)
	}
}

func TestFrameQueue_MinimumDepth(t *testing.T) {
	q := newFrameQueue(0)
	q.Push([]byte{1})
	q.Push([]byte{2})

	if got := <-q.Frames(); got[0] != 2 {
		t.Errorf("frame = %d, want 2", got[0])
	}
	if got := q.TakeDropped(); got != 1 {
		t.Errorf("dropped = %d, want 1", got)
	}
}
