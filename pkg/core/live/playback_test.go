package live

import (
	"sync"
	"testing"
	"time"
)

// fakeClock is a manually advanced playback timeline.
type fakeClock struct {
	mu  sync.Mutex
	now time.Duration
}

func (c *fakeClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	c.mu.Unlock()
}

// fakeVoice records stop calls; Stop is tolerant of repeats.
type fakeVoice struct {
	mu      sync.Mutex
	stopped int
	onEnded func()
}

func (v *fakeVoice) Stop() {
	v.mu.Lock()
	v.stopped++
	first := v.stopped == 1
	ended := v.onEnded
	v.mu.Unlock()
	if first && ended != nil {
		ended()
	}
}

func (v *fakeVoice) StopCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stopped
}

type scheduledPlay struct {
	buf   *Buffer
	at    time.Duration
	voice *fakeVoice
}

// fakeOutput records scheduled buffers without playing anything.
type fakeOutput struct {
	mu        sync.Mutex
	plays     []scheduledPlay
	resumes   int
	closed    int
	playErr   error
	resumeErr error
}

func (o *fakeOutput) Resume() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.resumes++
	return o.resumeErr
}

func (o *fakeOutput) Play(buf *Buffer, at time.Duration, onEnded func()) (Voice, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.playErr != nil {
		return nil, o.playErr
	}
	v := &fakeVoice{onEnded: onEnded}
	o.plays = append(o.plays, scheduledPlay{buf: buf, at: at, voice: v})
	return v, nil
}

func (o *fakeOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed++
	return nil
}

func (o *fakeOutput) Plays() []scheduledPlay {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]scheduledPlay, len(o.plays))
	copy(out, o.plays)
	return out
}

func (o *fakeOutput) Resumes() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.resumes
}

// pcmOfDuration builds silent 24 kHz mono PCM of the given length.
func pcmOfDuration(d time.Duration) []byte {
	samples := int(d * 24000 / time.Second)
	return make([]byte, samples*2)
}

func TestScheduler_GaplessChaining(t *testing.T) {
	clock := &fakeClock{}
	out := &fakeOutput{}
	s := NewScheduler(clock, out)

	// Three chunks arrive instantly; each must start exactly where the
	// previous one ends.
	durations := []time.Duration{200 * time.Millisecond, 150 * time.Millisecond, 50 * time.Millisecond}
	for _, d := range durations {
		if err := s.EnqueuePCM(pcmOfDuration(d), 24000, 1); err != nil {
			t.Fatalf("Enqueue error: %v", err)
		}
	}

	plays := out.Plays()
	if len(plays) != 3 {
		t.Fatalf("plays = %d, want 3", len(plays))
	}

	wantStarts := []time.Duration{0, 200 * time.Millisecond, 350 * time.Millisecond}
	for i, p := range plays {
		if p.at != wantStarts[i] {
			t.Errorf("chunk %d start = %v, want %v", i, p.at, wantStarts[i])
		}
	}
	if got := s.Cursor(); got != 400*time.Millisecond {
		t.Errorf("cursor = %v, want 400ms", got)
	}
}

func TestScheduler_LateChunkStartsNow(t *testing.T) {
	clock := &fakeClock{}
	out := &fakeOutput{}
	s := NewScheduler(clock, out)

	if err := s.EnqueuePCM(pcmOfDuration(100*time.Millisecond), 24000, 1); err != nil {
		t.Fatalf("Enqueue error: %v", err)
	}

	// Playback finished long ago; the next chunk must not be scheduled in
	// the past.
	clock.Advance(500 * time.Millisecond)
	if err := s.EnqueuePCM(pcmOfDuration(100*time.Millisecond), 24000, 1); err != nil {
		t.Fatalf("Enqueue error: %v", err)
	}

	plays := out.Plays()
	if plays[1].at != 500*time.Millisecond {
		t.Errorf("late chunk start = %v, want 500ms", plays[1].at)
	}
	if got := s.Cursor(); got != 600*time.Millisecond {
		t.Errorf("cursor = %v, want 600ms", got)
	}
}

func TestScheduler_ResumeOncePerSession(t *testing.T) {
	clock := &fakeClock{}
	out := &fakeOutput{}
	s := NewScheduler(clock, out)

	for i := 0; i < 3; i++ {
		if err := s.EnqueuePCM(pcmOfDuration(10*time.Millisecond), 24000, 1); err != nil {
			t.Fatalf("Enqueue error: %v", err)
		}
	}
	if got := out.Resumes(); got != 1 {
		t.Errorf("resumes = %d, want 1", got)
	}
}

func TestScheduler_Interrupt(t *testing.T) {
	clock := &fakeClock{}
	out := &fakeOutput{}
	s := NewScheduler(clock, out)

	var speaking []bool
	var mu sync.Mutex
	s.SetSpeakingFunc(func(on bool) {
		mu.Lock()
		speaking = append(speaking, on)
		mu.Unlock()
	})

	for i := 0; i < 2; i++ {
		if err := s.EnqueuePCM(pcmOfDuration(100*time.Millisecond), 24000, 1); err != nil {
			t.Fatalf("Enqueue error: %v", err)
		}
	}
	if got := s.ActiveCount(); got != 2 {
		t.Fatalf("active = %d, want 2", got)
	}

	s.Interrupt()

	if got := s.ActiveCount(); got != 0 {
		t.Errorf("active after interrupt = %d, want 0", got)
	}
	if got := s.Cursor(); got != 0 {
		t.Errorf("cursor after interrupt = %v, want 0", got)
	}
	for _, p := range out.Plays() {
		if p.voice.StopCount() == 0 {
			t.Error("active voice was not stopped")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if len(speaking) < 2 || speaking[0] != true || speaking[len(speaking)-1] != false {
		t.Errorf("speaking transitions = %v, want start true end false", speaking)
	}

	// A second interrupt with nothing active is harmless.
	s.Interrupt()
}

func TestScheduler_InterruptThenNewChunkPlaysImmediately(t *testing.T) {
	clock := &fakeClock{}
	out := &fakeOutput{}
	s := NewScheduler(clock, out)

	if err := s.EnqueuePCM(pcmOfDuration(300*time.Millisecond), 24000, 1); err != nil {
		t.Fatalf("Enqueue error: %v", err)
	}
	clock.Advance(50 * time.Millisecond)
	s.Interrupt()

	if err := s.EnqueuePCM(pcmOfDuration(100*time.Millisecond), 24000, 1); err != nil {
		t.Fatalf("Enqueue error: %v", err)
	}

	plays := out.Plays()
	if got := plays[1].at; got != 50*time.Millisecond {
		t.Errorf("post-interrupt chunk start = %v, want 50ms (current time)", got)
	}
}

func TestScheduler_SpeakingStopsWhenAllEnd(t *testing.T) {
	clock := &fakeClock{}
	out := &fakeOutput{}
	s := NewScheduler(clock, out)

	var mu sync.Mutex
	var last bool
	s.SetSpeakingFunc(func(on bool) {
		mu.Lock()
		last = on
		mu.Unlock()
	})

	for i := 0; i < 2; i++ {
		if err := s.EnqueuePCM(pcmOfDuration(100*time.Millisecond), 24000, 1); err != nil {
			t.Fatalf("Enqueue error: %v", err)
		}
	}

	plays := out.Plays()
	plays[0].voice.Stop()
	mu.Lock()
	if !last {
		mu.Unlock()
		t.Fatal("speaking false after first of two buffers ended")
	}
	mu.Unlock()

	plays[1].voice.Stop()
	mu.Lock()
	defer mu.Unlock()
	if last {
		t.Error("speaking still true after all buffers ended")
	}
}

func TestBuffer_Duration(t *testing.T) {
	buf := &Buffer{Channels: [][]float32{make([]float32, 24000)}, SampleRate: 24000}
	if got := buf.Duration(); got != time.Second {
		t.Errorf("duration = %v, want 1s", got)
	}

	empty := &Buffer{}
	if got := empty.Duration(); got != 0 {
		t.Errorf("empty duration = %v, want 0", got)
	}
}
