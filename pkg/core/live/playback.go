package live

import (
	"sync"
	"time"

	"github.com/collegegate/collegegate/pkg/core"
)

// Clock provides the playback timeline. The zero point is arbitrary; only
// differences matter.
type Clock interface {
	Now() time.Duration
}

// NewWallClock returns a Clock backed by the monotonic wall clock, zeroed
// at the call.
func NewWallClock() Clock {
	return &wallClock{start: time.Now()}
}

type wallClock struct {
	start time.Time
}

func (c *wallClock) Now() time.Duration { return time.Since(c.start) }

// Buffer holds decoded per-channel playback samples.
type Buffer struct {
	Channels   [][]float32
	SampleRate int
}

// NewBufferFromPCM decodes 16-bit little-endian PCM into a Buffer.
func NewBufferFromPCM(pcm []byte, sampleRate, channels int) (*Buffer, error) {
	chans, err := DecodePCM16(pcm, channels)
	if err != nil {
		return nil, err
	}
	return &Buffer{Channels: chans, SampleRate: sampleRate}, nil
}

// Duration returns the exact play time of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate == 0 || len(b.Channels) == 0 {
		return 0
	}
	return time.Duration(len(b.Channels[0])) * time.Second / time.Duration(b.SampleRate)
}

// Voice is one scheduled buffer that can be stopped early. Stop is safe to
// call more than once and after natural completion.
type Voice interface {
	Stop()
}

// Output is the audio device sink the scheduler plays into.
type Output interface {
	// Resume wakes a suspended device. Called once before the first buffer.
	Resume() error

	// Play schedules buf to start at the given timeline position and
	// invokes onEnded exactly once when the buffer finishes or is stopped.
	Play(buf *Buffer, at time.Duration, onEnded func()) (Voice, error)

	// Close releases the device.
	Close() error
}

// Scheduler queues model audio on the output timeline without gaps. Each
// buffer starts at the later of the current time and the end of the
// previous buffer, so back-to-back chunks are seamless and chunks arriving
// after a pause start immediately.
type Scheduler struct {
	clock Clock
	out   Output

	mu      sync.Mutex
	cursor  time.Duration
	nextID  int
	active  map[int]Voice
	resumed bool

	onSpeaking func(bool)
}

// NewScheduler creates a playback scheduler over the given clock and output.
func NewScheduler(clock Clock, out Output) *Scheduler {
	return &Scheduler{
		clock:  clock,
		out:    out,
		active: make(map[int]Voice),
	}
}

// SetSpeakingFunc registers a callback invoked with true when playback
// begins from silence and false when the last active buffer finishes.
func (s *Scheduler) SetSpeakingFunc(fn func(bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSpeaking = fn
}

// EnqueuePCM decodes a raw PCM chunk and schedules it.
func (s *Scheduler) EnqueuePCM(pcm []byte, sampleRate, channels int) error {
	buf, err := NewBufferFromPCM(pcm, sampleRate, channels)
	if err != nil {
		return err
	}
	return s.Enqueue(buf)
}

// Enqueue schedules a decoded buffer for gapless playback.
func (s *Scheduler) Enqueue(buf *Buffer) error {
	s.mu.Lock()

	if !s.resumed {
		if err := s.out.Resume(); err != nil {
			s.mu.Unlock()
			return core.NewTransportError("resume audio output", err)
		}
		s.resumed = true
	}

	start := s.cursor
	if now := s.clock.Now(); now > start {
		start = now
	}

	id := s.nextID
	s.nextID++

	voice, err := s.out.Play(buf, start, func() { s.ended(id) })
	if err != nil {
		s.mu.Unlock()
		return core.NewTransportError("schedule audio buffer", err)
	}

	s.active[id] = voice
	s.cursor = start + buf.Duration()
	startedSpeaking := len(s.active) == 1
	fn := s.onSpeaking
	s.mu.Unlock()

	if startedSpeaking && fn != nil {
		fn(true)
	}
	return nil
}

// ended removes a finished buffer from the active set.
func (s *Scheduler) ended(id int) {
	s.mu.Lock()
	if _, ok := s.active[id]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.active, id)
	stopped := len(s.active) == 0
	fn := s.onSpeaking
	s.mu.Unlock()

	if stopped && fn != nil {
		fn(false)
	}
}

// Interrupt stops every active buffer and rewinds the cursor to zero so the
// next chunk plays immediately. Buffers that already ended are ignored.
func (s *Scheduler) Interrupt() {
	s.mu.Lock()
	voices := make([]Voice, 0, len(s.active))
	for _, v := range s.active {
		voices = append(voices, v)
	}
	wasSpeaking := len(s.active) > 0
	s.active = make(map[int]Voice)
	s.cursor = 0
	fn := s.onSpeaking
	s.mu.Unlock()

	for _, v := range voices {
		v.Stop()
	}
	if wasSpeaking && fn != nil {
		fn(false)
	}
}

// ActiveCount returns the number of buffers currently scheduled or playing.
func (s *Scheduler) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

// Cursor returns the timeline position where the next buffer would start
// if it arrived at or before that time.
func (s *Scheduler) Cursor() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}
