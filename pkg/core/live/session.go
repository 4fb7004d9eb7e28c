package live

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/collegegate/collegegate/pkg/core"
)

// allowedUploadMIMEs is the document upload allow-list.
var allowedUploadMIMEs = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
}

// Deps are the injected collaborators a session runs over. Dialer and
// Source are required; Output is required unless the session never plays
// audio. A nil Clock gets a wall clock per connection, a nil Logger gets
// slog.Default().
type Deps struct {
	Dialer    Dialer
	Source    CaptureSource
	Output    Output
	Clock     Clock
	Generator ImageGenerator
	Logger    *slog.Logger
}

// Session owns one live voice-counseling conversation: the transport, the
// microphone pipeline, playback scheduling, tool dispatch, and the
// hand-off timer. The zero state is Idle; Connect opens it and Disconnect
// releases everything it acquired.
type Session struct {
	config SessionConfig
	deps   Deps
	logger *slog.Logger

	mu         sync.RWMutex
	state      State
	transport  Transport
	scheduler  *Scheduler
	queue      *frameQueue
	dispatcher *toolDispatcher
	handOff    *handOffTimer
	connCancel context.CancelFunc
	images     []*GeneratedImage

	events chan Event
}

// NewSession creates a session in the Idle state.
func NewSession(config SessionConfig, deps Deps) *Session {
	config.applyDefaults()
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		config: config,
		deps:   deps,
		logger: logger.With("component", "live_session"),
		state:  StateIdle,
		events: make(chan Event, 100),
	}
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Events returns the channel for receiving session events. Events are
// dropped rather than blocking internal loops when the consumer falls
// behind.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Images returns the images generated by tool calls this session, oldest
// first.
func (s *Session) Images() []*GeneratedImage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*GeneratedImage, len(s.images))
	copy(out, s.images)
	return out
}

// Connect acquires the microphone, dials the live service, and starts the
// capture, send, and read loops. It may only be called from Idle, Closed,
// or Failed; a Connect on an active session is rejected without touching
// it. On any failure every partially acquired resource is released and
// the session lands in Failed.
func (s *Session) Connect(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case StateIdle, StateClosed, StateFailed:
	default:
		state := s.state
		s.mu.Unlock()
		return core.NewInvalidRequestError("cannot connect while session is " + state.String())
	}
	if s.deps.Dialer == nil || s.deps.Source == nil {
		s.mu.Unlock()
		return core.NewInvalidRequestError("session requires a dialer and a capture source")
	}
	prev := s.state
	s.state = StateConnecting
	s.images = nil
	s.mu.Unlock()
	s.emit(&StateChangedEvent{From: prev, To: StateConnecting})

	frames, err := s.deps.Source.Start(ctx)
	if err != nil {
		s.setState(StateFailed)
		s.logger.Error("microphone acquisition failed", "error", err)
		return err
	}

	transport, err := s.deps.Dialer.Dial(ctx, s.config)
	if err != nil {
		_ = s.deps.Source.Stop()
		s.setState(StateFailed)
		s.logger.Error("live dial failed", "error", err)
		return err
	}

	clock := s.deps.Clock
	if clock == nil {
		clock = NewWallClock()
	}

	connCtx, connCancel := context.WithCancel(context.Background())

	scheduler := NewScheduler(clock, s.deps.Output)
	scheduler.SetSpeakingFunc(func(speaking bool) {
		s.emit(&SpeakingEvent{Speaking: speaking})
	})

	dispatcher := newToolDispatcher(s.deps.Generator, transport.Send)
	dispatcher.onImage = func(img *GeneratedImage) {
		s.mu.Lock()
		s.images = append(s.images, img)
		s.mu.Unlock()
		s.emit(&ImageGeneratedEvent{Image: img})
	}
	dispatcher.onError = func(err *core.Error) {
		s.logger.Warn("tool call failed", "error", err)
		s.emit(&ErrorEvent{Code: string(err.Type), Message: err.Message})
	}

	queue := newFrameQueue(s.config.CaptureQueueDepth)
	handOff := newHandOffTimer(s.config.HandOffDelay, s.injectHandOff)

	s.mu.Lock()
	if s.state != StateConnecting {
		// Disconnect won the race while the dial was in flight. The
		// teardown already stopped the capture source; release what was
		// acquired here and leave the terminal state alone.
		state := s.state
		s.mu.Unlock()
		connCancel()
		_ = transport.Close()
		_ = s.deps.Source.Stop()
		return core.NewNotConnectedError("session was disconnected while connecting (state " + state.String() + ")")
	}
	s.transport = transport
	s.scheduler = scheduler
	s.queue = queue
	s.dispatcher = dispatcher
	s.handOff = handOff
	s.connCancel = connCancel
	s.state = StateOpen
	s.mu.Unlock()
	s.emit(&StateChangedEvent{From: StateConnecting, To: StateOpen})

	go s.captureLoop(connCtx, frames, queue)
	go s.sendLoop(connCtx, queue, transport)
	go s.readLoop(connCtx, transport, scheduler, dispatcher)

	handOff.Start()
	s.logger.Info("session open", "mode", s.config.Mode, "model", s.config.Model)
	return nil
}

// Disconnect stops capture, clears playback, closes the transport, and
// releases audio devices. It is idempotent and safe from any state.
func (s *Session) Disconnect() error {
	return s.teardown("disconnect", StateClosed)
}

// Close is an alias for Disconnect.
func (s *Session) Close() error {
	return s.Disconnect()
}

// teardown releases the current connection's resources exactly once and
// moves the session to the given terminal state.
func (s *Session) teardown(reason string, to State) error {
	s.mu.Lock()
	switch s.state {
	case StateIdle, StateClosed, StateFailed:
		s.mu.Unlock()
		return nil
	}
	prev := s.state
	s.state = StateClosing
	transport := s.transport
	scheduler := s.scheduler
	handOff := s.handOff
	connCancel := s.connCancel
	s.transport = nil
	s.scheduler = nil
	s.queue = nil
	s.dispatcher = nil
	s.handOff = nil
	s.connCancel = nil
	s.mu.Unlock()
	s.emit(&StateChangedEvent{From: prev, To: StateClosing})

	if handOff != nil {
		handOff.Cancel()
	}
	if connCancel != nil {
		connCancel()
	}
	_ = s.deps.Source.Stop()
	if scheduler != nil {
		scheduler.Interrupt()
	}
	if transport != nil {
		_ = transport.Close()
	}
	if s.deps.Output != nil {
		_ = s.deps.Output.Close()
	}

	s.setState(to)
	s.emit(&SessionClosedEvent{Reason: reason})
	s.logger.Info("session closed", "reason", reason)
	return nil
}

// SendText submits a complete user text turn.
func (s *Session) SendText(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return core.NewInvalidRequestError("text must not be empty")
	}
	transport, err := s.openTransport()
	if err != nil {
		return err
	}
	return transport.Send(NewTextTurnMessage(text))
}

// UploadDocument sends a document into the conversation for the model to
// analyze. Only image uploads are supported.
func (s *Session) UploadDocument(name, mimeType string, data []byte) error {
	transport, err := s.openTransport()
	if err != nil {
		return err
	}
	mimeType = strings.TrimSpace(strings.ToLower(mimeType))
	if !allowedUploadMIMEs[mimeType] {
		return core.NewUnsupportedMediaError("only PNG and JPEG uploads are supported", mimeType)
	}
	if len(data) == 0 {
		return core.NewInvalidRequestError("document must not be empty")
	}
	if err := transport.Send(NewMediaMessage(mimeType, data)); err != nil {
		return err
	}
	s.emit(&ToastEvent{Message: "Analyzing " + name + "..."})
	return nil
}

// openTransport returns the live transport or a not-connected error.
func (s *Session) openTransport() (Transport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateOpen || s.transport == nil {
		return nil, core.NewNotConnectedError("session is not open")
	}
	return s.transport, nil
}

// injectHandOff sends the one-shot human hand-off instruction.
func (s *Session) injectHandOff() {
	transport, err := s.openTransport()
	if err != nil {
		return
	}
	if err := transport.Send(NewTextTurnMessage(handOffText)); err != nil {
		s.logger.Warn("hand-off prompt send failed", "error", err)
		return
	}
	s.emit(&HandOffEvent{})
}

// captureLoop encodes microphone frames and feeds the bounded send queue.
func (s *Session) captureLoop(ctx context.Context, frames <-chan []float32, queue *frameQueue) {
	frameCount := 0
	for {
		select {
		case <-ctx.Done():
			return
		case frame, ok := <-frames:
			if !ok {
				return
			}
			pcm := EncodePCM16(frame)
			queue.Push(pcm)

			if dropped := queue.TakeDropped(); dropped > 0 {
				s.logger.Warn("capture frames dropped", "count", dropped)
				s.emit(&FramesDroppedEvent{Count: dropped})
			}

			frameCount++
			if frameCount%10 == 0 {
				s.emit(&EnergyLevelEvent{
					RMS:  CalculateRMSEnergy(pcm),
					Peak: CalculatePeakAmplitude(pcm),
				})
			}
		}
	}
}

// sendLoop drains the capture queue into the transport.
func (s *Session) sendLoop(ctx context.Context, queue *frameQueue, transport Transport) {
	for {
		select {
		case <-ctx.Done():
			return
		case frame := <-queue.Frames():
			if err := transport.Send(NewAudioFrameMessage(frame)); err != nil {
				if ctx.Err() != nil {
					return
				}
				s.logger.Warn("audio frame send failed", "error", err)
			}
		}
	}
}

// readLoop demultiplexes inbound frames in arrival order: interruption
// signals clear playback, audio chunks are scheduled, and tool calls are
// dispatched.
func (s *Session) readLoop(ctx context.Context, transport Transport, scheduler *Scheduler, dispatcher *toolDispatcher) {
	for {
		msg, err := transport.Receive()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if err == io.EOF {
				_ = s.teardown("remote close", StateClosed)
				return
			}
			s.logger.Error("live read failed", "error", err)
			s.emit(&ErrorEvent{Code: string(core.ErrTransport), Message: err.Error()})
			_ = s.teardown("transport error", StateFailed)
			return
		}

		if msg.Interrupted() {
			scheduler.Interrupt()
		}

		for _, chunk := range msg.AudioChunks() {
			if err := scheduler.EnqueuePCM(chunk, s.config.OutputRate, 1); err != nil {
				s.logger.Warn("audio chunk rejected", "error", err)
			}
		}

		if msg.ToolCall != nil {
			go dispatcher.Dispatch(ctx, msg.ToolCall)
		}
	}
}

// setState updates the session state and emits an event.
func (s *Session) setState(newState State) {
	s.mu.Lock()
	oldState := s.state
	s.state = newState
	s.mu.Unlock()

	if oldState != newState {
		s.emit(&StateChangedEvent{From: oldState, To: newState})
	}
}

// emit sends an event to the events channel without ever blocking.
func (s *Session) emit(event Event) {
	select {
	case s.events <- event:
	default:
	}
}
