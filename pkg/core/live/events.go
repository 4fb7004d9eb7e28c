package live

// Event is the interface for all live session events.
type Event interface {
	// EventType returns the event type string for serialization.
	EventType() string
}

// StateChangedEvent is emitted when the session state changes.
type StateChangedEvent struct {
	From State `json:"from"`
	To   State `json:"to"`
}

func (e *StateChangedEvent) EventType() string { return "state.changed" }

// SpeakingEvent is emitted when model audio playback starts or the last
// scheduled buffer finishes.
type SpeakingEvent struct {
	Speaking bool `json:"speaking"`
}

func (e *SpeakingEvent) EventType() string { return "speaking" }

// ToastEvent carries a short transient status message for the UI.
type ToastEvent struct {
	Message string `json:"message"`
}

func (e *ToastEvent) EventType() string { return "toast" }

// ImageGeneratedEvent is emitted when a tool call produces a new image.
type ImageGeneratedEvent struct {
	Image *GeneratedImage `json:"image"`
}

func (e *ImageGeneratedEvent) EventType() string { return "image.generated" }

// HandOffEvent is emitted when the one-shot hand-off prompt fires.
type HandOffEvent struct{}

func (e *HandOffEvent) EventType() string { return "handoff" }

// FramesDroppedEvent reports capture frames discarded under backpressure.
type FramesDroppedEvent struct {
	Count int `json:"count"`
}

func (e *FramesDroppedEvent) EventType() string { return "capture.dropped" }

// EnergyLevelEvent is emitted periodically with capture energy information.
type EnergyLevelEvent struct {
	RMS  float64 `json:"rms"`
	Peak float64 `json:"peak"`
}

func (e *EnergyLevelEvent) EventType() string { return "energy.level" }

// ErrorEvent is emitted when a non-fatal error occurs.
type ErrorEvent struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ErrorEvent) EventType() string { return "error" }

// SessionClosedEvent is emitted when the session ends.
type SessionClosedEvent struct {
	Reason string `json:"reason,omitempty"`
}

func (e *SessionClosedEvent) EventType() string { return "session.closed" }
