package live

import "time"

// State represents the current state of the live session.
type State int

const (
	// StateIdle is the initial state before Connect is called.
	StateIdle State = iota
	// StateConnecting is while the transport dial and setup exchange run.
	StateConnecting
	// StateOpen is when audio is flowing in both directions.
	StateOpen
	// StateClosing is while Disconnect tears resources down.
	StateClosing
	// StateClosed is after a clean Disconnect.
	StateClosed
	// StateFailed is after a failed Connect or a fatal transport error.
	StateFailed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateConnecting:
		return "CONNECTING"
	case StateOpen:
		return "OPEN"
	case StateClosing:
		return "CLOSING"
	case StateClosed:
		return "CLOSED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Mode selects the counseling persona for a session.
type Mode string

const (
	// ModeCounselor is the standard student-facing counselor persona.
	ModeCounselor Mode = "counselor"
	// ModeTrainee puts the AI in the student seat so a trainee counselor
	// can practice advising it.
	ModeTrainee Mode = "trainee"
)

// Voice returns the prebuilt voice preset for the mode.
func (m Mode) Voice() string {
	if m == ModeTrainee {
		return "Puck"
	}
	return "Zephyr"
}

// DefaultModel is the realtime audio model a session speaks to.
const DefaultModel = "gemini-2.5-flash-native-audio-preview-09-2025"

// SessionConfig holds all configuration for a live session.
type SessionConfig struct {
	// Model is the realtime model identifier.
	Model string `json:"model"`

	// Mode selects the persona and voice. Default: ModeCounselor.
	Mode Mode `json:"mode"`

	// SystemInstruction is the persona prompt sent during setup.
	SystemInstruction string `json:"system_instruction,omitempty"`

	// InputRate is the capture sample rate in Hz. Default: 16000.
	InputRate int `json:"input_rate"`

	// OutputRate is the playback sample rate in Hz. Default: 24000.
	OutputRate int `json:"output_rate"`

	// FrameSize is the number of samples per capture frame. Default: 4096.
	FrameSize int `json:"frame_size"`

	// CaptureQueueDepth is the maximum number of encoded frames buffered
	// between the microphone and the transport. When full, the oldest
	// frame is dropped. Default: 32.
	CaptureQueueDepth int `json:"capture_queue_depth"`

	// HandOffDelay is how long a session stays open before the one-shot
	// human hand-off prompt is injected. Default: 60s.
	HandOffDelay time.Duration `json:"hand_off_delay"`
}

// DefaultSessionConfig returns a SessionConfig with sensible defaults.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Model:             DefaultModel,
		Mode:              ModeCounselor,
		InputRate:         16000,
		OutputRate:        24000,
		FrameSize:         4096,
		CaptureQueueDepth: 32,
		HandOffDelay:      60 * time.Second,
	}
}

func (c *SessionConfig) applyDefaults() {
	d := DefaultSessionConfig()
	if c.Model == "" {
		c.Model = d.Model
	}
	if c.Mode == "" {
		c.Mode = d.Mode
	}
	if c.InputRate == 0 {
		c.InputRate = d.InputRate
	}
	if c.OutputRate == 0 {
		c.OutputRate = d.OutputRate
	}
	if c.FrameSize == 0 {
		c.FrameSize = d.FrameSize
	}
	if c.CaptureQueueDepth == 0 {
		c.CaptureQueueDepth = d.CaptureQueueDepth
	}
	if c.HandOffDelay == 0 {
		c.HandOffDelay = d.HandOffDelay
	}
}

// AudioConfig specifies audio format parameters.
type AudioConfig struct {
	// SampleRate in Hz. Common values: 16000, 24000.
	SampleRate int `json:"sample_rate"`

	// Channels: 1 for mono, 2 for stereo.
	Channels int `json:"channels"`

	// BitsPerSample: typically 16 for PCM.
	BitsPerSample int `json:"bits_per_sample"`
}

// CaptureAudioConfig returns the microphone-side audio format.
func CaptureAudioConfig() AudioConfig {
	return AudioConfig{SampleRate: 16000, Channels: 1, BitsPerSample: 16}
}

// PlaybackAudioConfig returns the model-output audio format.
func PlaybackAudioConfig() AudioConfig {
	return AudioConfig{SampleRate: 24000, Channels: 1, BitsPerSample: 16}
}

// BytesPerSecond returns the audio byte rate.
func (c AudioConfig) BytesPerSecond() int {
	return c.SampleRate * c.Channels * (c.BitsPerSample / 8)
}

// DurationMs returns the duration in milliseconds for the given byte count.
func (c AudioConfig) DurationMs(bytes int) int {
	if c.BytesPerSecond() == 0 {
		return 0
	}
	return (bytes * 1000) / c.BytesPerSecond()
}

// BytesForDurationMs returns the byte count for the given duration in milliseconds.
func (c AudioConfig) BytesForDurationMs(ms int) int {
	return (c.BytesPerSecond() * ms) / 1000
}
