// Package live implements realtime bidirectional voice counseling sessions.
//
// A Session owns one conversation with the realtime audio model: it
// acquires the microphone, dials the service over a websocket, streams
// 16 kHz PCM capture frames up, and schedules the model's 24 kHz PCM
// replies for gapless playback. The model can interrupt its own speech,
// call the image-generation tool mid-conversation, and receive uploaded
// documents in-band.
//
// # Components
//
//   - Session: lifecycle state machine and orchestrator
//   - Scheduler: cursor-based gapless playback with interruption
//   - frameQueue: bounded capture backpressure (drop-oldest)
//   - toolDispatcher: correlated tool-call execution and response
//   - handOffTimer: one-shot human hand-off prompt per open session
//
// # Data Flow
//
//	Mic → CaptureSource → EncodePCM16 → frameQueue → Transport
//
//	Transport → readLoop → Scheduler → Output
//	                └─ toolDispatcher → ImageGenerator
//
// The transport, capture source, output device, clock, and image
// generator are all injected so the full pipeline runs against fakes in
// tests.
package live
