package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/collegegate/collegegate/pkg/core/live"
)

// micSource captures 16 kHz mono PCM from the default microphone via
// ffmpeg and hands fixed-size float frames to the session.
type micSource struct {
	device      int
	cmdOverride string
	frameSize   int

	mu     sync.Mutex
	cmd    *exec.Cmd
	cancel context.CancelFunc
}

func newMicSource(device int, cmdOverride string, frameSize int) *micSource {
	if frameSize <= 0 {
		frameSize = 4096
	}
	return &micSource{device: device, cmdOverride: cmdOverride, frameSize: frameSize}
}

func (m *micSource) Start(ctx context.Context) (<-chan []float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cmd != nil {
		return nil, fmt.Errorf("microphone already capturing")
	}

	ctx, cancel := context.WithCancel(ctx)

	var cmd *exec.Cmd
	if strings.TrimSpace(m.cmdOverride) != "" {
		cmd = exec.CommandContext(ctx, "/bin/sh", "-lc", m.cmdOverride)
	} else {
		cmd = exec.CommandContext(ctx, "ffmpeg", m.ffmpegArgs()...)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, err
	}
	cmd.Stderr = io.Discard
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, err
	}
	m.cmd = cmd
	m.cancel = cancel

	frames := make(chan []float32, 8)
	go m.readLoop(ctx, stdout, frames)
	return frames, nil
}

func (m *micSource) ffmpegArgs() []string {
	args := []string{"-hide_banner", "-loglevel", "error"}
	if runtime.GOOS == "darwin" {
		// `none:<index>` keeps ffmpeg away from the camera.
		args = append(args, "-f", "avfoundation", "-i", fmt.Sprintf("none:%d", m.device))
	} else {
		args = append(args, "-f", "alsa", "-i", "default")
	}
	return append(args, "-ac", "1", "-ar", "16000", "-f", "s16le", "-")
}

func (m *micSource) readLoop(ctx context.Context, stdout io.Reader, frames chan<- []float32) {
	defer close(frames)
	reader := bufio.NewReaderSize(stdout, 64*1024)
	raw := make([]byte, m.frameSize*2)
	for {
		if _, err := io.ReadFull(reader, raw); err != nil {
			return
		}
		channels, err := live.DecodePCM16(raw, 1)
		if err != nil {
			return
		}
		select {
		case frames <- channels[0]:
		case <-ctx.Done():
			return
		}
	}
}

func (m *micSource) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.cmd != nil && m.cmd.Process != nil {
		_ = m.cmd.Process.Kill()
		_, _ = m.cmd.Process.Wait()
	}
	m.cmd = nil
	return nil
}

// ffplaySpeaker streams 24 kHz mono PCM to a persistent ffplay child
// process.
type ffplaySpeaker struct {
	path       string
	sampleRate int
	volume     int

	mu    sync.Mutex
	cmd   *exec.Cmd
	stdin io.WriteCloser
}

func newFFPlaySpeaker(path string, sampleRate, volume int) *ffplaySpeaker {
	if strings.TrimSpace(path) == "" {
		path = "ffplay"
	}
	if volume <= 0 {
		volume = 80
	}
	return &ffplaySpeaker{path: path, sampleRate: sampleRate, volume: volume}
}

func (s *ffplaySpeaker) EnsureRunning() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLocked()
}

func (s *ffplaySpeaker) startLocked() error {
	if s.cmd != nil && s.cmd.Process != nil {
		return nil
	}
	// ffplay does not accept ffmpeg-style `-ac`; use `-ch_layout mono`.
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-nostats",
		"-volume", fmt.Sprintf("%d", s.volume),
		"-nodisp",
		"-f", "s16le",
		"-ch_layout", "mono",
		"-ar", fmt.Sprintf("%d", s.sampleRate),
		"-i", "-",
	}
	cmd := exec.Command(s.path, args...)
	if runtime.GOOS == "darwin" && os.Getenv("SDL_AUDIODRIVER") == "" {
		// SDL can pick a silent dummy backend on macOS; prefer CoreAudio.
		cmd.Env = append(os.Environ(), "SDL_AUDIODRIVER=coreaudio")
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	cmd.Stdout = io.Discard
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		_ = stdin.Close()
		return err
	}
	s.cmd = cmd
	s.stdin = stdin
	go func(c *exec.Cmd) {
		_ = c.Wait()
		s.mu.Lock()
		if s.cmd == c {
			s.cmd = nil
			s.stdin = nil
		}
		s.mu.Unlock()
	}(cmd)
	return nil
}

func (s *ffplaySpeaker) Write(p []byte) error {
	s.mu.Lock()
	stdin := s.stdin
	s.mu.Unlock()
	if stdin == nil {
		return fmt.Errorf("ffplay is not running")
	}
	_, err := stdin.Write(p)
	return err
}

// Restart kills the child and starts a fresh one, discarding whatever
// audio ffplay had buffered.
func (s *ffplaySpeaker) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
	return s.startLocked()
}

func (s *ffplaySpeaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
	return nil
}

func (s *ffplaySpeaker) closeLocked() {
	if s.stdin != nil {
		_ = s.stdin.Close()
	}
	if s.cmd != nil && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	s.cmd = nil
	s.stdin = nil
}

// speakerOutput adapts ffplaySpeaker to the session's playback
// interface. Audio is written to ffplay as soon as it is scheduled;
// ffplay plays chunks back to back, so voice end is approximated with
// a timer over the buffer duration.
type speakerOutput struct {
	speaker *ffplaySpeaker
}

func newSpeakerOutput(speaker *ffplaySpeaker) *speakerOutput {
	return &speakerOutput{speaker: speaker}
}

func (o *speakerOutput) Resume() error {
	return o.speaker.EnsureRunning()
}

func (o *speakerOutput) Play(buf *live.Buffer, _ time.Duration, onEnded func()) (live.Voice, error) {
	if len(buf.Channels) == 0 {
		return nil, fmt.Errorf("empty buffer")
	}
	if err := o.speaker.Write(live.EncodePCM16(buf.Channels[0])); err != nil {
		return nil, err
	}
	v := &speakerVoice{speaker: o.speaker}
	v.timer = time.AfterFunc(buf.Duration(), onEnded)
	return v, nil
}

func (o *speakerOutput) Close() error {
	return o.speaker.Close()
}

type speakerVoice struct {
	speaker *ffplaySpeaker
	timer   *time.Timer
}

// Stop cancels the end timer and flushes ffplay so the remaining audio
// is not played. Stopping an already-finished voice is a no-op.
func (v *speakerVoice) Stop() {
	if v.timer.Stop() {
		_ = v.speaker.Restart()
	}
}
