package main

import (
	"runtime"
	"strings"
	"testing"
)

func TestMicSourceFFmpegArgs(t *testing.T) {
	m := newMicSource(2, "", 4096)
	args := strings.Join(m.ffmpegArgs(), " ")
	if !strings.Contains(args, "-ar 16000") || !strings.Contains(args, "-f s16le") {
		t.Errorf("capture format missing from args: %q", args)
	}
	if !strings.Contains(args, "-ac 1") {
		t.Errorf("expected mono capture: %q", args)
	}
	if runtime.GOOS == "darwin" && !strings.Contains(args, "none:2") {
		t.Errorf("expected avfoundation device index: %q", args)
	}
}

func TestNewMicSource_FrameSizeDefault(t *testing.T) {
	m := newMicSource(0, "", 0)
	if m.frameSize != 4096 {
		t.Errorf("frameSize = %d, want 4096", m.frameSize)
	}
}

func TestNewFFPlaySpeaker_Defaults(t *testing.T) {
	s := newFFPlaySpeaker("", 24000, 0)
	if s.path != "ffplay" || s.volume != 80 {
		t.Errorf("unexpected defaults: path=%q volume=%d", s.path, s.volume)
	}
}

func TestFFPlaySpeaker_WriteWithoutProcess(t *testing.T) {
	s := newFFPlaySpeaker("ffplay", 24000, 80)
	if err := s.Write([]byte{0, 0}); err == nil {
		t.Error("expected error writing before start")
	}
}
