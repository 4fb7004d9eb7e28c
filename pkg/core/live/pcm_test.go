package live

import (
	"math"
	"testing"
)

func TestEncodePCM16(t *testing.T) {
	tests := []struct {
		name    string
		samples []float32
		want    []byte
	}{
		{
			name:    "silence",
			samples: []float32{0, 0},
			want:    []byte{0, 0, 0, 0},
		},
		{
			name:    "half amplitude",
			samples: []float32{0.5},
			want:    []byte{0x00, 0x40}, // 16384 LE
		},
		{
			name:    "negative half",
			samples: []float32{-0.5},
			want:    []byte{0x00, 0xC0}, // -16384 LE
		},
		{
			name:    "positive clamp",
			samples: []float32{1.0},
			want:    []byte{0xFF, 0x7F}, // 32767 LE
		},
		{
			name:    "negative full scale",
			samples: []float32{-1.0},
			want:    []byte{0x00, 0x80}, // -32768 LE
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodePCM16(tt.samples)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("byte[%d] = %#x, want %#x", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDecodePCM16_Mono(t *testing.T) {
	// 16384, -16384 as little-endian int16
	pcm := []byte{0x00, 0x40, 0x00, 0xC0}

	chans, err := DecodePCM16(pcm, 1)
	if err != nil {
		t.Fatalf("DecodePCM16 error: %v", err)
	}
	if len(chans) != 1 {
		t.Fatalf("channels = %d, want 1", len(chans))
	}
	want := []float32{0.5, -0.5}
	for i, v := range want {
		if math.Abs(float64(chans[0][i]-v)) > 1e-6 {
			t.Errorf("sample[%d] = %v, want %v", i, chans[0][i], v)
		}
	}
}

func TestDecodePCM16_DeinterleavesStereo(t *testing.T) {
	// Interleaved L R L R: 100, 200, 300, 400
	pcm := make([]byte, 8)
	for i, v := range []int16{100, 200, 300, 400} {
		pcm[i*2] = byte(v)
		pcm[i*2+1] = byte(v >> 8)
	}

	chans, err := DecodePCM16(pcm, 2)
	if err != nil {
		t.Fatalf("DecodePCM16 error: %v", err)
	}
	if len(chans) != 2 || len(chans[0]) != 2 || len(chans[1]) != 2 {
		t.Fatalf("unexpected shape: %d channels", len(chans))
	}

	wantL := []int16{100, 300}
	wantR := []int16{200, 400}
	for i := range wantL {
		if got := chans[0][i] * 32768; int16(got) != wantL[i] {
			t.Errorf("left[%d] = %v, want %d", i, got, wantL[i])
		}
		if got := chans[1][i] * 32768; int16(got) != wantR[i] {
			t.Errorf("right[%d] = %v, want %d", i, got, wantR[i])
		}
	}
}

func TestDecodePCM16_InvalidChannels(t *testing.T) {
	if _, err := DecodePCM16([]byte{0, 0}, 0); err == nil {
		t.Error("expected error for zero channels")
	}
}

func TestPCMRoundTrip(t *testing.T) {
	samples := make([]float32, 512)
	for i := range samples {
		samples[i] = float32(math.Sin(float64(i) * 0.1))
	}

	chans, err := DecodePCM16(EncodePCM16(samples), 1)
	if err != nil {
		t.Fatalf("DecodePCM16 error: %v", err)
	}

	const tolerance = 1.0 / 32768.0
	for i, orig := range samples {
		if diff := math.Abs(float64(chans[0][i] - orig)); diff > tolerance {
			t.Fatalf("sample[%d]: diff %v exceeds %v (orig %v, got %v)", i, diff, tolerance, orig, chans[0][i])
		}
	}
}

func TestCalculateRMSEnergy(t *testing.T) {
	tests := []struct {
		name     string
		samples  []int16
		expected float64
	}{
		{
			name:     "silence",
			samples:  []int16{0, 0, 0, 0},
			expected: 0.0,
		},
		{
			name:     "full scale",
			samples:  []int16{32767, 32767},
			expected: 0.99997,
		},
		{
			name:     "half scale",
			samples:  []int16{16384, -16384},
			expected: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateRMSEnergy(pcmFromInt16(tt.samples))
			if math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("RMS = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCalculatePeakAmplitude(t *testing.T) {
	samples := []int16{100, -32768, 5000}
	got := CalculatePeakAmplitude(pcmFromInt16(samples))
	if math.Abs(got-1.0) > 0.0001 {
		t.Errorf("peak = %v, want 1.0", got)
	}

	if got := CalculatePeakAmplitude(nil); got != 0 {
		t.Errorf("peak of empty = %v, want 0", got)
	}
}

// pcmFromInt16 packs int16 samples little-endian for tests.
func pcmFromInt16(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		out[i*2] = byte(s)
		out[i*2+1] = byte(s >> 8)
	}
	return out
}
