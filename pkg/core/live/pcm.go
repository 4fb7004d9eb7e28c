package live

import (
	"math"

	"github.com/collegegate/collegegate/pkg/core"
)

// EncodePCM16 converts float32 samples in [-1, 1] to 16-bit signed
// little-endian PCM. Samples are scaled by 32768 and truncated; values
// outside the valid range are clamped.
func EncodePCM16(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		v := int32(s * 32768)
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		out[i*2] = byte(v)
		out[i*2+1] = byte(v >> 8)
	}
	return out
}

// DecodePCM16 converts 16-bit signed little-endian PCM into per-channel
// float32 sample slices. Interleaved frames are split round-robin across
// channels. A trailing odd byte is ignored.
func DecodePCM16(data []byte, channels int) ([][]float32, error) {
	if channels < 1 {
		return nil, core.NewInvalidRequestError("channel count must be positive")
	}
	total := len(data) / 2
	perChannel := total / channels
	out := make([][]float32, channels)
	for ch := range out {
		out[ch] = make([]float32, perChannel)
	}
	for i := 0; i < perChannel*channels; i++ {
		sample := int16(data[i*2]) | int16(data[i*2+1])<<8
		out[i%channels][i/channels] = float32(sample) / 32768.0
	}
	return out, nil
}

// CalculateRMSEnergy computes the root-mean-square energy of PCM audio.
// Input is assumed to be 16-bit signed little-endian PCM.
// Returns a value between 0.0 and 1.0.
func CalculateRMSEnergy(pcm []byte) float64 {
	samples := len(pcm) / 2
	if samples == 0 {
		return 0
	}

	var sum float64
	for i := 0; i < len(pcm)-1; i += 2 {
		sample := int16(pcm[i]) | int16(pcm[i+1])<<8
		normalized := float64(sample) / 32768.0
		sum += normalized * normalized
	}

	return math.Sqrt(sum / float64(samples))
}

// CalculatePeakAmplitude returns the maximum absolute amplitude in the PCM data.
// Returns a value between 0.0 and 1.0.
func CalculatePeakAmplitude(pcm []byte) float64 {
	if len(pcm) < 2 {
		return 0
	}

	var maxAbs float64
	for i := 0; i < len(pcm)-1; i += 2 {
		sample := int16(pcm[i]) | int16(pcm[i+1])<<8
		// Use float64 to avoid overflow when negating -32768
		abs := math.Abs(float64(sample))
		if abs > maxAbs {
			maxAbs = abs
		}
	}

	return maxAbs / 32768.0
}
