// Package audio decodes short voice clips and extracts coarse energy and pitch features.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ErrUnsupportedFormat is returned for clips that are not PCM WAV.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Decode reads a PCM WAV clip and returns mono samples in [-1, 1] and the sample rate.
func Decode(data []byte) ([]float64, int, error) {
	if len(data) == 0 {
		return nil, 0, fmt.Errorf("empty audio clip")
	}

	decoder := wav.NewDecoder(bytes.NewReader(data))
	decoder.ReadInfo()
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("%w: detected %s", ErrUnsupportedFormat, Container(data))
	}

	divisor, err := sampleDivisor(int(decoder.BitDepth))
	if err != nil {
		return nil, 0, err
	}
	if decoder.NumChans == 0 {
		return nil, 0, fmt.Errorf("invalid channel count: %d", decoder.NumChans)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read pcm data: %w", err)
	}
	samples := toMono(buf, int(decoder.NumChans), divisor)
	if len(samples) == 0 {
		return nil, 0, fmt.Errorf("audio clip has no samples")
	}
	return samples, int(decoder.SampleRate), nil
}

// Container sniffs the media type of a clip, e.g. audio/wave or video/webm.
func Container(data []byte) string {
	return http.DetectContentType(data)
}

func sampleDivisor(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16:
		return 32768.0, nil
	case 24:
		return 8388608.0, nil
	case 32:
		return 2147483648.0, nil
	default:
		return 0, fmt.Errorf("unsupported bit depth: %d", bitDepth)
	}
}

// toMono averages interleaved channels.
func toMono(buf *audio.IntBuffer, channels int, divisor float64) []float64 {
	if buf == nil || len(buf.Data) == 0 {
		return nil
	}
	frames := len(buf.Data) / channels
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i*channels+c])
		}
		out[i] = sum / float64(channels) / divisor
	}
	return out
}
