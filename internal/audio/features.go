package audio

import (
	"math"
)

// Frame parameters match common speech-analysis defaults.
const (
	FrameLength = 2048
	HopLength   = 512

	// PitchMinHz and PitchMaxHz are the notes C2 and C7.
	PitchMinHz = 65.40639132514966
	PitchMaxHz = 2093.004522404789

	yinThreshold   = 0.1
	maxPitchFrames = 256
)

// Features summarizes a clip.
type Features struct {
	SampleRate int
	Duration   float64
	MeanRMS    float64
	MeanPitch  float64
}

// Analyzer decodes clips and computes Features.
type Analyzer struct{}

// NewAnalyzer returns an Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Extract decodes data and returns its mean RMS energy and mean pitch.
func (a *Analyzer) Extract(data []byte) (Features, error) {
	samples, sampleRate, err := Decode(data)
	if err != nil {
		return Features{}, err
	}
	pitch := PitchTrack(samples, sampleRate, PitchMinHz, PitchMaxHz)
	return Features{
		SampleRate: sampleRate,
		Duration:   float64(len(samples)) / float64(sampleRate),
		MeanRMS:    mean(RMS(samples)),
		MeanPitch:  mean(pitch),
	}, nil
}

// RMS returns the root-mean-square energy of each centered, zero-padded frame.
func RMS(samples []float64) []float64 {
	if len(samples) == 0 {
		return nil
	}
	pad := FrameLength / 2
	padded := make([]float64, len(samples)+2*pad)
	copy(padded[pad:], samples)

	var out []float64
	for start := 0; start+FrameLength <= len(padded); start += HopLength {
		out = append(out, calculateRMS(padded[start:start+FrameLength]))
	}
	return out
}

func calculateRMS(samples []float64) float64 {
	if len(samples) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, sample := range samples {
		sum += sample * sample
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// PitchTrack estimates the fundamental frequency per frame with the YIN method.
// Long clips are sampled down to a bounded number of evenly spaced frames.
func PitchTrack(samples []float64, sampleRate int, fmin, fmax float64) []float64 {
	if sampleRate <= 0 || fmin <= 0 || fmax <= fmin {
		return nil
	}
	minTau := int(math.Floor(float64(sampleRate) / fmax))
	maxTau := int(math.Ceil(float64(sampleRate) / fmin))
	if minTau < 1 {
		minTau = 1
	}
	if maxTau >= FrameLength {
		maxTau = FrameLength - 1
	}
	if minTau >= maxTau || len(samples) < FrameLength {
		return nil
	}

	frames := (len(samples)-FrameLength)/HopLength + 1
	stride := 1
	if frames > maxPitchFrames {
		stride = (frames + maxPitchFrames - 1) / maxPitchFrames
	}

	window := FrameLength - maxTau
	diff := make([]float64, maxTau+1)
	var out []float64
	for f := 0; f < frames; f += stride {
		frame := samples[f*HopLength : f*HopLength+FrameLength]
		out = append(out, yinFrame(frame, diff, window, minTau, maxTau, sampleRate))
	}
	return out
}

func yinFrame(frame, diff []float64, window, minTau, maxTau, sampleRate int) float64 {
	for tau := 1; tau <= maxTau; tau++ {
		sum := 0.0
		for j := 0; j < window; j++ {
			d := frame[j] - frame[j+tau]
			sum += d * d
		}
		diff[tau] = sum
	}

	// Cumulative mean normalized difference.
	diff[0] = 1
	running := 0.0
	for tau := 1; tau <= maxTau; tau++ {
		running += diff[tau]
		if running == 0 {
			diff[tau] = 1
			continue
		}
		diff[tau] = diff[tau] * float64(tau) / running
	}

	best := -1
	for tau := minTau; tau < maxTau; tau++ {
		if diff[tau] < yinThreshold && diff[tau] <= diff[tau+1] {
			best = tau
			break
		}
	}
	if best < 0 {
		best = minTau
		for tau := minTau + 1; tau <= maxTau; tau++ {
			if diff[tau] < diff[best] {
				best = tau
			}
		}
	}

	period := float64(best)
	if best > minTau && best < maxTau {
		prev, cur, next := diff[best-1], diff[best], diff[best+1]
		if denom := prev - 2*cur + next; denom != 0 {
			period += 0.5 * (prev - next) / denom
		}
	}
	return float64(sampleRate) / period
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
