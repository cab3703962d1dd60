package wave

import (
	"errors"
	"fmt"
	"math/rand"
)

var ErrInvalidArgument = errors.New("invalid argument")

// Waveform holds alternating-sign amplitudes in [-0.4, 0.4]. It is replaced,
// never mutated, each time the view rebuilds its bitmap.
type Waveform struct {
	Samples     []float64
	LengthScale float64
}

// Generate returns numPoints samples, each with a random magnitude in
// [0.2, 0.4), positive at even indexes and negative at odd ones.
// A nil rng draws from the global source.
func Generate(rng *rand.Rand, numPoints int, lengthScaleFactor float64) (Waveform, error) {
	if numPoints < 0 {
		return Waveform{}, fmt.Errorf("%w: need at least some points, got %d", ErrInvalidArgument, numPoints)
	}

	samples := make([]float64, numPoints)
	for i := range samples {
		magnitude := 0.2 + float64Of(rng)*0.2
		if i%2 != 0 {
			magnitude = -magnitude
		}
		samples[i] = magnitude
	}

	return Waveform{
		Samples:     samples,
		LengthScale: float64(numPoints-1) * lengthScaleFactor,
	}, nil
}

// PixelWidth is the width one period of the waveform occupies when drawn
// into a view viewWidth pixels wide. It is never narrower than the view.
func (w Waveform) PixelWidth(viewWidth int) int {
	return max(viewWidth, int(float64(viewWidth)*w.LengthScale))
}

func float64Of(rng *rand.Rand) float64 {
	if rng == nil {
		return rand.Float64()
	}
	return rng.Float64()
}
