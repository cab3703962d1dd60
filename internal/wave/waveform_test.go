package wave

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestGenerateNegativePoints(t *testing.T) {
	_, err := Generate(nil, -1, 0.5)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestGenerateZeroPoints(t *testing.T) {
	w, err := Generate(nil, 0, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.Samples) != 0 {
		t.Fatalf("expected no samples, got %d", len(w.Samples))
	}
}

func TestGenerateAlternatesSign(t *testing.T) {
	w, err := Generate(rand.New(rand.NewSource(7)), 20, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.Samples) != 20 {
		t.Fatalf("expected 20 samples, got %d", len(w.Samples))
	}
	for i, s := range w.Samples {
		mag := math.Abs(s)
		if mag < 0.2 || mag >= 0.4 {
			t.Fatalf("sample %d magnitude %v out of [0.2, 0.4)", i, mag)
		}
		if (i%2 == 0) != (s > 0) {
			t.Fatalf("sample %d has wrong sign: %v", i, s)
		}
	}
	if w.LengthScale != 9.5 {
		t.Fatalf("expected length scale 9.5, got %v", w.LengthScale)
	}
}

func TestPixelWidth(t *testing.T) {
	if got := (Waveform{LengthScale: 9.5}).PixelWidth(80); got != 760 {
		t.Fatalf("expected 760, got %d", got)
	}
	if got := (Waveform{LengthScale: 0.25}).PixelWidth(80); got != 80 {
		t.Fatalf("expected the view width as a floor, got %d", got)
	}
}
