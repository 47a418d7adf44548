package gridbeat_test

import (
	"math"
	"testing"

	"github.com/vsariola/gridbeat"
)

func TestMIDIToFreq(t *testing.T) {
	for _, tt := range []struct {
		pitch int
		freq  float64
	}{{0, 8.175798}, {69, 440}, {127, 12543.855}} {
		if got := gridbeat.MIDIToFreq(tt.pitch); math.Abs(float64(got)-tt.freq) > tt.freq*1e-5 {
			t.Errorf("MIDIToFreq(%d) = %v, want %v", tt.pitch, got, tt.freq)
		}
	}
}

func TestFreqToMIDI(t *testing.T) {
	for _, tt := range []struct {
		freq  float32
		pitch int
	}{{8.17, 0}, {440, 69}, {12543.855, 127}} {
		if got := gridbeat.FreqToMIDI(tt.freq); got != tt.pitch {
			t.Errorf("FreqToMIDI(%v) = %d, want %d", tt.freq, got, tt.pitch)
		}
	}
}

func TestScaleLog(t *testing.T) {
	if got := gridbeat.ScaleLog(0, 20, 20000); got != 20 {
		t.Errorf("ScaleLog(0) = %v, want 20", got)
	}
	if got := gridbeat.ScaleLog(1, 20, 20000); math.Abs(float64(got)-20000) > 0.1 {
		t.Errorf("ScaleLog(1) = %v, want 20000", got)
	}
}
