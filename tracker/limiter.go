package tracker

import "math"

// Limiter is a peak envelope follower that scales the signal by
// threshold/envelope whenever the envelope goes above the threshold. It has
// no look ahead, so short transients can pass before the gain comes down.
type Limiter struct {
	attack, release float32
	threshold       float32
	envelope        float32
}

const (
	DefaultAttackMs  = 10
	DefaultReleaseMs = 500
	DefaultThreshold = 1
)

// NewLimiter returns a Limiter with the given attack and release times in
// milliseconds.
func NewLimiter(attackMs, releaseMs, threshold float32, sampleRate int) *Limiter {
	return &Limiter{
		attack:    timeCoefficient(attackMs, sampleRate),
		release:   timeCoefficient(releaseMs, sampleRate),
		threshold: threshold,
	}
}

// timeCoefficient is the one-pole coefficient that takes the envelope 99% of
// the way to its target in ms milliseconds.
func timeCoefficient(ms float32, sampleRate int) float32 {
	n := float64(ms) * float64(sampleRate) * 0.001
	if n <= 0 {
		return 0
	}
	return float32(math.Pow(0.01, 1/n))
}

// Tick processes one sample.
func (l *Limiter) Tick(x float32) float32 {
	v := x
	if v < 0 {
		v = -v
	}
	coef := l.release
	if v > l.envelope {
		coef = l.attack
	}
	l.envelope = coef*(l.envelope-v) + v
	if l.envelope > l.threshold {
		return x * l.threshold / l.envelope
	}
	return x
}

func (l *Limiter) Envelope() float32 { return l.envelope }

func (l *Limiter) Reset() { l.envelope = 0 }
