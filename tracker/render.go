package tracker

import (
	"math"

	"github.com/viterin/vek/vek32"
	"github.com/vsariola/gridbeat"
)

// Render plays grid offline through a fresh Player and returns the
// interleaved output of the given number of passes over the pattern.
func Render(grid gridbeat.Grid, voices []Voice, transport Transport, limiter LimiterSettings, passes, channels int) []float32 {
	broker := NewBroker()
	p := NewPlayer(broker, voices, transport, limiter)
	broker.ToPlayer.Send(gridbeat.Decode(grid))
	frames := int(math.Ceil(float64(grid.Steps()*passes) * max(transport.SamplesPerStep(), 1)))
	buf := make([]float32, frames*channels)
	p.Process(buf, channels)
	return buf
}

// Peak returns the largest absolute sample value in buf.
func Peak(buf []float32) float32 {
	if len(buf) == 0 {
		return 0
	}
	return max(vek32.Max(buf), -vek32.Min(buf))
}
