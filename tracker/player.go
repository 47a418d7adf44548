package tracker

import (
	"sync/atomic"

	"github.com/viterin/vek/vek32"
	"github.com/vsariola/gridbeat"
)

type (
	// Player is the scheduling and mixing engine, run in the audio callback.
	// It owns its working copy of the decoded state and the transport clock.
	// The model sends it new states through Broker.ToPlayer; the player sends
	// the current step back through Broker.ToModel. Nothing in Process or
	// Tick blocks, locks or allocates once the first state is installed.
	Player struct {
		state   gridbeat.State
		voices  []Voice
		samples []float32 // one rendered sample per voice, reused every tick
		limiter *Limiter

		samplesPerStep float64
		step           int     // current whole step
		elapsed        float64 // samples played within the current step
		started        bool
		lastSent       int
		position       atomic.Int64

		broker *Broker
	}

	// Voice is the sound source of one track. The player calls ResetPatch and
	// then ApplyParameter for each parameter present on a note before NoteOn,
	// so per note overrides never leak into later notes. Render is called once
	// per sample.
	Voice interface {
		ResetPatch()
		ApplyParameter(p gridbeat.Param, v float32)
		NoteOn(pitch, velocity int)
		Render() float32
	}

	// Transport describes the timing of the clock.
	Transport struct {
		SampleRate   int
		BPM          float64
		StepsPerBeat int
	}

	// LimiterSettings are the attack and release times in milliseconds and
	// the threshold of the output limiter.
	LimiterSettings struct {
		AttackMs  float32
		ReleaseMs float32
		Threshold float32
	}
)

// SamplesPerStep returns the length of one step in samples.
func (t Transport) SamplesPerStep() float64 {
	if t.BPM <= 0 || t.StepsPerBeat <= 0 {
		return float64(t.SampleRate)
	}
	return float64(t.SampleRate) * 60 / (t.BPM * float64(t.StepsPerBeat))
}

// NewPlayer returns a player with one voice per track. The player plays
// silence and holds its clock until the first non-empty state arrives.
func NewPlayer(broker *Broker, voices []Voice, transport Transport, limiter LimiterSettings) *Player {
	p := &Player{
		voices:   voices,
		samples:  make([]float32, len(voices)),
		limiter:  NewLimiter(limiter.AttackMs, limiter.ReleaseMs, limiter.Threshold, transport.SampleRate),
		broker:   broker,
		lastSent: -1,
	}
	p.samplesPerStep = max(transport.SamplesPerStep(), 1)
	p.position.Store(-1)
	return p
}

// Process fills buf with interleaved frames of the given channel count. A
// waiting state is installed once, before the first frame, so that all the
// frames of one buffer are rendered from the same state.
func (p *Player) Process(buf []float32, channels int) {
	if channels < 1 {
		return
	}
	p.receive()
	for i := 0; i+channels <= len(buf); i += channels {
		v := p.Tick()
		for c := 0; c < channels; c++ {
			buf[i+c] = v
		}
	}
}

func (p *Player) receive() {
	if s, ok := p.broker.ToPlayer.TryReceive(); ok {
		p.install(s)
	}
}

// install replaces the working state wholesale. If the new state is
// shorter, the clock wraps into it; no step is retriggered.
func (p *Player) install(s gridbeat.State) {
	p.state = s
	if n := s.Steps(); n > 0 && p.step >= n {
		p.step %= n
	}
}

// Tick advances the clock by one sample, triggers the notes of a newly
// entered step and returns the limited mix of all voices.
func (p *Player) Tick() float32 {
	p.advance()
	for i, v := range p.voices {
		p.samples[i] = v.Render()
	}
	var mix float32
	if len(p.samples) > 0 {
		mix = vek32.Sum(p.samples) / float32(len(p.samples))
	}
	return p.limiter.Tick(mix)
}

func (p *Player) advance() {
	length := p.state.Steps()
	if length == 0 {
		return
	}
	if !p.started {
		p.started = true
		p.enterStep()
		return
	}
	p.elapsed++
	for p.elapsed >= p.samplesPerStep {
		p.elapsed -= p.samplesPerStep
		p.step++
		if p.step >= length {
			p.step = 0
		}
		p.enterStep()
	}
}

func (p *Player) enterStep() {
	if p.step != p.lastSent {
		p.lastSent = p.step
		p.position.Store(int64(p.step))
		// a closed model is not the player's problem: keep playing
		_ = p.broker.ToModel.Send(p.step)
	}
	for t, track := range p.state.Tracks {
		if t >= len(p.voices) || p.step >= len(track.Notes) {
			continue
		}
		slot := track.Notes[p.step]
		if !slot.Ok {
			continue
		}
		v := p.voices[t]
		v.ResetPatch()
		for i, o := range slot.Note.Parameters {
			if val, ok := o.Unpack(); ok {
				v.ApplyParameter(gridbeat.Param(i), val)
			}
		}
		v.NoteOn(slot.Note.Pitch, slot.Note.Velocity)
	}
}

// Position returns the last whole step the clock entered, or -1 before the
// first tick. Safe to call from any goroutine.
func (p *Player) Position() int { return int(p.position.Load()) }

// Clock returns the fractional transport position in steps.
func (p *Player) Clock() float64 { return float64(p.step) + p.elapsed/p.samplesPerStep }

// Close tells the editing side that the player is gone: further states sent
// to it fail with ErrDisconnected.
func (p *Player) Close() { p.broker.ToPlayer.Close() }
