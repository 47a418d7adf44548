package gridbeat

import (
	"strconv"
	"strings"
)

// PitchClasses is the table of note names recognised in cells. It has 11
// entries: there is no A#, so a pitch class index never reaches 11 and names
// cycle within the table.
var PitchClasses = [...]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "B"}

// DefaultOctave is used when a note name is written without an octave.
const DefaultOctave = 2

// DecodeCell parses the text of a note cell. It returns false for anything
// that is not a note: a rest, the empty cell or a partially typed cell.
//
// A note name ("C", "c#3", "G-1") is tried first, two-character names before
// one-character ones; the pitch is the index in PitchClasses plus 12 plus 12
// times the octave. Otherwise a signed 8-bit integer is taken verbatim as the
// pitch.
func DecodeCell(text string, step int) (Note, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Note{}, false
	}
	if pitch, ok := parseNoteName(s); ok {
		return newNote(step, pitch), true
	}
	if v, err := strconv.ParseInt(s, 10, 8); err == nil {
		return newNote(step, int(v)), true
	}
	return Note{}, false
}

func newNote(step, pitch int) Note {
	return Note{Timestamp: float32(step), Pitch: pitch, Velocity: DefaultVelocity}
}

func parseNoteName(s string) (int, bool) {
	for n := 2; n >= 1; n-- {
		if len(s) < n {
			continue
		}
		idx := pitchClassIndex(s[:n])
		if idx < 0 {
			continue
		}
		octave := int64(DefaultOctave)
		if rest := s[n:]; rest != "" {
			v, err := strconv.ParseInt(rest, 10, 8)
			if err != nil {
				continue
			}
			octave = v
		}
		return idx + 12 + int(octave)*12, true
	}
	return 0, false
}

func pitchClassIndex(name string) int {
	for i, p := range PitchClasses {
		if strings.EqualFold(p, name) {
			return i
		}
	}
	return -1
}

// DecodeParam parses the text of a parameter lane cell. Integers from 0 to
// 100 map to 0..1; anything else, out of range values included, is absent.
func DecodeParam(text string) (float32, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || v < 0 || v > 100 {
		return 0, false
	}
	return float32(v) / 100, true
}

// Decode translates the whole grid into a State. The State has one Track per
// column and every Track has g.Steps() slots; columns shorter than the first
// one decode their missing cells as rests. Parameter lane values are attached
// to the note on the same step and ignored on rests.
func Decode(g Grid) State {
	steps := g.Steps()
	ret := State{Tracks: make([]Track, len(g.Tracks))}
	for t, col := range g.Tracks {
		slots := make([]Slot, steps)
		for i := range slots {
			note, ok := DecodeCell(cellOrEmpty(col.Notes, i), i)
			if !ok {
				continue
			}
			for p, lane := range col.Lanes {
				if p >= int(NumParams) {
					break
				}
				if v, ok := DecodeParam(cellOrEmpty(lane, i)); ok {
					note.Parameters[p] = Some(v)
				}
			}
			slots[i] = Slot{Note: note, Ok: true}
		}
		ret.Tracks[t] = Track{Notes: slots}
	}
	return ret
}

func cellOrEmpty(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return EmptyCell
}

// Increment steps a cell by delta: integers are added to, bare note names
// move through PitchClasses cyclically. Other cells are returned unchanged
// together with false.
func Increment(text string, delta int) (string, bool) {
	s := strings.TrimSpace(text)
	if v, err := strconv.Atoi(s); err == nil {
		return strconv.Itoa(v + delta), true
	}
	if idx := pitchClassIndex(s); idx >= 0 {
		n := len(PitchClasses)
		return PitchClasses[((idx+delta)%n+n)%n], true
	}
	return text, false
}
