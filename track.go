package gridbeat

type (
	// Note is an immutable trigger decoded from a cell. Pitch is not clamped
	// to any range; voices decide what to do with unusual values.
	Note struct {
		Timestamp  float32
		Pitch      int
		Velocity   int
		Parameters Parameters
	}

	// Optional is a parameter value that may be absent. An absent value means
	// "keep whatever the voice has", never zero.
	Optional struct {
		Value float32
		Set   bool
	}

	// Parameters are the per-note overrides, indexed by Param.
	Parameters [NumParams]Optional

	// Slot is one step of a decoded track; Ok is false for a rest.
	Slot struct {
		Note Note
		Ok   bool
	}

	// Track is the decoded form of a Column: one Slot per step.
	Track struct {
		Notes []Slot
	}

	// State is the decoded form of a Grid. It is handed to the audio engine
	// as a whole and never modified after Decode returns it.
	State struct {
		Tracks []Track
	}
)

// Some returns a present Optional.
func Some(v float32) Optional { return Optional{Value: v, Set: true} }

// Unpack returns the value and whether it is present.
func (o Optional) Unpack() (float32, bool) { return o.Value, o.Set }

// Steps returns the number of steps per track.
func (s State) Steps() int {
	if len(s.Tracks) == 0 {
		return 0
	}
	return len(s.Tracks[0].Notes)
}

// NoteAt returns the note of track at step, if there is one.
func (s State) NoteAt(track, step int) (Note, bool) {
	if track < 0 || track >= len(s.Tracks) {
		return Note{}, false
	}
	notes := s.Tracks[track].Notes
	if step < 0 || step >= len(notes) {
		return Note{}, false
	}
	return notes[step].Note, notes[step].Ok
}

// Equal reports whether two states would play identically.
func (s State) Equal(o State) bool {
	if len(s.Tracks) != len(o.Tracks) {
		return false
	}
	for i := range s.Tracks {
		a, b := s.Tracks[i].Notes, o.Tracks[i].Notes
		if len(a) != len(b) {
			return false
		}
		for j := range a {
			if a[j] != b[j] {
				return false
			}
		}
	}
	return true
}
