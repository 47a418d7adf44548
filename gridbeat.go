/*
Package gridbeat contains the data types of the gridbeat step sequencer: the
editable text Grid, the decoded State that the audio engine plays, and the cell
grammar translating one into the other.

The Grid is what the user edits: a column of text cells per track, one cell
per step, with optional parameter lanes next to the note lane. The State is
the audio-ready form of a Grid and is produced only by Decode. The engine in
package tracker never sees a Grid; it only receives State snapshots.
*/
package gridbeat

import "fmt"

// EmptyCell is the placeholder text of a cell with no content. It is four
// characters wide so that columns line up in a monospace display.
const EmptyCell = "___ "

// DefaultVelocity is the velocity given to every decoded note.
const DefaultVelocity = 100

// Param identifies one of the per-note synthesis parameters.
type Param int

const (
	ParamEngine Param = iota
	ParamHarmonics
	ParamMorph
	ParamTimbre
	NumParams
)

var paramNames = [NumParams]string{"engine", "harmonics", "morph", "timbre"}

func (p Param) String() string {
	if p < 0 || p >= NumParams {
		return fmt.Sprintf("param(%d)", int(p))
	}
	return paramNames[p]
}

// ParseParam returns the Param with the given name.
func ParseParam(name string) (Param, bool) {
	for i, n := range paramNames {
		if n == name {
			return Param(i), true
		}
	}
	return 0, false
}
