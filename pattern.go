package gridbeat

import "golang.org/x/exp/slices"

type (
	// Grid is the editable pattern: one Column per track. Every cell is
	// always present; a cell with no content holds EmptyCell.
	Grid struct {
		Tracks []Column
	}

	// Column holds the cells of one track. Notes has one cell per step. Lanes
	// are the optional parameter rows of the track, indexed by Param; a nil
	// lane means the track does not encode that parameter.
	Column struct {
		Name  string     `yaml:",omitempty" json:",omitempty"`
		Notes []string   `yaml:",flow"`
		Lanes [][]string `yaml:",flow,omitempty" json:",omitempty"`
	}

	// ColumnLayout describes a column when creating a new Grid.
	ColumnLayout struct {
		Name       string
		ParamLanes bool
	}

	// Lane addresses a row of cells inside a Column: NoteLane or one of the
	// parameter lanes returned by ParamLane.
	Lane int
)

const NoteLane Lane = 0

// ParamLane returns the Lane holding the cells of parameter p.
func ParamLane(p Param) Lane { return Lane(p) + 1 }

// Param returns the parameter of a parameter lane. ok is false for NoteLane.
func (l Lane) Param() (p Param, ok bool) {
	if l <= NoteLane || l > Lane(NumParams) {
		return 0, false
	}
	return Param(l - 1), true
}

// NewGrid returns a Grid with the given number of steps and one column per
// layout entry, every cell set to EmptyCell.
func NewGrid(steps int, layout []ColumnLayout) Grid {
	g := Grid{Tracks: make([]Column, len(layout))}
	for i, l := range layout {
		c := Column{Name: l.Name, Notes: emptyCells(steps)}
		if l.ParamLanes {
			c.Lanes = make([][]string, NumParams)
			for p := range c.Lanes {
				c.Lanes[p] = emptyCells(steps)
			}
		}
		g.Tracks[i] = c
	}
	return g
}

func emptyCells(n int) []string {
	ret := make([]string, n)
	for i := range ret {
		ret[i] = EmptyCell
	}
	return ret
}

// Steps returns the number of steps in the Grid, i.e. the length of the note
// lane of the first track. Shorter columns are treated as if padded with
// empty cells.
func (g Grid) Steps() int {
	if len(g.Tracks) == 0 {
		return 0
	}
	return len(g.Tracks[0].Notes)
}

// Copy makes a deep copy of the Grid.
func (g Grid) Copy() Grid {
	ret := Grid{Tracks: make([]Column, len(g.Tracks))}
	for i, c := range g.Tracks {
		ret.Tracks[i] = c.Copy()
	}
	return ret
}

// Copy makes a deep copy of the Column.
func (c Column) Copy() Column {
	ret := Column{Name: c.Name, Notes: slices.Clone(c.Notes)}
	if c.Lanes != nil {
		ret.Lanes = make([][]string, len(c.Lanes))
		for i, l := range c.Lanes {
			ret.Lanes[i] = slices.Clone(l)
		}
	}
	return ret
}

// Equal reports whether two grids have identical cells.
func (g Grid) Equal(o Grid) bool {
	return slices.EqualFunc(g.Tracks, o.Tracks, func(a, b Column) bool {
		return a.Name == b.Name && slices.Equal(a.Notes, b.Notes) &&
			slices.EqualFunc(a.Lanes, b.Lanes, func(x, y []string) bool { return slices.Equal(x, y) })
	})
}

// Lane returns the cells of the given lane, or nil if the column does not
// have that lane.
func (c Column) Lane(l Lane) []string {
	if l == NoteLane {
		return c.Notes
	}
	p, ok := l.Param()
	if !ok || int(p) >= len(c.Lanes) {
		return nil
	}
	return c.Lanes[p]
}

// NumLanes returns the number of lanes of the column, counting the note lane.
func (c Column) NumLanes() int {
	return 1 + len(c.Lanes)
}

// Cell returns the text at the given position; EmptyCell if the position is
// out of range.
func (g Grid) Cell(track int, lane Lane, step int) string {
	if track < 0 || track >= len(g.Tracks) {
		return EmptyCell
	}
	cells := g.Tracks[track].Lane(lane)
	if step < 0 || step >= len(cells) {
		return EmptyCell
	}
	return cells[step]
}

// SetCell sets the text at the given position. Positions out of range are
// left alone and false is returned. SetCell mutates the grid in place, so
// callers holding snapshots should Copy first.
func (g Grid) SetCell(track int, lane Lane, step int, text string) bool {
	if track < 0 || track >= len(g.Tracks) {
		return false
	}
	cells := g.Tracks[track].Lane(lane)
	if step < 0 || step >= len(cells) {
		return false
	}
	cells[step] = text
	return true
}
