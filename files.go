package gridbeat

import (
	"encoding/json"
	"io"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"gopkg.in/yaml.v3"
)

// ReadGrid reads a grid written by WriteGrid. JSON is tried first, then YAML.
func ReadGrid(r io.Reader) (Grid, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Grid{}, fault.Wrap(err, fmsg.With("could not read grid"))
	}
	var g Grid
	if errJSON := json.Unmarshal(b, &g); errJSON != nil {
		g = Grid{}
		if errYaml := yaml.Unmarshal(b, &g); errYaml != nil {
			return Grid{}, fault.Wrap(errYaml, fmsg.WithDesc("could not unmarshal grid", "The file is neither valid JSON nor valid YAML"))
		}
	}
	g.Normalize()
	return g, nil
}

// WriteGrid writes the grid as JSON if ext is ".json" and as YAML otherwise.
func WriteGrid(w io.Writer, g Grid, ext string) error {
	var contents []byte
	var err error
	if ext == ".json" {
		contents, err = json.Marshal(g)
	} else {
		contents, err = yaml.Marshal(g)
	}
	if err != nil {
		return fault.Wrap(err, fmsg.With("could not marshal grid"))
	}
	if _, err := w.Write(contents); err != nil {
		return fault.Wrap(err, fmsg.With("could not write grid"))
	}
	return nil
}

// Normalize pads every lane to the step count of the grid so that a hand
// edited file with ragged columns still has a cell at every position. Empty
// strings become EmptyCell.
func (g Grid) Normalize() {
	steps := g.Steps()
	for i := range g.Tracks {
		c := &g.Tracks[i]
		c.Notes = padCells(c.Notes, steps)
		for p := range c.Lanes {
			if c.Lanes[p] != nil {
				c.Lanes[p] = padCells(c.Lanes[p], steps)
			}
		}
	}
}

func padCells(cells []string, n int) []string {
	for i := range cells {
		if cells[i] == "" {
			cells[i] = EmptyCell
		}
	}
	for len(cells) < n {
		cells = append(cells, EmptyCell)
	}
	return cells[:n]
}
