package gridbeat_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vsariola/gridbeat"
)

func TestGridFiles(t *testing.T) {
	g := gridbeat.NewGrid(8, []gridbeat.ColumnLayout{{Name: "kick"}, {Name: "lead", ParamLanes: true}})
	g.SetCell(0, gridbeat.NoteLane, 0, "C")
	g.SetCell(1, gridbeat.ParamLane(gridbeat.ParamHarmonics), 5, "70")
	for _, ext := range []string{".json", ".yml"} {
		t.Run(ext, func(t *testing.T) {
			var buf bytes.Buffer
			if err := gridbeat.WriteGrid(&buf, g, ext); err != nil {
				t.Fatalf("WriteGrid: %v", err)
			}
			got, err := gridbeat.ReadGrid(&buf)
			if err != nil {
				t.Fatalf("ReadGrid: %v", err)
			}
			if !got.Equal(g) {
				t.Errorf("read grid differs from written grid")
			}
		})
	}
}

func TestReadGridPadsRaggedColumns(t *testing.T) {
	const doc = `
tracks:
  - name: kick
    notes: [C, ___ , D]
  - name: snare
    notes: ["60"]
`
	g, err := gridbeat.ReadGrid(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadGrid: %v", err)
	}
	if got := len(g.Tracks[1].Notes); got != 3 {
		t.Fatalf("short column has %d cells, want 3", got)
	}
	if c := g.Cell(1, gridbeat.NoteLane, 2); c != gridbeat.EmptyCell {
		t.Errorf("padded cell = %q, want empty", c)
	}
}

func TestReadGridRejectsGarbage(t *testing.T) {
	if _, err := gridbeat.ReadGrid(strings.NewReader("tracks: [")); err == nil {
		t.Error("expected error for malformed input")
	}
}
