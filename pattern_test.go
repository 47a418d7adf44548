package gridbeat_test

import (
	"testing"

	"github.com/vsariola/gridbeat"
)

func TestNewGridIsEmpty(t *testing.T) {
	g := gridbeat.NewGrid(16, []gridbeat.ColumnLayout{{Name: "a"}, {Name: "b", ParamLanes: true}})
	if g.Steps() != 16 {
		t.Fatalf("Steps() = %d, want 16", g.Steps())
	}
	if g.Tracks[0].Lanes != nil {
		t.Error("column without parameter lanes has lanes")
	}
	if got := g.Tracks[1].NumLanes(); got != 1+int(gridbeat.NumParams) {
		t.Errorf("NumLanes() = %d, want %d", got, 1+int(gridbeat.NumParams))
	}
	for tr := range g.Tracks {
		for l := 0; l < g.Tracks[tr].NumLanes(); l++ {
			for s := 0; s < 16; s++ {
				if c := g.Cell(tr, gridbeat.Lane(l), s); c != gridbeat.EmptyCell {
					t.Fatalf("cell (%d,%d,%d) = %q, want empty", tr, l, s, c)
				}
			}
		}
	}
}

func TestGridCellBounds(t *testing.T) {
	g := gridbeat.NewGrid(4, []gridbeat.ColumnLayout{{Name: "a"}})
	if g.SetCell(1, gridbeat.NoteLane, 0, "C") {
		t.Error("SetCell on missing track succeeded")
	}
	if g.SetCell(0, gridbeat.NoteLane, 4, "C") {
		t.Error("SetCell past the last step succeeded")
	}
	if g.SetCell(0, gridbeat.ParamLane(gridbeat.ParamMorph), 0, "5") {
		t.Error("SetCell on absent lane succeeded")
	}
	if c := g.Cell(0, gridbeat.NoteLane, -1); c != gridbeat.EmptyCell {
		t.Errorf("out of range Cell = %q, want empty", c)
	}
	if !g.SetCell(0, gridbeat.NoteLane, 3, "C") || g.Cell(0, gridbeat.NoteLane, 3) != "C" {
		t.Error("SetCell in range did not stick")
	}
}

func TestGridCopyIsDeep(t *testing.T) {
	g := gridbeat.NewGrid(4, []gridbeat.ColumnLayout{{Name: "a", ParamLanes: true}})
	c := g.Copy()
	if !c.Equal(g) {
		t.Fatal("copy not equal to original")
	}
	c.SetCell(0, gridbeat.NoteLane, 0, "C")
	c.SetCell(0, gridbeat.ParamLane(gridbeat.ParamTimbre), 0, "1")
	if g.Cell(0, gridbeat.NoteLane, 0) != gridbeat.EmptyCell || g.Cell(0, gridbeat.ParamLane(gridbeat.ParamTimbre), 0) != gridbeat.EmptyCell {
		t.Error("editing the copy changed the original")
	}
	if c.Equal(g) {
		t.Error("edited copy still equal to original")
	}
}

func TestLaneParam(t *testing.T) {
	if _, ok := gridbeat.NoteLane.Param(); ok {
		t.Error("note lane reported a parameter")
	}
	for p := gridbeat.Param(0); p < gridbeat.NumParams; p++ {
		if got, ok := gridbeat.ParamLane(p).Param(); !ok || got != p {
			t.Errorf("ParamLane(%v).Param() = %v, %v", p, got, ok)
		}
		if got, ok := gridbeat.ParseParam(p.String()); !ok || got != p {
			t.Errorf("ParseParam(%q) = %v, %v", p.String(), got, ok)
		}
	}
}
