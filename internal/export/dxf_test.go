package export

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/trimcut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

func TestExportDXF_Entities(t *testing.T) {
	cl := model.NewCutList("Head Casing", 0.125)
	b := cl.NewBoard(96)
	b.Cuts = append(b.Cuts, model.NewCut("Kitchen", "head", 40), model.NewCut("Hall", "head", 30))
	b2 := cl.NewBoard(96)
	b2.Cuts = append(b2.Cuts, model.NewCut("Den", "head", 50))

	path := filepath.Join(t.TempDir(), "head.dxf")
	if err := ExportDXF(path, cl); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	d, err := dxf.Open(path)
	if err != nil {
		t.Fatalf("failed to reopen DXF: %v", err)
	}

	lines, texts := 0, 0
	for _, e := range d.Entities() {
		switch e.(type) {
		case *entity.Line:
			lines++
		case *entity.Text:
			texts++
		}
	}
	// 4 outline edges per board plus one line per cut.
	if want := 2*4 + 3; lines != want {
		t.Errorf("expected %d lines, got %d", want, lines)
	}
	// One title per board plus one label per cut.
	if want := 2 + 3; texts != want {
		t.Errorf("expected %d texts, got %d", want, texts)
	}
}

func TestExportDXF_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")
	if err := ExportDXF(path, model.NewCutList("Empty", 0.125)); err == nil {
		t.Error("expected error for empty cut list")
	}
}
