package export

import (
	"fmt"

	"github.com/piwi3910/trimcut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// DXF layer names.
const (
	LayerBoards = "BOARDS"
	LayerCuts   = "CUTS"
	LayerText   = "LABELS"
)

// DXF layout, in drawing units (inches).
const (
	dxfBoardHeight = 3.5
	dxfRowPitch    = 8.0
	dxfTextHeight  = 1.0
)

// ExportDXF draws each board of the cut list as a rectangle at true length,
// one board per row from the top down. Cut lines sit on their own layer so
// a shop drawing can toggle them.
func ExportDXF(path string, cl *model.CutList) error {
	if cl == nil || len(cl.Boards) == 0 {
		return fmt.Errorf("no boards to export")
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(LayerBoards, dxf.DefaultColor, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("failed to add layer: %w", err)
	}
	if _, err := d.AddLayer(LayerCuts, color.Red, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("failed to add layer: %w", err)
	}
	if _, err := d.AddLayer(LayerText, color.Blue, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("failed to add layer: %w", err)
	}

	for i, b := range cl.Boards {
		y := -float64(i) * dxfRowPitch
		if err := drawDXFBoard(d, b, i+1, y); err != nil {
			return fmt.Errorf("failed to draw board %d: %w", i+1, err)
		}
	}

	return d.SaveAs(path)
}

func drawDXFBoard(d *drawing.Drawing, b *model.Board, num int, y float64) error {
	h := dxfBoardHeight

	if err := d.ChangeLayer(LayerBoards); err != nil {
		return err
	}
	edges := [][4]float64{
		{0, y, b.Length, y},
		{b.Length, y, b.Length, y + h},
		{b.Length, y + h, 0, y + h},
		{0, y + h, 0, y},
	}
	for _, e := range edges {
		if _, err := d.Line(e[0], e[1], 0, e[2], e[3], 0); err != nil {
			return err
		}
	}

	if err := d.ChangeLayer(LayerText); err != nil {
		return err
	}
	title := fmt.Sprintf("Board %d  %g\"  excess %.2f\"", num, b.Length, b.Excess())
	if _, err := d.Text(title, 0, y+h+0.5, 0, dxfTextHeight); err != nil {
		return err
	}

	x := 0.0
	for _, c := range b.Cuts {
		if _, err := d.Text(fmt.Sprintf("%s %g", c.Label, c.Length), x+0.5, y+h/2-dxfTextHeight/2, 0, dxfTextHeight*0.8); err != nil {
			return err
		}
		x += c.Length
		if err := d.ChangeLayer(LayerCuts); err != nil {
			return err
		}
		if _, err := d.Line(x, y, 0, x, y+h, 0); err != nil {
			return err
		}
		x += b.Kerf
		if err := d.ChangeLayer(LayerText); err != nil {
			return err
		}
	}
	return nil
}
