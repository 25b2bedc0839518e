package export

import (
	"fmt"
	"strings"

	"github.com/piwi3910/trimcut/internal/engine"
	"github.com/piwi3910/trimcut/internal/model"
	"github.com/xuri/excelize/v2"
)

// maxSheetName is the longest worksheet name Excel accepts.
const maxSheetName = 31

// ExportExcel writes a workbook with a Summary sheet, a Totals sheet and one
// sheet per cut list listing every cut by board.
func ExportExcel(path string, result *engine.PlanResult) error {
	if result == nil || result.BoardCount() == 0 {
		return fmt.Errorf("no boards to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	summary := [][]interface{}{{"List", "Boards", "Cuts", "Stock (in)", "Efficiency %"}}
	for _, cl := range result.Lists {
		summary = append(summary, []interface{}{cl.Name, len(cl.Boards), cl.CutCount(), cl.StockLength(), round1(cl.Efficiency())})
	}
	if err := writeRows(f, "Summary", summary, header); err != nil {
		return err
	}
	_ = f.SetColWidth("Summary", "A", "A", 24)

	if _, err := f.NewSheet("Totals"); err != nil {
		return fmt.Errorf("failed to create totals sheet: %w", err)
	}
	totals := [][]interface{}{{"Part", "Pieces", "Inches", "Feet"}}
	for _, t := range result.Totals {
		totals = append(totals, []interface{}{t.Category, t.Pieces, t.Inches, t.Feet()})
	}
	if err := writeRows(f, "Totals", totals, header); err != nil {
		return err
	}

	used := map[string]bool{"Summary": true, "Totals": true}
	for _, cl := range result.Lists {
		name := sheetName(cl.Name, used)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", name, err)
		}
		if err := writeRows(f, name, cutListRows(cl), header); err != nil {
			return err
		}
		_ = f.SetColWidth(name, "C", "D", 20)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func cutListRows(cl *model.CutList) [][]interface{} {
	rows := [][]interface{}{{"Board", "Board Length", "Job", "Label", "Length", "Excess"}}
	for i, b := range cl.Boards {
		for j, c := range b.Cuts {
			row := []interface{}{i + 1, b.Length, c.Job, c.Label, c.Length, ""}
			if j == len(b.Cuts)-1 {
				row[5] = b.Excess()
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("failed to create cell reference: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to set %s!%s: %w", sheet, cell, err)
			}
		}
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style header of %s: %w", sheet, err)
	}
	return nil
}

// sheetName makes a valid, unique worksheet name from a cut list name.
func sheetName(name string, used map[string]bool) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, name)
	if clean == "" {
		clean = "Cut List"
	}
	if len([]rune(clean)) > maxSheetName {
		clean = string([]rune(clean)[:maxSheetName])
	}
	candidate := clean
	for n := 2; used[candidate]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		base := []rune(clean)
		if len(base)+len(suffix) > maxSheetName {
			base = base[:maxSheetName-len(suffix)]
		}
		candidate = string(base) + suffix
	}
	used[candidate] = true
	return candidate
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
