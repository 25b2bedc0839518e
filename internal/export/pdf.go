// Package export writes plan results to PDF, label sheets, Excel, DXF, HTML
// and plain text.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/trimcut/internal/engine"
	"github.com/piwi3910/trimcut/internal/model"
)

// cutColor represents an RGB color for a cut on a board bar.
type cutColor struct {
	R, G, B int
}

var cutColors = []cutColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 8.0
	barHeight    = 9.0
	barGap       = 7.0
	barLabelW    = 22.0
)

// ExportPDF renders every cut list of a plan as board diagrams, one list per
// page (continued on further pages when it has many boards), followed by a
// summary page.
func ExportPDF(path string, result *engine.PlanResult) error {
	if result == nil || result.BoardCount() == 0 {
		return fmt.Errorf("no boards to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, cl := range result.Lists {
		if len(cl.Boards) == 0 {
			continue
		}
		renderCutListPages(pdf, cl)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result)

	return pdf.OutputFileAndClose(path)
}

// boardsPerPage is how many board bars fit between the header and the footer.
func boardsPerPage() int {
	avail := pageHeight - drawAreaTop - marginBottom - 5
	return int(avail / (barHeight + barGap))
}

func renderCutListPages(pdf *fpdf.Fpdf, cl *model.CutList) {
	perPage := boardsPerPage()
	longest := 0.0
	for _, b := range cl.Boards {
		longest = math.Max(longest, b.Length)
	}
	scale := (pageWidth - marginLeft - marginRight - barLabelW) / longest

	for start := 0; start < len(cl.Boards); start += perPage {
		end := start + perPage
		if end > len(cl.Boards) {
			end = len(cl.Boards)
		}
		pdf.AddPage()

		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(marginLeft, marginTop)
		title := cl.Name
		if start > 0 {
			title += " (continued)"
		}
		pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		pdf.SetXY(marginLeft, marginTop+headerHeight)
		stats := fmt.Sprintf("Boards: %d | Cuts: %d | Stock: %s | Kerf: %g\" | Efficiency: %.1f%%",
			len(cl.Boards), cl.CutCount(), model.FormatFeetInches(cl.StockLength()), cl.Kerf, cl.Efficiency())
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

		y := drawAreaTop
		for i := start; i < end; i++ {
			drawBoard(pdf, cl.Boards[i], i+1, scale, y)
			y += barHeight + barGap
		}
	}
}

// drawBoard draws one board as a horizontal bar with its cuts laid end to
// end, separated by kerf gaps. Unused length is left in the wood color.
func drawBoard(pdf *fpdf.Fpdf, b *model.Board, num int, scale, y float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y+barHeight/2-2)
	pdf.CellFormat(barLabelW-2, 4, fmt.Sprintf("#%d %g\"", num, b.Length), "", 0, "L", false, 0, "")

	x0 := marginLeft + barLabelW
	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.4)
	pdf.Rect(x0, y, b.Length*scale, barHeight, "FD")

	x := x0
	for i, c := range b.Cuts {
		col := cutColors[i%len(cutColors)]
		w := c.Length * scale
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		pdf.Rect(x, y, w, barHeight, "FD")

		text := fmt.Sprintf("%s %g", c.Label, c.Length)
		pdf.SetFont("Helvetica", "", labelFontSize(w))
		if tw := pdf.GetStringWidth(text); tw < w-1 {
			pdf.SetXY(x+(w-tw)/2, y+barHeight/2-2)
			pdf.CellFormat(tw, 4, text, "", 0, "C", false, 0, "")
		} else if tw := pdf.GetStringWidth(fmt.Sprintf("%g", c.Length)); tw < w-1 {
			pdf.SetXY(x+(w-tw)/2, y+barHeight/2-2)
			pdf.CellFormat(tw, 4, fmt.Sprintf("%g", c.Length), "", 0, "C", false, 0, "")
		}

		x += w + b.Kerf*scale
	}

	if excess := b.Excess(); excess > 0 {
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(90, 90, 90)
		pdf.SetXY(x0, y+barHeight+0.5)
		pdf.CellFormat(b.Length*scale, 3, fmt.Sprintf("excess %.2f\"", excess), "", 0, "R", false, 0, "")
	}
}

// renderSummaryPage draws linear totals, a per-list table and any remnants.
func renderSummaryPage(pdf *fpdf.Fpdf, result *engine.PlanResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	title := "Cut List Summary"
	if result.JobName != "" {
		title += ": " + result.JobName
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, title, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Total Boards", fmt.Sprintf("%d", result.BoardCount())},
		{"Total Cuts", fmt.Sprintf("%d", result.CutCount())},
		{"Usable Remnants", fmt.Sprintf("%d", len(result.Remnants))},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	y += 5

	y = drawTable(pdf, y, "Cut Lists",
		[]float64{60, 25, 25, 45, 35},
		[]string{"List", "Boards", "Cuts", "Stock", "Efficiency"},
		listRows(result))

	if len(result.Totals) > 0 {
		y += 6
		y = drawTable(pdf, y, "Linear Totals",
			[]float64{60, 25, 45},
			[]string{"Part", "Pieces", "Length"},
			totalRows(result.Totals))
	}

	if len(result.Remnants) > 0 && y < pageHeight-marginBottom-30 {
		y += 6
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "Remnants", "", 0, "L", false, 0, "")
		y += 8
		pdf.SetFont("Helvetica", "", 9)
		for _, r := range result.Remnants {
			if y > pageHeight-marginBottom-8 {
				break
			}
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s board %d: %.2f\"", r.ListName, r.BoardIndex+1, r.Length)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by trimcut", "", 0, "C", false, 0, "")
}

func listRows(result *engine.PlanResult) [][]string {
	rows := make([][]string, 0, len(result.Lists))
	for _, cl := range result.Lists {
		rows = append(rows, []string{
			cl.Name,
			fmt.Sprintf("%d", len(cl.Boards)),
			fmt.Sprintf("%d", cl.CutCount()),
			model.FormatFeetInches(cl.StockLength()),
			fmt.Sprintf("%.1f%%", cl.Efficiency()),
		})
	}
	return rows
}

func totalRows(totals []model.LinearTotal) [][]string {
	rows := make([][]string, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, []string{
			t.Category,
			fmt.Sprintf("%d", t.Pieces),
			model.FormatFeetInches(t.Inches),
		})
	}
	return rows
}

// drawTable renders a titled table with alternating row shading and returns
// the y position below it.
func drawTable(pdf *fpdf.Fpdf, y float64, title string, colWidths []float64, headers []string, rows [][]string) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, title, "", 0, "L", false, 0, "")
	y += 9

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, row := range rows {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		xPos = marginLeft
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}
	return y
}

// labelFontSize returns a font size that suits a cut segment of width w mm.
func labelFontSize(w float64) float64 {
	switch {
	case w > 40:
		return 8
	case w > 20:
		return 7
	default:
		return 6
	}
}
