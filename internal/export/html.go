package export

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"

	"github.com/piwi3910/trimcut/internal/engine"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var reportTemplate = template.Must(template.New("report.html.tmpl").Funcs(template.FuncMap{
	"inc":     func(i int) int { return i + 1 },
	"percent": percent,
}).ParseFS(templateFS, "templates/report.html.tmpl"))

// percent formats part as a percentage of whole for inline CSS widths.
func percent(part, whole float64) string {
	if whole <= 0 {
		return "0"
	}
	return fmt.Sprintf("%.2f", part/whole*100)
}

// RenderHTML writes a self-contained HTML report of the plan.
func RenderHTML(w io.Writer, result *engine.PlanResult) error {
	if result == nil {
		return fmt.Errorf("no plan to render")
	}
	if err := reportTemplate.Execute(w, result); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// ExportHTML renders the report to a file.
func ExportHTML(path string, result *engine.PlanResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if err := RenderHTML(f, result); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
