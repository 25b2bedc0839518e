package export

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/piwi3910/trimcut/internal/engine"
	"github.com/piwi3910/trimcut/internal/model"
)

// WriteText prints linear totals followed by every cut list, one board per
// block, in aligned columns.
func WriteText(w io.Writer, result *engine.PlanResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if len(result.Totals) > 0 {
		fmt.Fprintln(tw, "LINEAR TOTALS")
		for _, t := range result.Totals {
			fmt.Fprintf(tw, "  %s\t%d pcs\t%s\n", t.Category, t.Pieces, t.Feet())
		}
		fmt.Fprintln(tw)
	}

	for _, cl := range result.Lists {
		writeCutList(tw, cl)
	}

	if len(result.Remnants) > 0 {
		fmt.Fprintln(tw, "REMNANTS")
		for _, r := range result.Remnants {
			fmt.Fprintf(tw, "  %s\tboard %d\t%.2f\"\n", r.ListName, r.BoardIndex+1, r.Length)
		}
		fmt.Fprintln(tw)
	}

	fmt.Fprintf(tw, "%d boards, %d cuts\n", result.BoardCount(), result.CutCount())
	return tw.Flush()
}

// WriteCutList prints a single cut list.
func WriteCutList(w io.Writer, cl *model.CutList) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	writeCutList(tw, cl)
	return tw.Flush()
}

func writeCutList(tw *tabwriter.Writer, cl *model.CutList) {
	fmt.Fprintf(tw, "%s (kerf %g\")\n", cl.Name, cl.Kerf)
	for i, b := range cl.Boards {
		fmt.Fprintf(tw, "  Board %d: %g\"\texcess %.3f\"\n", i+1, b.Length, b.Excess())
		for _, c := range b.Cuts {
			fmt.Fprintf(tw, "    %s\t%s\t%g\n", c.Job, c.Label, c.Length)
		}
	}
	fmt.Fprintln(tw)
}
