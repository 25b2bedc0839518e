package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/trimcut/internal/engine"
	"github.com/piwi3910/trimcut/internal/model"
)

// NewCompareCommand creates the "compare" subcommand.
func NewCompareCommand() *cobra.Command {
	flags := &stockFlags{}

	cmd := &cobra.Command{
		Use:   "compare <length>...",
		Short: "Compare board lengths, kerf and joining for a set of cuts",
		Long: `Pack the same cuts under the current stock settings and a set of
alternatives (joining toggled, half kerf, no offcuts, other standard board
lengths) and print boards used and waste for each.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.capture(cmd)
			return runCompare(cmd.Context(), cmd.OutOrStdout(), args, flags)
		},
	}
	flags.register(cmd)

	return cmd
}

// scenarioOutput is one row of "compare".
type scenarioOutput struct {
	Name         string              `json:"name"`
	Settings     model.StockSettings `json:"settings"`
	Boards       int                 `json:"boards"`
	Cuts         int                 `json:"cuts"`
	StockLength  float64             `json:"stock_length"`
	WastePercent float64             `json:"waste_percent"`
	Error        string              `json:"error,omitempty"`
}

func runCompare(_ context.Context, out io.Writer, args []string, flags *stockFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	base, _, err := flags.settings(cfg)
	if err != nil {
		return err
	}
	cuts, err := parseCutArgs(flags.name, args)
	if err != nil {
		return err
	}

	scenarios := engine.BuildDefaultScenarios(base, flags.offcuts)
	VerboseLog("Comparing %d scenarios", len(scenarios))
	results := engine.CompareScenarios(flags.name, cuts, scenarios)

	rows := make([]scenarioOutput, 0, len(results))
	for _, r := range results {
		row := scenarioOutput{
			Name:         r.Scenario.Name,
			Settings:     r.Scenario.Settings,
			Boards:       r.BoardsUsed,
			Cuts:         r.TotalCuts,
			StockLength:  r.StockLength,
			WastePercent: r.WastePercent,
		}
		if r.Err != nil {
			row.Error = r.Err.Error()
		}
		rows = append(rows, row)
	}

	if IsJSONOutput() {
		return writeJSON(out, map[string]interface{}{"scenarios": rows})
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tBOARDS\tCUTS\tSTOCK\tWASTE")
	for _, r := range rows {
		if r.Error != "" {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t%s\n", r.Name, r.Error)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%.1f%%\n", r.Name, r.Boards, r.Cuts, model.FormatFeetInches(r.StockLength), r.WastePercent)
	}
	return tw.Flush()
}
