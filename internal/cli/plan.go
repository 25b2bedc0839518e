package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/trimcut/internal/engine"
	"github.com/piwi3910/trimcut/internal/export"
	"github.com/piwi3910/trimcut/internal/model"
	"github.com/piwi3910/trimcut/internal/project"
	"github.com/piwi3910/trimcut/internal/store"
)

type planFlags struct {
	pdf     string
	xlsx    string
	html    string
	labels  string
	dxfDir  string
	save    bool
	profile string
	price   float64
}

// NewPlanCommand creates the "plan" subcommand.
func NewPlanCommand() *cobra.Command {
	flags := &planFlags{}

	cmd := &cobra.Command{
		Use:   "plan <job-file>",
		Short: "Build cut lists for a job",
		Long: `Load a job file (.yaml, .toml or .json), expand its openings into trim
parts and pack each part category onto its stock.

Reports can be written alongside the terminal output:

  trimcut plan kitchen.yaml --pdf kitchen.pdf --labels labels.pdf --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd.Context(), cmd.OutOrStdout(), args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.pdf, "pdf", "", "Write a PDF report to this path")
	cmd.Flags().StringVar(&flags.xlsx, "xlsx", "", "Write an Excel workbook to this path")
	cmd.Flags().StringVar(&flags.html, "html", "", "Write an HTML report to this path")
	cmd.Flags().StringVar(&flags.labels, "labels", "", "Write QR cut labels (PDF) to this path")
	cmd.Flags().StringVar(&flags.dxfDir, "dxf", "", "Write one DXF drawing per cut list into this directory")
	cmd.Flags().BoolVar(&flags.save, "save", false, "Record the result in run history")
	cmd.Flags().StringVar(&flags.profile, "profile", "", "Use a named trim profile instead of the job's")
	cmd.Flags().Float64Var(&flags.price, "price", 0, "Price per board for the purchase estimate")

	return cmd
}

// planOutput is the --json shape of "plan".
type planOutput struct {
	RunID    string             `json:"run_id,omitempty"`
	Result   *engine.PlanResult `json:"result"`
	Purchase []purchaseLine     `json:"purchase"`
	Files    []string           `json:"files,omitempty"`
}

type purchaseLine struct {
	List string `json:"list"`
	model.PurchaseEstimate
}

func runPlan(_ context.Context, out io.Writer, jobPath string, flags *planFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	VerboseLog("Loading job %s", jobPath)
	job, err := project.LoadJob(jobPath)
	if err != nil {
		return WrapCLIError(ExitInvalidInput, "failed to load job", err)
	}

	if flags.profile != "" {
		profiles, err := project.AllProfiles(profilesPath())
		if err != nil {
			return WrapCLIError(ExitInvalidInput, "failed to load trim profiles", err)
		}
		p, ok := model.FindTrimProfile(profiles, flags.profile)
		if !ok {
			return NewCLIError(ExitNotFound, fmt.Sprintf("trim profile %q not found", flags.profile))
		}
		VerboseLog("Using trim profile %s", p.Name)
		job.Settings.Trim = p.Profile
	}

	result, err := engine.NewPlanner(cfg.MinRemnantLength).Plan(job)
	if err != nil {
		return engineError("failed to plan job", err)
	}
	VerboseLog("Planned %d boards for %d cuts", result.BoardCount(), result.CutCount())

	files, err := writeReports(result, flags)
	if err != nil {
		return err
	}

	output := planOutput{
		Result:   result,
		Purchase: purchaseLines(job.Settings, result, cfg.WastePercent, flags.price),
		Files:    files,
	}

	if flags.save {
		st, err := store.New(historyPath(cfg))
		if err != nil {
			return WrapCLIError(ExitIOError, "failed to open history", err)
		}
		defer st.Close()
		sum, err := st.SaveRun(result, "cli")
		if err != nil {
			return WrapCLIError(ExitIOError, "failed to save run", err)
		}
		output.RunID = sum.ID
	}

	if abs, err := filepath.Abs(jobPath); err == nil {
		cfg.AddRecentJob(abs, maxRecentJobs)
		if err := project.SaveAppConfig(configPath(), cfg); err != nil {
			VerboseLog("Could not update recent jobs: %v", err)
		}
	}

	if IsJSONOutput() {
		return writeJSON(out, output)
	}
	return printPlan(out, output)
}

func printPlan(out io.Writer, p planOutput) error {
	if err := export.WriteText(out, p.Result); err != nil {
		return WrapCLIError(ExitGeneralError, "failed to write report", err)
	}

	for _, cat := range model.Categories {
		left := p.Result.UnusedOffcuts[cat]
		if len(left) == 0 {
			continue
		}
		lengths := make([]string, 0, len(left))
		for _, l := range model.SortedOffcuts(left) {
			lengths = append(lengths, fmt.Sprintf("%g\"", l))
		}
		fmt.Fprintf(out, "Unused %s offcuts: %s\n", cat, strings.Join(lengths, ", "))
	}

	if len(p.Purchase) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "PURCHASE ESTIMATE")
		for _, pl := range p.Purchase {
			fmt.Fprintf(out, "  %s: %d x %s boards (%d with %g%% waste)",
				pl.List, pl.BoardsNeededMin, model.FormatFeetInches(pl.BoardLength), pl.BoardsWithWaste, pl.WastePercent)
			if pl.EstimatedCost > 0 {
				fmt.Fprintf(out, ", $%.2f", pl.EstimatedCost)
			}
			fmt.Fprintln(out)
		}
	}

	for _, f := range p.Files {
		fmt.Fprintf(out, "Wrote %s\n", f)
	}
	if p.RunID != "" {
		fmt.Fprintf(out, "Saved run %s\n", p.RunID)
	}
	return nil
}

// purchaseLines estimates boards to buy for each packed list from the full
// board length of its stock.
func purchaseLines(settings model.PlanSettings, result *engine.PlanResult, wastePercent, price float64) []purchaseLine {
	lines := []purchaseLine{}
	for _, cl := range result.Lists {
		var stock *model.CategoryStock
		for i := range settings.Stock {
			if settings.Stock[i].Title == cl.Name {
				stock = &settings.Stock[i]
				break
			}
		}
		if stock == nil {
			continue
		}
		var cuts []model.Cut
		for _, b := range cl.Boards {
			cuts = append(cuts, b.Cuts...)
		}
		lines = append(lines, purchaseLine{
			List:             cl.Name,
			PurchaseEstimate: model.EstimatePurchase(cuts, stock.BoardLength, stock.Kerf, wastePercent, price),
		})
	}
	return lines
}

func writeReports(result *engine.PlanResult, flags *planFlags) ([]string, error) {
	var files []string
	write := func(path, what string, fn func(string, *engine.PlanResult) error) error {
		if path == "" {
			return nil
		}
		VerboseLog("Writing %s to %s", what, path)
		if err := fn(path, result); err != nil {
			return WrapCLIError(ExitIOError, "failed to write "+what, err)
		}
		files = append(files, path)
		return nil
	}

	if err := write(flags.pdf, "PDF report", export.ExportPDF); err != nil {
		return nil, err
	}
	if err := write(flags.xlsx, "workbook", export.ExportExcel); err != nil {
		return nil, err
	}
	if err := write(flags.html, "HTML report", export.ExportHTML); err != nil {
		return nil, err
	}
	if err := write(flags.labels, "labels", export.ExportLabels); err != nil {
		return nil, err
	}

	if flags.dxfDir != "" {
		if err := os.MkdirAll(flags.dxfDir, 0755); err != nil {
			return nil, WrapCLIError(ExitIOError, "failed to create DXF directory", err)
		}
		for _, cl := range result.Lists {
			path := filepath.Join(flags.dxfDir, fileSlug(cl.Name)+".dxf")
			VerboseLog("Writing DXF to %s", path)
			if err := export.ExportDXF(path, cl); err != nil {
				return nil, WrapCLIError(ExitIOError, "failed to write DXF", err)
			}
			files = append(files, path)
		}
	}
	return files, nil
}

// fileSlug lowercases name and replaces anything but letters and digits with '-'.
func fileSlug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "cutlist"
	}
	return s
}
