package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/trimcut/internal/engine"
	"github.com/piwi3910/trimcut/internal/export"
	"github.com/piwi3910/trimcut/internal/model"
	"github.com/piwi3910/trimcut/internal/project"
)

// stockFlags are shared by "cut" and "compare".
type stockFlags struct {
	name     string
	board    float64
	boardSet bool
	kerf     float64
	kerfSet  bool
	join     bool
	offcuts  []float64
	stock    string
}

func (f *stockFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "Cut List", "Cut list name")
	cmd.Flags().Float64Var(&f.board, "board", 0, "Board length in inches (default from config)")
	cmd.Flags().Float64Var(&f.kerf, "kerf", 0, "Blade kerf in inches (default from config)")
	cmd.Flags().BoolVar(&f.join, "join", false, "Split cuts longer than a board across boards")
	cmd.Flags().Float64SliceVar(&f.offcuts, "offcut", nil, "Offcut length on hand (repeatable)")
	cmd.Flags().StringVar(&f.stock, "stock", "", "Take the board length and price from a catalog preset")
}

// capture records which flags were set explicitly.
func (f *stockFlags) capture(cmd *cobra.Command) {
	f.boardSet = cmd.Flags().Changed("board")
	f.kerfSet = cmd.Flags().Changed("kerf")
}

// settings resolves the stock from config, then the catalog preset, then
// explicit flags. The returned price is the preset's, or 0.
func (f *stockFlags) settings(cfg model.AppConfig) (model.StockSettings, float64, error) {
	s := model.StockSettings{BoardLength: cfg.DefaultBoardLength, Kerf: cfg.DefaultKerf, Join: f.join}
	price := 0.0

	if f.stock != "" {
		catalog, err := project.LoadCatalog(catalogPath())
		if err != nil {
			return s, 0, WrapCLIError(ExitInvalidInput, "failed to load catalog", err)
		}
		preset := catalog.FindStockByName(f.stock)
		if preset == nil {
			return s, 0, NewCLIError(ExitNotFound, fmt.Sprintf("stock %q not found in catalog", f.stock))
		}
		VerboseLog("Using stock %s (%g\")", preset.Name, preset.Length)
		s = preset.ToStockSettings(s.Kerf, f.join)
		price = preset.Price
	}

	if f.boardSet {
		s.BoardLength = f.board
	}
	if f.kerfSet {
		s.Kerf = f.kerf
	}
	if err := s.Validate(); err != nil {
		return s, 0, WrapCLIError(ExitInvalidInput, "invalid stock settings", err)
	}
	return s, price, nil
}

// parseCutArgs reads cuts written as [label=]length[xcount], e.g.
// "36.5", "head=42" or "side=80x4".
func parseCutArgs(job string, args []string) ([]model.Cut, error) {
	var cuts []model.Cut
	for i, arg := range args {
		label := fmt.Sprintf("Cut %d", i+1)
		val := arg
		if eq := strings.Index(val, "="); eq >= 0 {
			label = strings.TrimSpace(val[:eq])
			val = val[eq+1:]
		}

		count := 1
		if x := strings.LastIndexAny(val, "xX"); x > 0 {
			n, err := strconv.Atoi(val[x+1:])
			if err != nil || n < 1 {
				return nil, NewCLIError(ExitInvalidInput, fmt.Sprintf("invalid count in %q", arg))
			}
			count = n
			val = val[:x]
		}

		length, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, NewCLIError(ExitInvalidInput, fmt.Sprintf("invalid length in %q", arg))
		}
		for n := 0; n < count; n++ {
			cuts = append(cuts, model.NewCut(job, label, length))
		}
	}
	return cuts, nil
}

type cutFlags struct {
	stockFlags
	dxf   string
	price float64
}

// NewCutCommand creates the "cut" subcommand.
func NewCutCommand() *cobra.Command {
	flags := &cutFlags{}

	cmd := &cobra.Command{
		Use:   "cut <length>...",
		Short: "Pack ad hoc cut lengths onto boards",
		Long: `Pack a list of lengths onto boards of one stock without a job file.

Each argument is [label=]length[xcount] in inches:

  trimcut cut --board 96 --join head=42 side=80x4 130`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.capture(cmd)
			if !cmd.Flags().Changed("price") {
				flags.price = -1
			}
			return runCut(cmd.Context(), cmd.OutOrStdout(), args, flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&flags.dxf, "dxf", "", "Write a DXF drawing of the boards to this path")
	cmd.Flags().Float64Var(&flags.price, "price", 0, "Price per board for the purchase estimate")

	return cmd
}

// cutOutput is the --json shape of "cut".
type cutOutput struct {
	CutList       *model.CutList         `json:"cutlist"`
	Efficiency    float64                `json:"efficiency"`
	UnusedOffcuts []float64              `json:"unused_offcuts"`
	Remnants      []model.Remnant        `json:"remnants"`
	Purchase      model.PurchaseEstimate `json:"purchase"`
}

func runCut(_ context.Context, out io.Writer, args []string, flags *cutFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	settings, price, err := flags.settings(cfg)
	if err != nil {
		return err
	}
	if flags.price >= 0 {
		price = flags.price
	}

	cuts, err := parseCutArgs(flags.name, args)
	if err != nil {
		return err
	}

	maker := engine.New(settings, flags.offcuts)
	cl, err := maker.Make(flags.name, cuts)
	if err != nil {
		return engineError("failed to make cut list", err)
	}
	VerboseLog("Packed %d cuts onto %d boards", cl.CutCount(), len(cl.Boards))

	if flags.dxf != "" {
		if err := export.ExportDXF(flags.dxf, cl); err != nil {
			return WrapCLIError(ExitIOError, "failed to write DXF", err)
		}
	}

	var placed []model.Cut
	for _, b := range cl.Boards {
		placed = append(placed, b.Cuts...)
	}
	output := cutOutput{
		CutList:       cl,
		Efficiency:    cl.Efficiency(),
		UnusedOffcuts: model.SortedOffcuts(maker.Offcuts()),
		Remnants:      model.DetectRemnants(cl, cfg.MinRemnantLength),
		Purchase:      model.EstimatePurchase(placed, settings.BoardLength, settings.Kerf, cfg.WastePercent, price),
	}

	if IsJSONOutput() {
		return writeJSON(out, output)
	}

	if err := export.WriteCutList(out, cl); err != nil {
		return WrapCLIError(ExitGeneralError, "failed to write cut list", err)
	}
	fmt.Fprintf(out, "%d boards, %d cuts, %.1f%% used\n", len(cl.Boards), cl.CutCount(), output.Efficiency)
	for _, r := range output.Remnants {
		fmt.Fprintf(out, "Remnant: board %d, %.2f\"\n", r.BoardIndex+1, r.Length)
	}
	if len(output.UnusedOffcuts) > 0 {
		fmt.Fprintf(out, "Unused offcuts: %v\n", output.UnusedOffcuts)
	}
	p := output.Purchase
	fmt.Fprintf(out, "Buy %d boards (%d with %g%% waste)", p.BoardsNeededMin, p.BoardsWithWaste, p.WastePercent)
	if p.EstimatedCost > 0 {
		fmt.Fprintf(out, ", $%.2f", p.EstimatedCost)
	}
	fmt.Fprintln(out)
	if flags.dxf != "" {
		fmt.Fprintf(out, "Wrote %s\n", flags.dxf)
	}
	return nil
}
