package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/trimcut/internal/export"
	"github.com/piwi3910/trimcut/internal/store"
)

// NewHistoryCommand creates the "history" command group.
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List, show and delete saved plan runs",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List saved runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(cmd.Context(), cmd.OutOrStdout(), limit)
		},
	}
	list.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to list (0 for all)")

	var format string
	show := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryShow(cmd.Context(), cmd.OutOrStdout(), args[0], format)
		},
	}
	show.Flags().StringVar(&format, "format", "text", "Output format: text or html")

	del := &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryDelete(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}

	cmd.AddCommand(list, show, del)
	return cmd
}

func openHistory() (*store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	path := historyPath(cfg)
	VerboseLog("Opening history %s", path)
	st, err := store.New(path)
	if err != nil {
		return nil, WrapCLIError(ExitIOError, "failed to open history", err)
	}
	return st, nil
}

func runHistoryList(_ context.Context, out io.Writer, limit int) error {
	st, err := openHistory()
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(limit)
	if err != nil {
		return WrapCLIError(ExitIOError, "failed to list runs", err)
	}

	if IsJSONOutput() {
		return writeJSON(out, map[string]interface{}{"runs": runs})
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No saved runs.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tJOB\tBOARDS\tCUTS\tSOURCE\tCREATED")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n",
			r.ID, r.JobName, r.Boards, r.Cuts, r.Source, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func runHistoryShow(_ context.Context, out io.Writer, id, format string) error {
	st, err := openHistory()
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.GetRun(id)
	if err != nil {
		return engineError("failed to load run", err)
	}

	if IsJSONOutput() {
		return writeJSON(out, run)
	}
	switch format {
	case "text":
		fmt.Fprintf(out, "Run %s: %s (%s)\n\n", run.ID, run.JobName, run.CreatedAt.Local().Format("2006-01-02 15:04"))
		return export.WriteText(out, run.Result)
	case "html":
		return export.RenderHTML(out, run.Result)
	}
	return NewCLIError(ExitInvalidInput, fmt.Sprintf("unknown format %q", format))
}

func runHistoryDelete(_ context.Context, out io.Writer, id string) error {
	st, err := openHistory()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteRun(id); err != nil {
		return engineError("failed to delete run", err)
	}
	if IsJSONOutput() {
		return writeJSON(out, map[string]string{"deleted": id})
	}
	fmt.Fprintf(out, "Deleted run %s\n", id)
	return nil
}
