package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/trimcut/internal/importer"
	"github.com/piwi3910/trimcut/internal/model"
	"github.com/piwi3910/trimcut/internal/project"
)

type importFlags struct {
	output string
	name   string
	force  bool
}

// NewImportCommand creates the "import" subcommand.
func NewImportCommand() *cobra.Command {
	flags := &importFlags{}

	cmd := &cobra.Command{
		Use:   "import <openings.csv|openings.xlsx>",
		Short: "Create a job file from a spreadsheet of openings",
		Long: `Read openings from a CSV or Excel file and write a job file with the
configured defaults. Columns are matched by header (name, kind, width,
height, divider, crown, jambs, qty); without a header they are read in
that order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), cmd.OutOrStdout(), args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Job file to write (.yaml, .toml or .json; default <input>.yaml)")
	cmd.Flags().StringVar(&flags.name, "name", "", "Job name (default input file name)")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite an existing job file")

	return cmd
}

type importOutput struct {
	Job      string   `json:"job_file"`
	Openings int      `json:"openings"`
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`
}

func runImport(_ context.Context, out io.Writer, path string, flags *importFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	output := flags.output
	if output == "" {
		output = filepath.Join(filepath.Dir(path), base+".yaml")
	}
	if _, err := project.JobFormat(output); err != nil {
		return WrapCLIError(ExitInvalidInput, "unsupported job file", err)
	}
	if !flags.force {
		if _, err := os.Stat(output); err == nil {
			return NewCLIError(ExitInvalidInput, fmt.Sprintf("%s already exists (use --force to overwrite)", output))
		}
	}

	VerboseLog("Importing openings from %s", path)
	res := importer.ImportFile(path)
	for _, w := range res.Warnings {
		VerboseLog("warning: %s", w)
	}
	if len(res.Openings) == 0 {
		msg := "no openings imported"
		if len(res.Errors) > 0 {
			msg += ": " + res.Errors[0]
		}
		return NewCLIError(ExitInvalidInput, msg)
	}

	name := flags.name
	if name == "" {
		name = base
	}
	job := model.NewJob(name)
	cfg.ApplyToSettings(&job.Settings)
	job.Openings = res.Openings

	if err := project.SaveJob(output, job); err != nil {
		return WrapCLIError(ExitIOError, "failed to write job", err)
	}

	result := importOutput{Job: output, Openings: len(res.Openings), Warnings: res.Warnings, Errors: res.Errors}
	if result.Warnings == nil {
		result.Warnings = []string{}
	}
	if result.Errors == nil {
		result.Errors = []string{}
	}

	if IsJSONOutput() {
		return writeJSON(out, result)
	}
	fmt.Fprintf(out, "Imported %d openings into %s\n", result.Openings, output)
	for _, w := range result.Warnings {
		fmt.Fprintf(out, "  warning: %s\n", w)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(out, "  skipped: %s\n", e)
	}
	return nil
}
