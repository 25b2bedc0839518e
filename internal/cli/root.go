// Package cli implements the trimcut command line.
//
// Each subcommand lives in its own file and is registered on the root
// command here. Global flags select JSON output, verbose logging and the
// config file; every other file (catalog, profiles, history) sits next to
// the config file.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/trimcut/internal/model"
	"github.com/piwi3910/trimcut/internal/project"
)

var (
	jsonOutput bool
	verbose    bool
	configFile string
)

// Set from main at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// maxRecentJobs bounds AppConfig.RecentJobs.
const maxRecentJobs = 10

// NewRootCommand creates the root command with every subcommand attached.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "trimcut",
		Short: "Cut lists for window and door trim",
		Long: `trimcut turns window and door openings into trim parts and packs the
parts onto stock boards, reporting which board each cut comes from and
what is left over.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ~/.trimcut/config.json)")

	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewCutCommand())
	rootCmd.AddCommand(NewCompareCommand())
	rootCmd.AddCommand(NewImportCommand())
	rootCmd.AddCommand(NewHistoryCommand())
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewProfilesCommand())

	return rootCmd
}

// Execute runs the root command and exits with the code carried by a CLIError.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		var cliErr *CLIError
		if errors.As(err, &cliErr) {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}
		printError(err.Error(), nil)
		os.Exit(int(ExitGeneralError))
	}
}

func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
		return
	}
	if underlying != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	}
}

// VerboseLog prints to stderr when --verbose is set.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput reports whether --json is set.
func IsJSONOutput() bool {
	return jsonOutput
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return WrapCLIError(ExitGeneralError, "failed to encode output", err)
	}
	return nil
}

// configPath returns the --config value or the default location.
func configPath() string {
	if configFile != "" {
		return configFile
	}
	return project.DefaultConfigPath()
}

// dataPath returns a file stored next to the config file.
func dataPath(name string) string {
	return filepath.Join(filepath.Dir(configPath()), name)
}

func catalogPath() string  { return dataPath("catalog.json") }
func profilesPath() string { return dataPath("profiles.json") }

func historyPath(cfg model.AppConfig) string {
	if cfg.HistoryPath != "" {
		return cfg.HistoryPath
	}
	return dataPath("history.db")
}

func loadConfig() (model.AppConfig, error) {
	path := configPath()
	VerboseLog("Loading config from %s", path)
	cfg, err := project.LoadAppConfig(path)
	if err != nil {
		return cfg, WrapCLIError(ExitInvalidInput, "failed to load config", err)
	}
	return cfg, nil
}
