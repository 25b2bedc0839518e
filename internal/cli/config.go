package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/trimcut/internal/model"
	"github.com/piwi3910/trimcut/internal/project"
)

// NewConfigCommand creates the "config" command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, back up and restore settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.Context(), cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "export <backup.json>",
		Short: "Write config, catalog and custom profiles to one backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigExport(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import <backup.json>",
		Short: "Restore config, catalog and custom profiles from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigImport(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	})

	return cmd
}

func runConfigShow(_ context.Context, out io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if IsJSONOutput() {
		return writeJSON(out, cfg)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "config\t%s\n", configPath())
	fmt.Fprintf(tw, "kerf\t%g\"\n", cfg.DefaultKerf)
	fmt.Fprintf(tw, "allowance\t%g\"\n", cfg.DefaultAllowance)
	fmt.Fprintf(tw, "round up\t%t\n", cfg.DefaultRoundUp)
	fmt.Fprintf(tw, "board length\t%g\"\n", cfg.DefaultBoardLength)
	fmt.Fprintf(tw, "min remnant\t%g\"\n", cfg.MinRemnantLength)
	fmt.Fprintf(tw, "waste\t%g%%\n", cfg.WastePercent)
	fmt.Fprintf(tw, "server port\t%d\n", cfg.ServerPort)
	fmt.Fprintf(tw, "history\t%s\n", historyPath(cfg))
	for i, j := range cfg.RecentJobs {
		fmt.Fprintf(tw, "recent %d\t%s\n", i+1, j)
	}
	return tw.Flush()
}

func runConfigExport(_ context.Context, out io.Writer, path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	catalog, err := project.LoadCatalog(catalogPath())
	if err != nil {
		return WrapCLIError(ExitInvalidInput, "failed to load catalog", err)
	}
	profiles, err := project.LoadCustomProfiles(profilesPath())
	if err != nil {
		return WrapCLIError(ExitInvalidInput, "failed to load trim profiles", err)
	}

	if err := project.ExportAllData(path, cfg, catalog, profiles); err != nil {
		return WrapCLIError(ExitIOError, "failed to write backup", err)
	}
	if IsJSONOutput() {
		return writeJSON(out, map[string]string{"backup": path})
	}
	fmt.Fprintf(out, "Wrote backup to %s\n", path)
	return nil
}

func runConfigImport(_ context.Context, out io.Writer, path string) error {
	backup, err := project.ImportAllData(path)
	if err != nil {
		return WrapCLIError(ExitInvalidInput, "failed to read backup", err)
	}
	VerboseLog("Restoring backup version %s from %s", backup.Version, backup.CreatedAt)
	if err := project.RestoreAllData(backup, configPath(), catalogPath(), profilesPath()); err != nil {
		return WrapCLIError(ExitIOError, "failed to restore backup", err)
	}
	if IsJSONOutput() {
		return writeJSON(out, map[string]interface{}{
			"restored": path,
			"stocks":   len(backup.Catalog.Stocks),
			"profiles": len(backup.Profiles),
		})
	}
	fmt.Fprintf(out, "Restored %d stock presets and %d profiles from %s\n", len(backup.Catalog.Stocks), len(backup.Profiles), path)
	return nil
}

// NewCatalogCommand creates the "catalog" command group.
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage stock presets",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stock presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogList(cmd.Context(), cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import <catalog.json>",
		Short: "Merge presets from another catalog file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogImport(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	})

	return cmd
}

func runCatalogList(_ context.Context, out io.Writer) error {
	catalog, err := project.LoadCatalog(catalogPath())
	if err != nil {
		return WrapCLIError(ExitInvalidInput, "failed to load catalog", err)
	}
	if IsJSONOutput() {
		return writeJSON(out, catalog)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLENGTH\tMATERIAL\tPRICE")
	for _, s := range catalog.Stocks {
		price := "-"
		if s.Price > 0 {
			price = fmt.Sprintf("$%.2f", s.Price)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Name, model.FormatFeetInches(s.Length), s.Material, price)
	}
	return tw.Flush()
}

func runCatalogImport(_ context.Context, out io.Writer, path string) error {
	catalog, err := project.LoadCatalog(catalogPath())
	if err != nil {
		return WrapCLIError(ExitInvalidInput, "failed to load catalog", err)
	}
	added, err := project.ImportCatalog(path, &catalog)
	if err != nil {
		return WrapCLIError(ExitInvalidInput, "failed to import catalog", err)
	}
	if err := project.SaveCatalog(catalogPath(), catalog); err != nil {
		return WrapCLIError(ExitIOError, "failed to save catalog", err)
	}
	if IsJSONOutput() {
		return writeJSON(out, map[string]int{"added": added, "total": len(catalog.Stocks)})
	}
	fmt.Fprintf(out, "Added %d presets (%d total)\n", added, len(catalog.Stocks))
	return nil
}

// NewProfilesCommand creates the "profiles" command group.
func NewProfilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage named trim profiles",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List built-in and custom trim profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfilesList(cmd.Context(), cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import <profile.json>",
		Short: "Add or replace a custom trim profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfilesImport(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	})

	return cmd
}

func runProfilesList(_ context.Context, out io.Writer) error {
	profiles, err := project.AllProfiles(profilesPath())
	if err != nil {
		return WrapCLIError(ExitInvalidInput, "failed to load trim profiles", err)
	}
	if IsJSONOutput() {
		return writeJSON(out, map[string]interface{}{"profiles": profiles})
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCASING\tHEAD\tAPRON\tBLOCK\tSOURCE")
	for _, p := range profiles {
		source := "custom"
		if p.IsBuiltIn {
			source = "built-in"
		}
		fmt.Fprintf(tw, "%s\t%g\"\t%g\"\t%g\"\t%gx%g\"\t%s\n", p.Name,
			p.Profile.CasingSideWidth, p.Profile.CasingHeadWidth, p.Profile.ApronWidth,
			p.Profile.BlockWidth, p.Profile.BlockHeight, source)
	}
	return tw.Flush()
}

func runProfilesImport(_ context.Context, out io.Writer, path string) error {
	profile, err := project.ImportProfile(path)
	if err != nil {
		return WrapCLIError(ExitInvalidInput, "failed to import profile", err)
	}
	for _, b := range model.BuiltInTrimProfiles() {
		if strings.EqualFold(b.Name, profile.Name) {
			return NewCLIError(ExitInvalidInput, fmt.Sprintf("%q is a built-in profile name", profile.Name))
		}
	}

	custom, err := project.LoadCustomProfiles(profilesPath())
	if err != nil {
		return WrapCLIError(ExitInvalidInput, "failed to load trim profiles", err)
	}
	replaced := false
	for i := range custom {
		if strings.EqualFold(custom[i].Name, profile.Name) {
			custom[i] = profile
			replaced = true
		}
	}
	if !replaced {
		custom = append(custom, profile)
	}
	if err := project.SaveCustomProfiles(profilesPath(), custom); err != nil {
		return WrapCLIError(ExitIOError, "failed to save trim profiles", err)
	}

	if IsJSONOutput() {
		return writeJSON(out, map[string]interface{}{"profile": profile.Name, "replaced": replaced})
	}
	fmt.Fprintf(out, "Imported profile %s\n", profile.Name)
	return nil
}
