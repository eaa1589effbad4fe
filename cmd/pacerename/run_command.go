package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"pacerename/internal/config"
	"pacerename/internal/history"
	"pacerename/internal/logging"
	"pacerename/internal/organizer"
)

type runOptions struct {
	directory     string
	targetDir     string
	episodesRef   string
	chaptersRef   string
	coverPagesRef string
	recursive     bool
	dryRun        bool
	hardlink      bool
	mode          string
	overwrite     bool
	noRefresh     bool
	noHistory     bool
	table         bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:     "run",
		Aliases: []string{"rename"},
		Short:   "Rename and place release files",
		Long: "Discover One Pace release files in the source directory, resolve each to its\n" +
			"canonical episode name, and move, link, or copy it into the matching arc\n" +
			"directory under the target root. Files that cannot be resolved are reported\n" +
			"and left in place.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.configCopy()
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, cfg); err != nil {
				return err
			}
			return runRename(cmd, ctx, cfg, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.directory, "directory", "d", "", "Directory containing release files")
	flags.StringVarP(&opts.targetDir, "target-dir", "t", "", "Library root holding one directory per arc")
	flags.StringVarP(&opts.episodesRef, "reference-file", "r", "", "Episode reference table")
	flags.StringVar(&opts.chaptersRef, "chapter-reference-file", "", "Chapter reference table")
	flags.StringVar(&opts.coverPagesRef, "coverpage-reference-file", "", "Cover page reference table")
	flags.BoolVarP(&opts.recursive, "recursive", "R", false, "Scan subdirectories of the source directory")
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", false, "Print planned placements without touching files")
	flags.BoolVar(&opts.hardlink, "hardlink", false, "Hard link instead of moving (same as --mode hardlink)")
	flags.StringVar(&opts.mode, "mode", "", "Placement mode: move, hardlink, or copy")
	flags.BoolVar(&opts.overwrite, "overwrite", false, "Replace existing destination files")
	flags.BoolVar(&opts.noRefresh, "no-refresh", false, "Skip Jellyfin/Plex library refresh")
	flags.BoolVar(&opts.noHistory, "no-history", false, "Do not record placements in the history ledger")
	flags.BoolVar(&opts.table, "table", false, "Render results as a table")
	cmd.MarkFlagsMutuallyExclusive("hardlink", "mode")

	return cmd
}

func (o runOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("directory") {
		cfg.Paths.SourceDir = o.directory
	}
	if flags.Changed("target-dir") {
		cfg.Paths.TargetDir = o.targetDir
	}
	if flags.Changed("reference-file") {
		cfg.References.Episodes = o.episodesRef
	}
	if flags.Changed("chapter-reference-file") {
		cfg.References.Chapters = o.chaptersRef
	}
	if flags.Changed("coverpage-reference-file") {
		cfg.References.CoverPages = o.coverPagesRef
	}
	if flags.Changed("recursive") {
		cfg.Organize.Recursive = o.recursive
	}
	if o.hardlink {
		cfg.Organize.Mode = config.ModeHardlink
	}
	if flags.Changed("mode") {
		cfg.Organize.Mode = o.mode
	}
	if flags.Changed("overwrite") {
		cfg.Organize.OverwriteExisting = o.overwrite
	}
	if o.noHistory {
		cfg.Organize.History = false
	}
	if o.noRefresh {
		cfg.Jellyfin.Enabled = false
		cfg.Plex.Enabled = false
	}
	return cfg.Finalize()
}

func runRename(cmd *cobra.Command, ctx *commandContext, cfg *config.Config, opts runOptions) error {
	logger, err := ctx.logger(cfg, !opts.dryRun)
	if err != nil {
		return err
	}
	resolver, tables, err := loadResolver(cfg)
	if err != nil {
		return err
	}
	stats := tables.Stats()
	logger.Info("reference tables loaded", logging.Group("references",
		logging.Int("arcs", stats.Arcs),
		logging.Int("episodes", stats.Episodes),
		logging.Int("chapters", stats.Chapters),
		logging.Int("cover_pages", stats.CoverPages),
	))
	files, err := organizer.Discover(cfg.Paths.SourceDir, cfg.Organize.Recursive, cfg.Organize.Extensions)
	if err != nil {
		return err
	}

	var store *history.Store
	if cfg.Organize.History && !opts.dryRun {
		store, err = history.Open(cfg)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer store.Close()
	}

	org := organizer.NewWithDependencies(cfg, resolver, logger, store, organizer.ConfiguredRefreshers(cfg)...)
	report, runErr := org.Run(cmd.Context(), files, opts.dryRun)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		logging.ErrorWithContext(logger, "run aborted", logging.Problem{
			Event:  "run_aborted",
			Err:    runErr,
			Hint:   "fix the configuration or wait for the other run to finish",
			Impact: "remaining files were not processed",
		})
	}
	if report == nil {
		return runErr
	}

	out := cmd.OutOrStdout()
	if opts.table {
		fmt.Fprintln(out, renderPlanTable(report.Plan))
	} else {
		for _, entry := range report.Plan.Entries {
			fmt.Fprintln(out, organizer.FormatEntry(report.Plan.Mode, entry))
		}
	}
	fmt.Fprintln(out, report.Summary.String())
	if len(report.Refreshed) > 0 {
		fmt.Fprintf(out, "Refreshed: %v\n", report.Refreshed)
	}

	if runErr != nil {
		return runErr
	}
	if report.Summary.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", report.Summary.Failed, report.Summary.Total)
	}
	return nil
}

func renderPlanTable(plan *organizer.Plan) string {
	headers := []string{"Status", "Arc", "Source", "Destination / Error"}
	rows := make([][]string, 0, len(plan.Entries))
	for _, entry := range plan.Entries {
		status := entry.Status.String()
		detail := entry.Destination
		switch entry.Status {
		case organizer.StatusPending:
			status = "dry-run"
		case organizer.StatusPlaced:
			status = organizer.ActionLabel(plan.Mode)
		case organizer.StatusFailed:
			status = entry.Category()
			detail = entry.Err.Error()
		}
		rows = append(rows, []string{status, entry.Arc, filepath.Base(entry.Source), detail})
	}
	return renderTable(headers, rows, nil)
}
