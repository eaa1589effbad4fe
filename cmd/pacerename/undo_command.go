package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pacerename/internal/history"
	"pacerename/internal/organizer"
)

func newUndoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "undo [run-id]",
		Short: "Reverse the placements of the latest (or named) run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cfg, true)
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			runID := ""
			if len(args) == 1 {
				runID = args[0]
			}
			org := organizer.NewWithDependencies(cfg, nil, logger, store)
			report, err := org.Undo(cmd.Context(), runID)
			if report == nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, entry := range report.Entries {
				p := entry.Placement
				switch {
				case entry.AlreadyUndone:
					fmt.Fprintf(out, "SKIP: %q already undone\n", p.Destination)
				case entry.Err != nil:
					fmt.Fprintf(out, "ERROR: %q: %v\n", p.Destination, entry.Err)
				default:
					fmt.Fprintf(out, "REVERTED: %q -> %q\n", p.Destination, p.Source)
				}
			}
			fmt.Fprintf(out, "Undo %s: %d reverted, %d failed\n", shortRunID(report.RunID), report.Reverted, report.Failed)
			if err != nil {
				return err
			}
			if report.Failed > 0 {
				return fmt.Errorf("%d placements could not be reverted", report.Failed)
			}
			return nil
		},
	}
}
