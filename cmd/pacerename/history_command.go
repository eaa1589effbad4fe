package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pacerename/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var runID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded placements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			var rows []history.Placement
			if runID != "" {
				rows, err = store.Run(cmd.Context(), runID)
			} else {
				rows, err = store.List(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No placements recorded")
				return nil
			}
			fmt.Fprintln(out, renderHistoryTable(rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of placements to list (0 for all)")
	cmd.Flags().StringVar(&runID, "run", "", "Only list placements of this run id")
	return cmd
}

func renderHistoryTable(rows []history.Placement) string {
	headers := []string{"ID", "Run", "When", "Mode", "Arc", "Source", "Destination", "Undone"}
	data := make([][]string, 0, len(rows))
	for _, p := range rows {
		data = append(data, []string{
			strconv.FormatInt(p.ID, 10),
			shortRunID(p.RunID),
			p.CreatedAt.Local().Format("2006-01-02 15:04"),
			p.Mode,
			p.Arc,
			p.Source,
			p.Destination,
			yesNo(p.Undone()),
		})
	}
	return renderTable(headers, data, []columnAlignment{alignRight})
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
