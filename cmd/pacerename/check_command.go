package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pacerename/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check directories, reference tables, and media servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			configLabel := ctx.configPath
			if !ctx.configSeen {
				configLabel += " (not found, using defaults)"
			}
			target := cfg.Paths.TargetDir
			if cfg.InPlace() {
				target = "in place"
			}
			info := [][2]string{
				{"Config", configLabel},
				{"Mode", cfg.Organize.Mode},
				{"Placement", target},
			}

			results := preflight.RunAll(cmd.Context(), cfg)
			out := cmd.OutOrStdout()
			report := newCheckReport(info, results, shouldColorize(out))
			for _, row := range info {
				fmt.Fprintln(out, report.info(row[0], row[1]))
			}
			for _, result := range results {
				fmt.Fprintln(out, report.result(result))
			}
			fmt.Fprintln(out, report.summary(results))

			if preflight.Failed(results) {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}
}
