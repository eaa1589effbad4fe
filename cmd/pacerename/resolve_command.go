package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pacerename/internal/placement"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var targetDir string
	var referenceFile string

	cmd := &cobra.Command{
		Use:   "resolve <filename>...",
		Short: "Show the canonical name for release filenames without touching files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.configCopy()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("reference-file") {
				cfg.References.Episodes = referenceFile
				if err := cfg.Finalize(); err != nil {
					return err
				}
			}
			resolver, _, err := loadResolver(cfg)
			if err != nil {
				return err
			}

			var index *placement.Index
			if targetDir != "" {
				expanded, err := expandFlagPath(targetDir)
				if err != nil {
					return err
				}
				index, err = placement.NewIndex(expanded)
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, name := range args {
				resolved, err := resolver.Resolve(name)
				if err != nil {
					failed++
					fmt.Fprintf(out, "ERROR: %q: %v\n", name, err)
					continue
				}
				line := fmt.Sprintf("%q -> arc=%q name=%q", name, resolved.Arc, resolved.FileName)
				if index != nil {
					dst, err := index.Resolve(resolved.Arc, resolved.FileName)
					if err != nil {
						failed++
						fmt.Fprintf(out, "ERROR: %q: %v\n", name, err)
						continue
					}
					line += fmt.Sprintf(" dest=%q", dst)
				}
				fmt.Fprintln(out, line)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d names could not be resolved", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetDir, "target-dir", "t", "", "Also resolve the arc directory under this root")
	cmd.Flags().StringVarP(&referenceFile, "reference-file", "r", "", "Episode reference table")
	return cmd
}
