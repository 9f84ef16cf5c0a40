package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comalice/pg2hda"
	"github.com/comalice/pg2hda/internal/render"
)

func newBatchCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [flags] FILE...",
		Short: "Build every file as an independent system",
		Long: `Build every file as a system of its own. Systems are built concurrently
and printed in argument order, each preceded by a header line.

Examples:
  pg2hda batch -s examples/*.yaml
  pg2hda batch --old --parallelism 8 -t models/*.pg`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, f, args)
		},
	}
	cmd.Flags().IntVarP(&f.parallelism, "parallelism", "p", 0, "systems built at the same time (default from configuration)")
	return cmd
}

func runBatch(cmd *cobra.Command, f *flags, args []string) (err error) {
	s, err := start(cmd, f)
	if err != nil {
		return err
	}
	defer func() { err = s.finish(err) }()

	results, err := pg2hda.BuildFiles(cmd.Context(), s.mode, args, s.cfg.Batch.Parallelism, s.options())
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for i, res := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "==> %s <==\n", args[i]); err != nil {
			return err
		}
		if err := render.Render(w, s.format, res.System, res.Complex); err != nil {
			return fmt.Errorf("%s: %w", args[i], err)
		}
	}
	return nil
}
