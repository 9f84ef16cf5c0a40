package main

import (
	"github.com/spf13/cobra"

	"github.com/comalice/pg2hda"
	"github.com/comalice/pg2hda/internal/input"
)

func newConvertCmd(f *flags) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "convert [flags] FILE...",
		Short: "Rewrite a system in the YAML input format",
		Long: `Read a system and write it as one YAML document. Evaluation tables of the
legacy format become guard expressions and evaluation maps become one
transition per row.

Examples:
  pg2hda convert --old p0.pg p1.pg > system.yaml
  pg2hda convert --old -o system.yaml p0.pg p1.pg`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := start(cmd, f)
			if err != nil {
				return err
			}
			defer func() { err = s.finish(err) }()

			sys, err := pg2hda.Load(s.mode, args...)
			if err != nil {
				return err
			}
			if output != "" {
				return input.SaveYAML(output, sys)
			}
			return input.WriteYAML(cmd.OutOrStdout(), sys)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of standard output")
	return cmd
}
