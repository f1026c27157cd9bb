package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"slipway/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check toolchain binaries and target directory access",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.Run(cfg)
			out := cmd.OutOrStdout()
			failed := 0
			for _, res := range results {
				status := "ok"
				if !res.Passed {
					status = "FAIL"
					failed++
				}
				fmt.Fprintf(out, "%-4s %-18s %s\n", status, res.Name, res.Detail)
			}
			if failed > 0 {
				return errors.New("preflight checks failed")
			}
			return nil
		},
	}
}
