package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"slipway/internal/config"
	"slipway/internal/deploy"
	"slipway/internal/history"
	"slipway/internal/toolchain"
)

func newPublishCommand(ctx *commandContext) *cobra.Command {
	var targetFlag string
	var yes bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Build the application and publish it to the queue or live target",
		Long: `Build the application and publish it to the chosen target.

Queue publishes stage the output for the external deployment agent. Live
publishes put up the offline marker, wait out the grace period, swap the
content, and remove the marker once the publish succeeded. Every attempt
is recorded in the audit log and the publish history.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			target, err := resolveTarget(cmd, cfg, targetFlag, yes)
			if err != nil {
				return err
			}

			opts := []deploy.Option{deploy.WithLogger(logger)}
			store, err := history.Open(cfg)
			if err != nil {
				logger.Warn("publish history unavailable", "component", "history", "error", err)
			} else {
				defer store.Close()
				opts = append(opts, deploy.WithHistory(store))
			}

			runner := toolchain.NewCLI(cfg, toolchain.WithLogger(logger))
			orch, err := deploy.New(cfg, runner, opts...)
			if err != nil {
				return err
			}

			outcome := orch.Run(cmd.Context(), target)
			out := cmd.OutOrStdout()
			if !outcome.Succeeded() {
				return errors.New(outcome.Message)
			}
			fmt.Fprintln(out, outcome.Message)
			if target.Kind == deploy.KindLive && target.URL != "" {
				fmt.Fprintf(out, "Live site: %s\n", target.URL)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetFlag, "target", "t", "", "Publish target: queue or live (skips the interactive prompt)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm a live publish without prompting")
	return cmd
}

func resolveTarget(cmd *cobra.Command, cfg *config.Config, targetFlag string, yes bool) (deploy.Target, error) {
	switch strings.ToLower(strings.TrimSpace(targetFlag)) {
	case "queue":
		return deploy.QueueTarget(cfg), nil
	case "live":
		if yes {
			return deploy.LiveTarget(cfg), nil
		}
		if !isTerminal(os.Stdin) {
			return deploy.Target{}, errors.New("a live publish needs --yes when stdin is not a terminal")
		}
		return confirmLive(cmd, cfg)
	case "":
		if !isTerminal(os.Stdin) {
			return deploy.Target{}, errors.New("no terminal available; use --target queue or --target live --yes")
		}
		return selectTarget(cmd.InOrStdin(), cmd.OutOrStdout(), cfg)
	default:
		return deploy.Target{}, fmt.Errorf("invalid target %q (expected queue or live)", targetFlag)
	}
}

func confirmLive(cmd *cobra.Command, cfg *config.Config) (deploy.Target, error) {
	out := cmd.OutOrStdout()
	fmt.Fprint(out, "This takes the live site offline during the swap. Proceed? [y/N]: ")

	var answer string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &answer); err != nil {
		return deploy.Target{}, errors.New("live publish not confirmed")
	}
	if strings.TrimSpace(answer) != "y" {
		return deploy.Target{}, errors.New("live publish not confirmed")
	}
	return deploy.LiveTarget(cfg), nil
}
