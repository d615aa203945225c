package main

import (
	"fmt"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/skybi/tally/internal/config"
	"github.com/skybi/tally/internal/container"
	"github.com/spf13/cobra"
	"strings"
)

type demoOptions struct {
	kind      string
	workers   int
	rounds    int
	bracketed bool
	verbose   bool
}

func (opts *demoOptions) presentation() container.Presentation {
	if opts.bracketed {
		return container.PresentationBracketed
	}
	return container.PresentationPlain
}

func newRootCommand() *cobra.Command {
	opts := new(demoOptions)
	cmd := &cobra.Command{
		Use:   "tally-demo [key...]",
		Short: "Exercise a counter container and print its contents",
		Long: `tally-demo fills a counter container with a fixed sequence of operations,
increments every key given as an argument and finally runs a concurrent
increment load against it. The container is printed after every phase.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
			if opts.workers < 0 || opts.rounds < 0 {
				return fmt.Errorf("workers and rounds must not be negative")
			}
			switch strings.ToLower(opts.kind) {
			case config.ValueKindInt:
				return run[int64](cmd.OutOrStdout(), opts, args)
			case config.ValueKindFloat:
				return run[float64](cmd.OutOrStdout(), opts, args)
			default:
				return fmt.Errorf("unsupported value kind %q", opts.kind)
			}
		},
	}
	cmd.Flags().StringVar(&opts.kind, "kind", config.ValueKindInt, "numeric type of the container values (int or float)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 8, "amount of concurrent workers in the load phase")
	cmd.Flags().IntVarP(&opts.rounds, "rounds", "r", 1000, "amount of increments every worker performs")
	cmd.Flags().BoolVar(&opts.bracketed, "bracketed", false, "print entries as '[KEY] = VALUE'")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every created entry")

	// Report flag errors through the logger like every other error
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		log.Error().Err(err).Msg("invalid flags")
		return err
	})
	return cmd
}
