package main

import (
	"fmt"
	"github.com/rs/zerolog/log"
	"github.com/skybi/tally/internal/cell"
	"github.com/skybi/tally/internal/container"
	"github.com/skybi/tally/internal/random"
	"io"
	"sync"
)

const loadKey = "A1"

func run[T cell.Number](out io.Writer, opts *demoOptions, args []string) error {
	counters := container.New[T](container.WithLogger(log.Logger))

	if err := fixedSequence(counters); err != nil {
		return err
	}
	fmt.Fprintln(out, "# fixed sequence")
	fmt.Fprint(out, counters.Render(opts.presentation()))

	// Invalid keys are reported but never abort the demo
	for _, raw := range append([]string{"A0"}, args...) {
		value, err := counters.Increment(raw)
		if err != nil {
			log.Error().Err(err).Str("key", raw).Msg("could not increment counter")
			continue
		}
		log.Info().Str("key", raw).Str("value", fmt.Sprint(value)).Msg("incremented counter")
	}
	if len(args) > 0 {
		fmt.Fprintln(out, "# arguments")
		fmt.Fprint(out, counters.Render(opts.presentation()))
	}

	if opts.workers == 0 || opts.rounds == 0 {
		return nil
	}
	before, err := counters.Access(loadKey)
	if err != nil {
		return err
	}
	start := before.Read()
	load(counters, opts.workers, opts.rounds)
	log.Info().
		Int("workers", opts.workers).
		Int("rounds", opts.rounds).
		Str("expected", fmt.Sprint(expectedAfterLoad(start, opts.workers, opts.rounds))).
		Str("actual", fmt.Sprint(before.Read())).
		Msg("finished concurrent load")

	fmt.Fprintln(out, "# concurrent load")
	fmt.Fprint(out, counters.Render(opts.presentation()))
	return nil
}

// fixedSequence applies the canonical demonstration sequence
func fixedSequence[T cell.Number](counters *container.Container[T]) error {
	first, err := counters.Access("A1")
	if err != nil {
		return err
	}
	first.Assign(120)
	first.Increment()

	for _, raw := range []string{"A2-A2", "A2", "A3", "A1-A2"} {
		if err := counters.Set(raw, 320); err != nil {
			return err
		}
	}
	for _, raw := range []string{"A1-A3", "A2-A4"} {
		if _, err := counters.Increment(raw); err != nil {
			return err
		}
	}
	return nil
}

// expectedAfterLoad computes the value of loadKey after load in T's own arithmetic, so integer
// types wrap exactly like the cell does
func expectedAfterLoad[T cell.Number](start T, workers, rounds int) T {
	return start + T(workers)*T(rounds)
}

// load lets every worker increment loadKey rounds times, interleaved with increments of random multi-section keys
func load[T cell.Number](counters *container.Container[T], workers, rounds int) {
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				if _, err := counters.Increment(loadKey); err != nil {
					log.Error().Err(err).Int("worker", worker).Msg("could not increment counter")
					return
				}
				if j%100 == 0 {
					if _, err := counters.Increment(random.Key(2 + j%2)); err != nil {
						log.Error().Err(err).Int("worker", worker).Msg("could not increment counter")
						return
					}
				}
			}
		}(i)
	}
	wg.Wait()
}
