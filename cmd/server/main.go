package main

import (
	"fmt"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/skybi/tally/internal/api"
	"github.com/skybi/tally/internal/cell"
	"github.com/skybi/tally/internal/config"
	"github.com/skybi/tally/internal/container"
	"github.com/skybi/tally/internal/task"
	"os"
	"os/signal"
)

func main() {
	// Set up zerolog to use pretty printing
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out: os.Stderr,
	})
	log.Info().Msg("starting up...")

	// Load the application configuration
	log.Info().Msg("loading configuration...")
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load the configuration")
	}
	if cfg.IsEnvProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Debug().Str("config", fmt.Sprintf("%+v", cfg)).Msg("")

	if cfg.ValueKind == config.ValueKindFloat {
		serve[float64](cfg)
	} else {
		serve[int64](cfg)
	}
}

func serve[T cell.Number](cfg *config.Config) {
	// Create the counter container
	counters := container.New[T](
		container.WithMaxKeyLength(cfg.MaxKeyLength),
		container.WithLogger(log.Logger),
	)

	// Schedule a task that periodically reports the current counters
	if cfg.ReportInterval > 0 {
		reportTask := task.NewRepeating(func() {
			entries := counters.Entries()
			for _, entry := range entries {
				log.Info().Str("key", entry.Key).Str("value", fmt.Sprint(entry.Value)).Msg("counter")
			}
			log.Info().Int("amount", len(entries)).Msg("reported counters")
		}, cfg.ReportInterval)
		reportTask.Start()
		defer reportTask.Stop(true)
	}

	// Start up the counter API
	log.Info().Str("api", cfg.APIListenAddress).Str("kind", cfg.ValueKind).Msg("starting up counter API...")
	service := &api.Service[T]{
		ListenAddress: cfg.APIListenAddress,
		Counters:      counters,
	}
	apiErrs := make(chan error, 1)
	service.Startup(apiErrs)
	go func() {
		err := <-apiErrs
		log.Fatal().Err(err).Msg("the counter API raised an unexpected error")
	}()
	defer func() {
		log.Info().Msg("shutting down the counter API...")
		service.Shutdown()
	}()

	log.Info().Msg("done!")
	defer log.Info().Msg("shutting down...")

	// Wait for the application to be terminated
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)
	<-shutdown
}
