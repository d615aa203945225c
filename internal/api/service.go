package api

import (
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"github.com/skybi/tally/internal/api/schema"
	"github.com/skybi/tally/internal/cell"
	"github.com/skybi/tally/internal/container"
	"net/http"
	"sync"
)

// Service represents the counter API service
type Service[T cell.Number] struct {
	server *http.Server

	ListenAddress string
	Counters      *container.Container[T]

	writerOnce sync.Once
	writer     *schema.Writer
}

// Startup starts up the counter API in the background.
// Unexpected server errors are sent to errs.
func (service *Service[T]) Startup(errs chan<- error) {
	server := &http.Server{
		Addr:    service.ListenAddress,
		Handler: service.Router(),
	}
	service.server = server
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()
}

// Shutdown shuts down the counter API
func (service *Service[T]) Shutdown() {
	if service.server != nil {
		service.server.Close()
		service.server = nil
	}
}

// responses returns the schema writer shared by every endpoint, creating it on first use
func (service *Service[T]) responses() *schema.Writer {
	service.writerOnce.Do(func() {
		service.writer = &schema.Writer{
			InternalErrorHook: func(err error) {
				log.Error().Err(err).Msg("the counter API experienced an unexpected error")
			},
		}
	})
	return service.writer
}

// Router builds the HTTP handler serving the counter API
func (service *Service[T]) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RedirectSlashes)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://*", "https://*"},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
		},
		AllowedHeaders: []string{"*"},
	}))
	router.NotFound(func(writer http.ResponseWriter, _ *http.Request) {
		service.responses().WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, _ *http.Request) {
		service.responses().WriteErrors(writer, http.StatusMethodNotAllowed, schema.ErrMethodNotAllowed)
	})

	router.Get("/v1/counters", service.EndpointGetCounters)
	router.Get("/v1/counters/{key}", service.EndpointGetCounter)
	router.Put("/v1/counters/{key}", service.EndpointSetCounter)
	router.Post("/v1/counters/{key}/increment", service.EndpointIncrementCounter)

	return router
}
