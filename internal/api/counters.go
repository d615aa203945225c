package api

import (
	"encoding/json"
	"github.com/go-chi/chi/v5"
	"github.com/skybi/tally/internal/api/schema"
	"github.com/skybi/tally/internal/cell"
	"github.com/skybi/tally/internal/container"
	"github.com/skybi/tally/internal/key"
	"math"
	"net/http"
)

const (
	formatJSON      = "json"
	formatText      = "text"
	formatBracketed = "bracketed"
)

type setCounterRequest struct {
	Value *json.Number `json:"value" required:"true"`
}

// EndpointGetCounters handles the 'GET /v1/counters?format={json|text|bracketed}&offset={number?:0}&limit={number?:100}' endpoint
func (service *Service[T]) EndpointGetCounters(writer http.ResponseWriter, request *http.Request) {
	var validationErrs []*schema.Error

	format, validationErr := schema.QueryOption(request, "format", formatJSON, formatText, formatBracketed)
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}

	offset, validationErr := schema.QueryNumber(request, "offset", 0, 0, math.MaxInt64)
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}

	limit, validationErr := schema.QueryNumber(request, "limit", 100, 1, 1000)
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}

	if len(validationErrs) > 0 {
		service.responses().WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	switch format {
	case formatText:
		service.responses().WriteText(writer, service.Counters.Render(container.PresentationPlain))
	case formatBracketed:
		service.responses().WriteText(writer, service.Counters.Render(container.PresentationBracketed))
	default:
		service.responses().WriteJSON(writer, schema.Paginate(uint64(offset), uint64(limit), service.Counters.Entries()))
	}
}

// EndpointGetCounter handles the 'GET /v1/counters/{key}' endpoint.
// Unknown keys are created with a zero value.
func (service *Service[T]) EndpointGetCounter(writer http.ResponseWriter, request *http.Request) {
	raw := chi.URLParam(request, "key")
	handle, err := service.Counters.Access(raw)
	if err != nil {
		service.writeKeyError(writer, err)
		return
	}
	service.writeCounter(writer, raw, handle.Read())
}

// EndpointIncrementCounter handles the 'POST /v1/counters/{key}/increment' endpoint
func (service *Service[T]) EndpointIncrementCounter(writer http.ResponseWriter, request *http.Request) {
	raw := chi.URLParam(request, "key")
	value, err := service.Counters.Increment(raw)
	if err != nil {
		service.writeKeyError(writer, err)
		return
	}
	service.writeCounter(writer, raw, value)
}

// EndpointSetCounter handles the 'PUT /v1/counters/{key}' endpoint
func (service *Service[T]) EndpointSetCounter(writer http.ResponseWriter, request *http.Request) {
	body, validationErrs, err := schema.UnmarshalBody[setCounterRequest](request)
	if err != nil {
		service.responses().WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.responses().WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	value, err := cell.Parse[T](body.Value.String())
	if err != nil {
		service.responses().WriteErrors(writer, http.StatusBadRequest, errValueInvalid(body.Value.String(), err))
		return
	}

	raw := chi.URLParam(request, "key")
	if err := service.Counters.Set(raw, value); err != nil {
		service.writeKeyError(writer, err)
		return
	}
	service.writeCounter(writer, raw, value)
}

func (service *Service[T]) writeCounter(writer http.ResponseWriter, raw string, value T) {
	service.responses().WriteJSON(writer, &container.Entry[T]{
		Key:   key.Normalize(raw),
		Value: value,
	})
}

func (service *Service[T]) writeKeyError(writer http.ResponseWriter, err error) {
	if apiErr := keyError(err); apiErr != nil {
		service.responses().WriteErrors(writer, http.StatusBadRequest, apiErr)
		return
	}
	service.responses().WriteInternalError(writer, err)
}
