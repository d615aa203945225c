package api

import (
	"encoding/json"
	"github.com/skybi/tally/internal/api/schema"
	"github.com/skybi/tally/internal/cell"
	"github.com/skybi/tally/internal/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer[T cell.Number](t *testing.T) (*httptest.Server, *container.Container[T]) {
	t.Helper()
	counters := container.New[T]()
	service := &Service[T]{Counters: counters}
	server := httptest.NewServer(service.Router())
	t.Cleanup(server.Close)
	return server, counters
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	request, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	response, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	return response, raw
}

func decode[V any](t *testing.T, raw []byte) *V {
	t.Helper()
	target := new(V)
	require.NoError(t, json.Unmarshal(raw, target), string(raw))
	return target
}

func TestIncrementEndpoint(t *testing.T) {
	server, counters := newTestServer[int64](t)

	for i := int64(1); i <= 3; i++ {
		response, body := do(t, http.MethodPost, server.URL+"/v1/counters/a1-b2/increment", "")
		require.Equal(t, http.StatusOK, response.StatusCode, string(body))
		assert.Equal(t, &container.Entry[int64]{Key: "A1-B2", Value: i}, decode[container.Entry[int64]](t, body))
	}
	assert.Equal(t, []container.Entry[int64]{{Key: "A1-B2", Value: 3}}, counters.Entries())
}

func TestSetEndpoint(t *testing.T) {
	server, counters := newTestServer[int64](t)

	response, body := do(t, http.MethodPut, server.URL+"/v1/counters/A2", `{"value": 320}`)
	require.Equal(t, http.StatusOK, response.StatusCode, string(body))
	assert.Equal(t, &container.Entry[int64]{Key: "A2", Value: 320}, decode[container.Entry[int64]](t, body))

	response, body = do(t, http.MethodPut, server.URL+"/v1/counters/a2", `{"value": "-5"}`)
	require.Equal(t, http.StatusOK, response.StatusCode, string(body))
	assert.Equal(t, []container.Entry[int64]{{Key: "A2", Value: -5}}, counters.Entries())
}

func TestSetEndpointFloat(t *testing.T) {
	server, counters := newTestServer[float64](t)

	response, body := do(t, http.MethodPut, server.URL+"/v1/counters/B3", `{"value": 1.25}`)
	require.Equal(t, http.StatusOK, response.StatusCode, string(body))
	assert.Equal(t, []container.Entry[float64]{{Key: "B3", Value: 1.25}}, counters.Entries())
}

func TestSetEndpointRejectsInvalidBodies(t *testing.T) {
	server, counters := newTestServer[int64](t)

	tests := map[string]string{
		`{}`:                "validation.requestBody.parameter.missing",
		`{"value": 1.5}`:    "validation.value.invalid",
		`{"value": true}`:   "validation.requestBody.parameter.invalidType",
		`not json`:          "validation.requestBody.invalidJSON",
		`{"value": "1e99"}`: "validation.value.invalid",
	}
	for raw, want := range tests {
		t.Run(raw, func(t *testing.T) {
			response, body := do(t, http.MethodPut, server.URL+"/v1/counters/A1", raw)
			assert.Equal(t, http.StatusBadRequest, response.StatusCode)
			res := decode[schema.ErrorResponse](t, body)
			require.Len(t, res.Errors, 1)
			assert.Equal(t, want, res.Errors[0].Type)
		})
	}
	assert.Zero(t, counters.Size())
}

func TestGetEndpointCreatesEntry(t *testing.T) {
	server, counters := newTestServer[int64](t)

	response, body := do(t, http.MethodGet, server.URL+"/v1/counters/c3", "")
	require.Equal(t, http.StatusOK, response.StatusCode, string(body))
	assert.Equal(t, &container.Entry[int64]{Key: "C3", Value: 0}, decode[container.Entry[int64]](t, body))
	assert.Equal(t, 1, counters.Size())
}

func TestInvalidKeys(t *testing.T) {
	server, counters := newTestServer[int64](t)

	tests := map[string]string{
		"A1-A1-A1-A1-A1-A1-A1-A1-A1-A1-A1": "validation.key.tooLong",
		"A12":                              "validation.key.invalidSectionLength",
		"D1":                               "validation.key.invalidLeadingCharacter",
		"A1-A0":                            "validation.key.invalidTrailingCharacter",
	}
	for raw, want := range tests {
		t.Run(raw, func(t *testing.T) {
			for _, req := range []struct{ method, path, body string }{
				{http.MethodGet, "/v1/counters/" + raw, ""},
				{http.MethodPost, "/v1/counters/" + raw + "/increment", ""},
				{http.MethodPut, "/v1/counters/" + raw, `{"value": 1}`},
			} {
				response, body := do(t, req.method, server.URL+req.path, req.body)
				assert.Equal(t, http.StatusBadRequest, response.StatusCode)
				res := decode[schema.ErrorResponse](t, body)
				require.Len(t, res.Errors, 1)
				assert.Equal(t, want, res.Errors[0].Type)
			}
		})
	}
	assert.Zero(t, counters.Size())
}

func TestListEndpoint(t *testing.T) {
	server, counters := newTestServer[int64](t)
	for _, k := range []string{"A9", "A1-A2", "A2"} {
		_, err := counters.Increment(k)
		require.NoError(t, err)
	}

	response, body := do(t, http.MethodGet, server.URL+"/v1/counters", "")
	require.Equal(t, http.StatusOK, response.StatusCode, string(body))
	res := decode[schema.PaginatedResponse[container.Entry[int64]]](t, body)
	assert.Equal(t, uint64(3), res.Pagination.TotalCount)
	assert.Equal(t, []container.Entry[int64]{
		{Key: "A2", Value: 1},
		{Key: "A9", Value: 1},
		{Key: "A1-A2", Value: 1},
	}, res.Data)

	response, body = do(t, http.MethodGet, server.URL+"/v1/counters?offset=1&limit=1", "")
	require.Equal(t, http.StatusOK, response.StatusCode, string(body))
	res = decode[schema.PaginatedResponse[container.Entry[int64]]](t, body)
	assert.Equal(t, 1, res.Pagination.IncludedCount)
	assert.Equal(t, []container.Entry[int64]{{Key: "A9", Value: 1}}, res.Data)
}

func TestListEndpointText(t *testing.T) {
	server, counters := newTestServer[int64](t)
	require.NoError(t, counters.Set("A1", 121))
	require.NoError(t, counters.Set("A1-A2", 320))

	response, body := do(t, http.MethodGet, server.URL+"/v1/counters?format=text", "")
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "A1 121\nA1-A2 320\n", string(body))
	assert.Contains(t, response.Header.Get("Content-Type"), "text/plain")

	response, body = do(t, http.MethodGet, server.URL+"/v1/counters?format=BRACKETED", "")
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "[A1] = 121\n[A1-A2] = 320\n", string(body))
}

func TestListEndpointRejectsInvalidQuery(t *testing.T) {
	server, _ := newTestServer[int64](t)

	response, body := do(t, http.MethodGet, server.URL+"/v1/counters?format=xml&limit=0&offset=abc", "")
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	res := decode[schema.ErrorResponse](t, body)
	require.Len(t, res.Errors, 3)
	assert.Equal(t, "validation.query.parameter.unknownOption", res.Errors[0].Type)
	assert.Equal(t, "validation.query.parameter.invalidType", res.Errors[1].Type)
	assert.Equal(t, "validation.query.parameter.number.outOfRange", res.Errors[2].Type)
}

func TestUnknownRoutes(t *testing.T) {
	server, _ := newTestServer[int64](t)

	response, body := do(t, http.MethodGet, server.URL+"/v2/nothing", "")
	assert.Equal(t, http.StatusNotFound, response.StatusCode)
	assert.Equal(t, "generic.notFound", decode[schema.ErrorResponse](t, body).Errors[0].Type)

	response, body = do(t, http.MethodDelete, server.URL+"/v1/counters/A1", "")
	assert.Equal(t, http.StatusMethodNotAllowed, response.StatusCode)
	assert.Equal(t, "generic.methodNotAllowed", decode[schema.ErrorResponse](t, body).Errors[0].Type)
}

func TestEndpointsWorkWithoutRouter(t *testing.T) {
	counters := container.New[int64]()
	require.NoError(t, counters.Set("A1", 7))
	service := &Service[int64]{Counters: counters}

	recorder := httptest.NewRecorder()
	service.EndpointGetCounters(recorder, httptest.NewRequest(http.MethodGet, "/v1/counters?format=text", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "A1 7\n", recorder.Body.String())

	// Without chi's routing context the key parameter is empty and therefore invalid
	recorder = httptest.NewRecorder()
	service.EndpointIncrementCounter(recorder, httptest.NewRequest(http.MethodPost, "/v1/counters/A1/increment", nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	res := decode[schema.ErrorResponse](t, recorder.Body.Bytes())
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "validation.key.invalidSectionLength", res.Errors[0].Type)
}

func TestRouterSharesWriter(t *testing.T) {
	service := &Service[int64]{Counters: container.New[int64]()}
	first := service.responses()
	service.Router()
	service.Router()
	assert.Same(t, first, service.responses())
}
