package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"roombook/shared/constant"
	"roombook/shared/failure"
	"roombook/transport/http/response"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestWithCreated(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithCreated(rec, "/v1/rooms/R101", map[string]string{"code": "R101"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/v1/rooms/R101", rec.Header().Get(constant.ResponseHeaderLocation))
	assert.Equal(t, constant.ContentTypeJSON, rec.Header().Get(constant.RequestHeaderContentType))
	assert.Equal(t, map[string]any{"code": "R101"}, decode(t, rec)["data"])
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "client error keeps message",
			err:     failure.Conflict("room R101 is already booked for that window"),
			code:    http.StatusConflict,
			message: "room R101 is already booked for that window",
		},
		{
			name:    "not found",
			err:     failure.NotFound("booking not found"),
			code:    http.StatusNotFound,
			message: "booking not found",
		},
		{
			name:    "unclassified error is masked",
			err:     errors.New("pq: password authentication failed"),
			code:    http.StatusInternalServerError,
			message: constant.ResponseErrorInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			response.WithError(rec, tt.err)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.message, decode(t, rec)["error"])
		})
	}
}

func TestWithRequestLimitExceeded(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithRequestLimitExceeded(rec)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, constant.ResponseErrorRequestLimitExceeded, decode(t, rec)["message"])
}
