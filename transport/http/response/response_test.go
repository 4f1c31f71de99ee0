package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"kosan/shared/constant"
	"kosan/shared/failure"
	"kosan/transport/http/response"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
	}{
		{
			name:        "failure code and message pass through",
			err:         failure.BadRequestFromString("amount must not be negative"),
			wantCode:    http.StatusBadRequest,
			wantMessage: "amount must not be negative",
		},
		{
			name:        "not found passes through",
			err:         failure.NotFound("invoice"),
			wantCode:    http.StatusNotFound,
			wantMessage: "invoice",
		},
		{
			name:        "wrapped driver error is masked",
			err:         fmt.Errorf("failed to create invoice: %w", errors.New(`pq: connection refused host=db-write`)),
			wantCode:    http.StatusInternalServerError,
			wantMessage: constant.ResponseErrorInternal,
		},
		{
			name:        "explicit internal failure is masked",
			err:         failure.InternalError(errors.New("sql: transaction has already been committed")),
			wantCode:    http.StatusInternalServerError,
			wantMessage: constant.ResponseErrorInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			response.WithError(recorder, tt.err)

			assert.Equal(t, tt.wantCode, recorder.Code)

			var envelope response.Envelope
			assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.Equal(t, constant.ResponseStatusError, envelope.Status)
			assert.Equal(t, tt.wantMessage, envelope.Message)
		})
	}
}
