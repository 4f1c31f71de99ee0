package response

import (
	"encoding/json"
	"net/http"

	"kosan/shared/constant"
	"kosan/shared/failure"
	"kosan/shared/logger"
)

// Pagination is the list-endpoint metadata block.
type Pagination struct {
	CurrentPage  int `json:"current_page"`
	Limit        int `json:"limit"`
	TotalRecords int `json:"total_records"`
	TotalPages   int `json:"total_pages"`
}

// Envelope is the uniform response body: status plus optional message, data and
// pagination.
type Envelope struct {
	Status     string      `json:"status"`
	Message    string      `json:"message,omitempty"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// WithMessage sends a success envelope carrying only a message.
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Envelope{Status: constant.ResponseStatusSuccess, Message: message})
}

// WithJSON sends a success envelope carrying a data payload.
func WithJSON(writer http.ResponseWriter, code int, jsonPayload any) {
	response(writer, code, Envelope{Status: constant.ResponseStatusSuccess, Data: jsonPayload})
}

// WithPagination sends a success envelope carrying a list payload and its pagination
// metadata.
func WithPagination(writer http.ResponseWriter, code int, jsonPayload any, pagination Pagination) {
	response(writer, code, Envelope{
		Status:     constant.ResponseStatusSuccess,
		Data:       jsonPayload,
		Pagination: &pagination,
	})
}

// WithError sends an error envelope; the HTTP status mirrors the failure code.
// Internal errors carry wrapped driver detail, so those respond with a generic
// message and leave the detail to the service-layer logs.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		message = constant.ResponseErrorInternal
	}

	response(writer, code, Envelope{
		Status:  constant.ResponseStatusError,
		Message: message,
	})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	response(writer, http.StatusTooManyRequests, Envelope{
		Status:  constant.ResponseStatusError,
		Message: constant.ResponseErrorRequestLimitExceeded,
	})
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	response(writer, http.StatusServiceUnavailable, Envelope{
		Status:  constant.ResponseStatusError,
		Message: constant.ResponseErrorPrepareShutdown,
	})
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	response(writer, http.StatusServiceUnavailable, Envelope{
		Status:  constant.ResponseStatusError,
		Message: constant.ResponseErrorUnhealthy,
	})
}

func response(writer http.ResponseWriter, code int, payload Envelope) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
