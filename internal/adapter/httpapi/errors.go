package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/campuscoffee/pos-service/internal/domain"
)

// APIError is the JSON error body returned to clients.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func newAPIError(code, message string, status int) *APIError {
	return &APIError{Code: code, Message: message, Status: status}
}

var errInvalidInput = newAPIError("INVALID_INPUT", "invalid request data", http.StatusBadRequest)

// toAPIError maps domain failures onto client-visible responses. Unknown
// errors collapse to a generic 500 without leaking internals.
func toAPIError(err error) *APIError {
	var (
		nodeNotFound  *domain.NodeNotFoundError
		posNotFound   *domain.PosNotFoundError
		missingFields *domain.MissingFieldsError
		duplicateName *domain.DuplicateNameError
		unavailable   *domain.FetchUnavailableError
	)

	switch {
	case errors.As(err, &nodeNotFound):
		return newAPIError("OSM_NODE_NOT_FOUND", nodeNotFound.Error(), http.StatusNotFound)
	case errors.As(err, &posNotFound):
		return newAPIError("POS_NOT_FOUND", posNotFound.Error(), http.StatusNotFound)
	case errors.As(err, &missingFields):
		return newAPIError("OSM_NODE_MISSING_FIELDS", missingFields.Error(), http.StatusUnprocessableEntity)
	case errors.As(err, &duplicateName):
		return newAPIError("DUPLICATE_POS_NAME", duplicateName.Error(), http.StatusConflict)
	case errors.As(err, &unavailable):
		return newAPIError("OSM_UNAVAILABLE", "external geodata service unavailable", http.StatusBadGateway)
	default:
		return newAPIError("INTERNAL_SERVER_ERROR", "internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	apiErr := toAPIError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, apiErr.Status, apiErr)
}

func (s *Server) writeAPIError(w http.ResponseWriter, apiErr *APIError) {
	writeJSON(w, apiErr.Status, apiErr)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response body
}
