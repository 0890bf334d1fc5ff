package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bookaroo/create-event-service/internal/domain"
)

// createEventResponse is the public response contract:
// a human-readable message plus optional error detail.
type createEventResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// statusForOutcome maps a workflow outcome onto an HTTP status. A
// declined payment is a normal 200 answer; a created-but-unbroadcast
// event is a server error because downstream work did not complete.
func statusForOutcome(outcome domain.Outcome) int {
	switch outcome {
	case domain.OutcomeSuccess, domain.OutcomePaymentNotCompleted:
		return http.StatusOK
	case domain.OutcomeCreationFailed:
		return http.StatusBadRequest
	case domain.OutcomePartialBroadcast, domain.OutcomeUnexpected:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
