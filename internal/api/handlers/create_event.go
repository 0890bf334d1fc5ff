package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bookaroo/create-event-service/internal/domain"
	"github.com/bookaroo/create-event-service/internal/logger"
	"github.com/bookaroo/create-event-service/internal/workflow"
	"github.com/bookaroo/create-event-service/middleware"
	"github.com/go-playground/validator/v10"
)

// Workflow is the orchestration port the transport layer calls.
type Workflow interface {
	CreateEvent(ctx context.Context, req workflow.Request) domain.WorkflowResult
}

type CreateEventHandler struct {
	workflow Workflow
	validate *validator.Validate
}

func NewCreateEventHandler(wf Workflow) *CreateEventHandler {
	return &CreateEventHandler{
		workflow: wf,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// CreateEvent handles POST /api/v1/create-event.
func (h *CreateEventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var sub domain.EventSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, createEventResponse{
			Message: "Event Creation Failed",
			Error:   "invalid request body: " + err.Error(),
		})
		return
	}

	if err := h.validate.Struct(sub); err != nil {
		logger.Ctx(r.Context()).Warn().Err(err).Msg("submission rejected by validation")
		writeJSON(w, http.StatusBadRequest, createEventResponse{
			Message: "Event Creation Failed",
			Error:   "invalid event submission: " + err.Error(),
		})
		return
	}

	identity := middleware.GetIdentity(r.Context())

	res := h.workflow.CreateEvent(r.Context(), workflow.Request{
		Submission:     sub,
		BearerToken:    middleware.GetBearerToken(r.Context()),
		OrganizerEmail: identity.Email,
	})

	writeJSON(w, statusForOutcome(res.Outcome), createEventResponse{
		Message: res.Message,
		Error:   res.Error,
	})
}
