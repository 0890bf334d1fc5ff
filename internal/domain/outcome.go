package domain

// Outcome is the terminal state of one orchestration run.
type Outcome string

const (
	OutcomeSuccess             Outcome = "success"
	OutcomePaymentNotCompleted Outcome = "payment_not_completed"
	OutcomeCreationFailed      Outcome = "event_creation_failed"
	OutcomePartialBroadcast    Outcome = "event_creation_succeeded_with_errors"
	OutcomeUnexpected          Outcome = "unexpected_error"
)

// WorkflowResult is what the orchestrator hands back to the transport
// layer. Message and Error feed the response body verbatim; Outcome
// decides the HTTP status.
type WorkflowResult struct {
	Outcome Outcome
	Message string
	Error   string
	EventID string
}
