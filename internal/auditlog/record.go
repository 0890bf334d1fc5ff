package auditlog

// ServiceName tags every record published by this service.
const ServiceName = "create-event-service"

// NoTransactionID is the correlation sentinel used before an event id
// exists for the current workflow run.
const NoTransactionID = "no-applicable-transaction-id"

type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Record is one structured log line bound for the durable logging
// queue. Transient: delivery failures are never retried.
type Record struct {
	ServiceName   string `json:"service_name"`
	Level         Level  `json:"level"`
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id"`
}

// NewRecord builds a record with the service name filled in and the
// sentinel correlation id when none is known yet.
func NewRecord(level Level, message, transactionID string) Record {
	if transactionID == "" {
		transactionID = NoTransactionID
	}
	return Record{
		ServiceName:   ServiceName,
		Level:         level,
		Message:       message,
		TransactionID: transactionID,
	}
}
