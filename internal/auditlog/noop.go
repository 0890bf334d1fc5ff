package auditlog

import (
	"context"

	zlog "github.com/rs/zerolog/log"
)

// NoopSink stands in when no RabbitMQ URL is configured. Records still
// show up locally so dev runs stay observable.
type NoopSink struct{}

func (NoopSink) Send(_ context.Context, rec Record) {
	zlog.Debug().
		Str("level", string(rec.Level)).
		Str("transaction_id", rec.TransactionID).
		Str("message", rec.Message).
		Msg("audit log (noop)")
}
