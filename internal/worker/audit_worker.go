package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/gambler-service/internal/events"
)

// StartAuditWorker subscribes a structured audit log to every auth event.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil || logger == nil {
		return
	}
	audit := logger.Named("audit")
	for _, eventType := range events.AuthEventTypes {
		dispatcher.Subscribe(eventType, func(_ context.Context, e events.Event) error {
			audit.Info("auth event",
				zap.String("event_id", e.ID),
				zap.String("type", string(e.Type)),
				zap.Int64("user_id", e.UserID),
				zap.Time("timestamp", e.Timestamp),
				zap.Any("payload", e.Payload),
			)
			return nil
		})
	}
}
