package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-directory/internal/events"
)

// AuditService records an audit trail entry for every directory mutation
// and login by subscribing to domain events.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventEmployeeCreated, a.record)
	a.dispatcher.Subscribe(events.EventEmployeeUpdated, a.record)
	a.dispatcher.Subscribe(events.EventEmployeeDeleted, a.record)
	a.dispatcher.Subscribe(events.EventEmployeeLogin, a.record)
}

func (a *AuditService) record(_ context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.Int64("employee_id", event.EmployeeID),
		zap.Time("at", event.Timestamp),
	}
	if event.Actor != nil {
		fields = append(fields,
			zap.Int64("actor_id", event.Actor.EmployeeID),
			zap.String("actor_role", event.Actor.Role.String()))
	}
	a.logger.Info("audit", fields...)
	return nil
}
