package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/attendance-service/internal/events"
)

// NotificationService logs domain events for operators; it is the hook point
// for future email/webhook delivery.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAttendanceRecorded, n.handleEvent("AttendanceRecorded"))
	n.dispatcher.Subscribe(events.EventAttendanceBulkRecorded, n.handleEvent("AttendanceBulkRecorded"))
	n.dispatcher.Subscribe(events.EventAttendanceStatusChanged, n.handleEvent("AttendanceStatusChanged"))
	n.dispatcher.Subscribe(events.EventAttendanceDeleted, n.handleEvent("AttendanceDeleted"))
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleEvent("UserRegistered"))
	n.dispatcher.Subscribe(events.EventUserDeactivated, n.handleEvent("UserDeactivated"))
}

func (n *NotificationService) handleEvent(name string) events.EventHandler {
	return func(_ context.Context, event events.Event) error {
		n.logger.Info(name,
			zap.String("subject_id", event.SubjectID),
			zap.String("actor_id", event.Actor.UserID),
			zap.Any("payload", event.Payload))
		return nil
	}
}
