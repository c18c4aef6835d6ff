package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/event-staffing-service/internal/events"
)

// NotificationService observes assignment lifecycle events for operational
// visibility. The emails themselves are sent inline by the invitation and
// sweeper flows; this service only records what happened.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAssignmentInvited, n.handleAssignmentEvent)
	n.dispatcher.Subscribe(events.EventAssignmentConfirmed, n.handleAssignmentEvent)
	n.dispatcher.Subscribe(events.EventAssignmentDeclined, n.handleAssignmentEvent)
	n.dispatcher.Subscribe(events.EventAssignmentSwept, n.handleAssignmentEvent)
	n.dispatcher.Subscribe(events.EventLeaveDatesPurged, n.handleSweepEvent)
}

func (n *NotificationService) handleAssignmentEvent(ctx context.Context, event events.Event) error {
	n.logger.Info(string(event.Type),
		zap.String("event_id", event.EventID),
		zap.String("staff_id", event.StaffID),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleSweepEvent(ctx context.Context, event events.Event) error {
	n.logger.Info(string(event.Type), zap.Any("payload", event.Payload))
	return nil
}
