package notification

import (
	"context"
	"log"
	"time"

	"github.com/lfcamargo/crm-leads/internal/infra/queue"
	"github.com/lfcamargo/crm-leads/internal/usecase"
)

// QueueNotifier implements usecase.Notifier by publishing to the
// notification queue. Fire-and-forget: a publish failure is logged and
// swallowed so it can never fail the business operation that triggered it.
type QueueNotifier struct {
	Producer queue.NotificationProducerInterface
}

func NewQueueNotifier(producer queue.NotificationProducerInterface) *QueueNotifier {
	return &QueueNotifier{Producer: producer}
}

func (n *QueueNotifier) SendNotification(ctx context.Context, userID, message string, notificationType usecase.NotificationType) {
	n.publish(ctx, queue.NotificationPayload{
		UserID:  userID,
		Message: message,
		Type:    string(notificationType),
		SentAt:  time.Now(),
	})
}

func (n *QueueNotifier) SendAlert(ctx context.Context, message string, priority usecase.AlertPriority) {
	n.publish(ctx, queue.NotificationPayload{
		Message:  message,
		Type:     "ALERT",
		Priority: string(priority),
		SentAt:   time.Now(),
	})
}

func (n *QueueNotifier) NotifyUsers(ctx context.Context, userIDs []string, message string, notificationType usecase.NotificationType) {
	for _, userID := range userIDs {
		n.SendNotification(ctx, userID, message, notificationType)
	}
}

func (n *QueueNotifier) publish(ctx context.Context, payload queue.NotificationPayload) {
	if err := n.Producer.PublishNotification(ctx, payload); err != nil {
		log.Printf("[NOTIFIER] publish failed (type=%s user=%s): %v", payload.Type, payload.UserID, err)
	}
}

// LogNotifier is the no-broker fallback: it writes notifications to the log,
// matching the delivery contract (never fails, never blocks).
type LogNotifier struct{}

func (LogNotifier) SendNotification(_ context.Context, userID, message string, notificationType usecase.NotificationType) {
	log.Printf("[NOTIFICATION] type=%s user=%s message=%s", notificationType, userID, message)
}

func (LogNotifier) SendAlert(_ context.Context, message string, priority usecase.AlertPriority) {
	log.Printf("[ALERT] priority=%s message=%s", priority, message)
}

func (n LogNotifier) NotifyUsers(ctx context.Context, userIDs []string, message string, notificationType usecase.NotificationType) {
	for _, userID := range userIDs {
		n.SendNotification(ctx, userID, message, notificationType)
	}
}
