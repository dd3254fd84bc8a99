package usecase

import "context"

type NotificationType string

const (
	NotificationInfo          NotificationType = "INFO"
	NotificationLeadQualified NotificationType = "LEAD_QUALIFIED"
	NotificationLeadConverted NotificationType = "LEAD_CONVERTED"
	NotificationWarning       NotificationType = "WARNING"
)

type AlertPriority string

const (
	AlertPriorityLow    AlertPriority = "LOW"
	AlertPriorityMedium AlertPriority = "MEDIUM"
	AlertPriorityHigh   AlertPriority = "HIGH"
)

// Notifier delivers messages to users. Fire-and-forget: implementations must
// never block the business operation or surface delivery failures to it.
type Notifier interface {
	SendNotification(ctx context.Context, userID, message string, notificationType NotificationType)
	SendAlert(ctx context.Context, message string, priority AlertPriority)
	NotifyUsers(ctx context.Context, userIDs []string, message string, notificationType NotificationType)
}
