package enums

import "fmt"

// NotificationType identifies what a notification record is about.
type NotificationType string

const (
	NotificationTypeOrderConfirmed NotificationType = "order_confirmed"
	NotificationTypeOrderReady     NotificationType = "order_ready"
	NotificationTypeOrderDelivered NotificationType = "order_delivered"
	NotificationTypeOrderCancelled NotificationType = "order_cancelled"
	NotificationTypeNewOffer       NotificationType = "new_offer"
	NotificationTypeOfferExpiring  NotificationType = "offer_expiring"
	NotificationTypeSystem         NotificationType = "system"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeOrderConfirmed,
	NotificationTypeOrderReady,
	NotificationTypeOrderDelivered,
	NotificationTypeOrderCancelled,
	NotificationTypeNewOffer,
	NotificationTypeOfferExpiring,
	NotificationTypeSystem,
}

// String implements fmt.Stringer.
func (n NotificationType) String() string {
	return string(n)
}

// IsValid reports whether the value is a known NotificationType.
func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw input into a NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}
