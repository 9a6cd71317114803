package notifications

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeBookingConfirmed NotificationType = "BOOKING_CONFIRMED"
)

// BookingNotification announces a sold ticket. Messages are keyed by event
// so one event's confirmations stay ordered on a partition.
type BookingNotification struct {
	ID         uuid.UUID        `json:"id"`
	Type       NotificationType `json:"type"`
	BookingID  uint             `json:"booking_id"`
	EventID    uint             `json:"event_id"`
	EventTitle string           `json:"event_title"`
	TierName   string           `json:"tier_name"`
	UserPhone  string           `json:"user_phone"`
	Qty        int              `json:"qty"`
	PricePaid  float64          `json:"price_paid"`
	TicketHash string           `json:"ticket_hash"`
	CreatedAt  time.Time        `json:"created_at"`
}

// NewBookingConfirmed stamps a fresh id and creation time.
func NewBookingConfirmed(n BookingNotification) *BookingNotification {
	n.ID = uuid.New()
	n.Type = NotificationTypeBookingConfirmed
	n.CreatedAt = time.Now().UTC()
	return &n
}

func (n *BookingNotification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

func (n *BookingNotification) GetPartitionKey() string {
	return strconv.FormatUint(uint64(n.EventID), 10)
}

// MaskedPhone hides all but the last four digits for logs.
func (n *BookingNotification) MaskedPhone() string {
	if len(n.UserPhone) <= 4 {
		return n.UserPhone
	}
	masked := make([]byte, len(n.UserPhone))
	for i := range masked {
		if i < len(n.UserPhone)-4 {
			masked[i] = '*'
		} else {
			masked[i] = n.UserPhone[i]
		}
	}
	return string(masked)
}
