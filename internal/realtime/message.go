package realtime

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/heartmarshall/threads-backend/internal/domain"
)

// EventNotification is the event name of pushed notifications.
const EventNotification = "NOTIFICATION"

// Message is the envelope of every frame pushed to a session.
type Message struct {
	Event     string    `json:"event"`
	Payload   any       `json:"payload"`
	CreatedAt time.Time `json:"createdAt"`
}

// EncodeNotification builds the frame pushed for a notification.
func EncodeNotification(p domain.NotificationPayload, now time.Time) ([]byte, error) {
	b, err := json.Marshal(Message{
		Event:     EventNotification,
		Payload:   p,
		CreatedAt: now.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode notification message: %w", err)
	}
	return b, nil
}
