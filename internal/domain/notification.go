package domain

import "time"

// Event is a notification-worthy action performed by one user towards another.
// The set of implementations is closed: Mention, Follow, Like and Reply.
type Event interface {
	Kind() Kind
	// Sender returns the id of the user who caused the event.
	Sender() int64
	// Text returns the human-readable message.
	Text() string
	// Thread returns the related thread id, if the kind carries one.
	Thread() (int64, bool)

	event()
}

// Mention is raised when a user is @-mentioned in a thread.
type Mention struct {
	From     int64
	ThreadID int64
	Message  string
}

func (Mention) Kind() Kind              { return KindMention }
func (e Mention) Sender() int64         { return e.From }
func (e Mention) Text() string          { return e.Message }
func (e Mention) Thread() (int64, bool) { return e.ThreadID, true }
func (Mention) event()                  {}

// Follow is raised when a user starts following another user.
type Follow struct {
	From    int64
	Message string
}

func (Follow) Kind() Kind            { return KindFollow }
func (e Follow) Sender() int64       { return e.From }
func (e Follow) Text() string        { return e.Message }
func (Follow) Thread() (int64, bool) { return 0, false }
func (Follow) event()                {}

// Like is raised when a user likes a thread.
type Like struct {
	From     int64
	ThreadID int64
	Message  string
}

func (Like) Kind() Kind              { return KindLike }
func (e Like) Sender() int64         { return e.From }
func (e Like) Text() string          { return e.Message }
func (e Like) Thread() (int64, bool) { return e.ThreadID, true }
func (Like) event()                  {}

// Reply is raised when a user replies to a thread.
type Reply struct {
	From     int64
	ThreadID int64
	Message  string
}

func (Reply) Kind() Kind              { return KindReply }
func (e Reply) Sender() int64         { return e.From }
func (e Reply) Text() string          { return e.Message }
func (e Reply) Thread() (int64, bool) { return e.ThreadID, true }
func (Reply) event()                  {}

// Notification is a durable notification record.
type Notification struct {
	ID         int64
	UserID     int64
	Kind       Kind
	Message    string
	FromUserID int64
	ThreadID   *int64
	Read       bool
	CreatedAt  time.Time
}

// NewNotification builds an unsaved record for recipient userID from e.
// ID stays zero until the store assigns one.
func NewNotification(userID int64, e Event, now time.Time) Notification {
	n := Notification{
		UserID:     userID,
		Kind:       e.Kind(),
		Message:    e.Text(),
		FromUserID: e.Sender(),
		CreatedAt:  now,
	}
	if id, ok := e.Thread(); ok {
		n.ThreadID = &id
	}
	return n
}

// NotificationPayload is the payload pushed to live sessions.
// ID is set if and only if the notification was persisted.
type NotificationPayload struct {
	ID         *int64    `json:"id,omitempty"`
	UserID     int64     `json:"userId"`
	Type       Kind      `json:"type"`
	Message    string    `json:"message"`
	FromUserID int64     `json:"fromUserId"`
	ThreadID   *int64    `json:"threadId,omitempty"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Persisted reports whether the payload carries a durable record id.
func (p NotificationPayload) Persisted() bool { return p.ID != nil }

// PersistedPayload builds the payload of a stored notification.
func PersistedPayload(n Notification) NotificationPayload {
	id := n.ID
	return NotificationPayload{
		ID:         &id,
		UserID:     n.UserID,
		Type:       n.Kind,
		Message:    n.Message,
		FromUserID: n.FromUserID,
		ThreadID:   n.ThreadID,
		Read:       n.Read,
		CreatedAt:  n.CreatedAt,
	}
}

// EphemeralPayload builds the payload of a notification that is never stored.
func EphemeralPayload(userID int64, e Event, now time.Time) NotificationPayload {
	n := NewNotification(userID, e, now)
	return NotificationPayload{
		UserID:     n.UserID,
		Type:       n.Kind,
		Message:    n.Message,
		FromUserID: n.FromUserID,
		ThreadID:   n.ThreadID,
		CreatedAt:  n.CreatedAt,
	}
}
