// Package notify delivers real-time events to users. Delivery is
// fire-and-forget: sinks swallow and log their own failures so a push
// problem never fails the request that triggered it.
package notify

import "time"

const (
	EventNewSwipe   = "NEW_SWIPE"
	EventNewMessage = "NEW_MESSAGE"
)

// Event is the payload pushed to a connected user.
type Event struct {
	Type           string    `json:"type"`
	Timestamp      time.Time `json:"timestamp"`
	ConversationID string    `json:"conversationId,omitempty"`
	MatchID        string    `json:"matchId,omitempty"`
	IsMatch        bool      `json:"isMatch,omitempty"`
	SenderID       string    `json:"senderId,omitempty"`
	SenderName     string    `json:"senderName,omitempty"`
	Content        string    `json:"content,omitempty"`
}

// Sink pushes events toward a single user. Implementations must not
// block the caller and must not surface delivery errors.
type Sink interface {
	PushToUser(userID string, ev Event)
}

// MultiSink fans an event out to several sinks.
type MultiSink []Sink

func (m MultiSink) PushToUser(userID string, ev Event) {
	for _, s := range m {
		s.PushToUser(userID, ev)
	}
}

// Discard drops every event. Used when no push transport is configured.
type Discard struct{}

func (Discard) PushToUser(string, Event) {}
