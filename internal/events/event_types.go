package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventUserLoggedIn   EventType = "user_logged_in"
	EventUserLoggedOut  EventType = "user_logged_out"
)

// AuthEventTypes lists every event published by the auth flow.
var AuthEventTypes = []EventType{EventUserRegistered, EventUserLoggedIn, EventUserLoggedOut}

// Event represents an authentication event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	UserID    int64     `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// NewEvent stamps a fresh id and timestamp.
func NewEvent(eventType EventType, userID int64, now time.Time, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: now.UTC(),
		Payload:   payload,
	}
}

// LoginPayload accompanies user_logged_in and user_registered.
type LoginPayload struct {
	Username string `json:"username"`
}

// LogoutPayload accompanies user_logged_out.
type LogoutPayload struct {
	TokenExpiresAt int64 `json:"token_expires_at"`
}
