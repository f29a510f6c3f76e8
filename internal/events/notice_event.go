package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInfo    EventType = "info"
	EventWarn    EventType = "warn"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

const (
	StudioView     = "event:studio:view"
	StudioNotice   = "event:studio:notice"
	CatalogTargets = "event:catalog:targets"
	CatalogProduct = "event:catalog:products"
	HistoryUpdated = "event:history:updated"
)

// NoticeEvent is a toast shown by the web view.
type NoticeEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func CreateNoticeEvent(eventType EventType, message string) NoticeEvent {
	return NoticeEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewInfo creates an info NoticeEvent.
func NewInfo(message string) NoticeEvent {
	return CreateNoticeEvent(EventInfo, message)
}

// NewError creates an error NoticeEvent.
func NewError(message string) NoticeEvent {
	return CreateNoticeEvent(EventError, message)
}

// NewSuccess creates a success NoticeEvent.
func NewSuccess(message string) NoticeEvent {
	return CreateNoticeEvent(EventSuccess, message)
}
