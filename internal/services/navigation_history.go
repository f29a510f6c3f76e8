package services

import (
	"context"

	"fitpromo/internal/events"
	"fitpromo/internal/lifecycle"
)

const StudioNavigation = "event:studio:navigation"

// NavigationEvent asks the web view to mirror a history change so the
// platform back gesture reaches PopState.
type NavigationEvent struct {
	Action string                 `json:"action"` // "push" | "pop"
	Entry  lifecycle.HistoryEntry `json:"entry"`
}

// navigationHistory is the lifecycle history stack kept in Go and mirrored
// into the web view's own history.
type navigationHistory struct {
	*lifecycle.MemoryHistory
	ctx func() context.Context
}

func newNavigationHistory(ctx func() context.Context) *navigationHistory {
	return &navigationHistory{MemoryHistory: lifecycle.NewMemoryHistory(), ctx: ctx}
}

func (h *navigationHistory) Push(entry lifecycle.HistoryEntry) {
	h.MemoryHistory.Push(entry)
	h.emit("push", entry)
}

func (h *navigationHistory) Pop() (lifecycle.HistoryEntry, bool) {
	entry, ok := h.MemoryHistory.Pop()
	if ok {
		h.emit("pop", entry)
	}
	return entry, ok
}

// PopMirrored drops the top entry after the web view went back on its own.
func (h *navigationHistory) PopMirrored() (lifecycle.HistoryEntry, bool) {
	return h.MemoryHistory.Pop()
}

func (h *navigationHistory) emit(action string, entry lifecycle.HistoryEntry) {
	if ctx := h.ctx(); ctx != nil {
		events.Emit(ctx, StudioNavigation, NavigationEvent{Action: action, Entry: entry})
	}
}
