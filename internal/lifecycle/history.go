package lifecycle

import "sync"

type HistoryEntry string

const EntryResult HistoryEntry = "result"

// History mirrors the platform navigation stack. Entering the result view
// pushes an entry so a back gesture returns to the form.
type History interface {
	Push(entry HistoryEntry)
	Pop() (HistoryEntry, bool)
	Top() (HistoryEntry, bool)
}

// PlatformHistory is a History mirrored into the platform's own stack.
// PopMirrored removes the top entry after the platform has already gone back,
// so the change is not mirrored again.
type PlatformHistory interface {
	History
	PopMirrored() (HistoryEntry, bool)
}

type MemoryHistory struct {
	mu      sync.Mutex
	entries []HistoryEntry
}

func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{}
}

func (h *MemoryHistory) Push(entry HistoryEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, entry)
}

func (h *MemoryHistory) Pop() (HistoryEntry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 0 {
		return "", false
	}
	top := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return top, true
}

func (h *MemoryHistory) Top() (HistoryEntry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 0 {
		return "", false
	}
	return h.entries[len(h.entries)-1], true
}

func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
