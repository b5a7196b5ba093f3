// Package navigation models where the user goes after an action completes.
package navigation

import "sync"

// Root is the home route.
const Root = "/"

// Navigator is the routing contract used by the login flow.
type Navigator interface {
	// Len reports how many entries the history holds.
	Len() int
	// Back returns to the previous entry.
	Back()
	// Push moves to path.
	Push(path string)
}

// History is an in-memory route stack.
type History struct {
	mu      sync.Mutex
	entries []string
}

// NewHistory starts a history with the given entries, oldest first.
func NewHistory(entries ...string) *History {
	return &History{entries: append([]string(nil), entries...)}
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Back drops the current entry. A single-entry history is left as is.
func (h *History) Back() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) > 1 {
		h.entries = h.entries[:len(h.entries)-1]
	}
}

func (h *History) Push(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, path)
}

// Current returns the active route, or Root when the history is empty.
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 0 {
		return Root
	}
	return h.entries[len(h.entries)-1]
}
