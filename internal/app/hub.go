package app

import (
	"sync"

	"github.com/akshay-rawal/Quiz-Game/internal/domain"
)

// summaryHub fans out summary updates to subscribers, keyed by identity.
type summaryHub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan []domain.SummaryRow]struct{}
}

func newSummaryHub() *summaryHub {
	return &summaryHub{subscribers: make(map[string]map[chan []domain.SummaryRow]struct{})}
}

func (h *summaryHub) subscribe(key string) (chan []domain.SummaryRow, func()) {
	ch := make(chan []domain.SummaryRow, 8)

	h.mu.Lock()
	subs, ok := h.subscribers[key]
	if !ok {
		subs = make(map[chan []domain.SummaryRow]struct{})
		h.subscribers[key] = subs
	}
	subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if subs, ok := h.subscribers[key]; ok {
			if _, member := subs[ch]; member {
				delete(subs, ch)
				close(ch)
			}
			if len(subs) == 0 {
				delete(h.subscribers, key)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *summaryHub) hasSubscribers(key string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[key]) > 0
}

func (h *summaryHub) publish(key string, rows []domain.SummaryRow) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subscribers[key] {
		select {
		case ch <- rows:
		default:
			// Drop the oldest pending update so slow readers never block publishers.
			select {
			case <-ch:
			default:
			}
			ch <- rows
		}
	}
}
