// Package feed 將新增的進出紀錄即時推送給訂閱者。
package feed

import (
	"sync"

	"roomlog/internal/models"
)

// DefaultBuffer 是每個訂閱者的緩衝大小
const DefaultBuffer = 256

type subscriber struct {
	ch chan models.LogEntry
}

// Hub 管理所有訂閱者，可同時從多個 goroutine 使用
type Hub struct {
	mu     sync.RWMutex
	subs   map[*subscriber]struct{}
	buffer int
	closed bool
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		subs:   make(map[*subscriber]struct{}),
		buffer: buffer,
	}
}

// Subscribe 註冊新的訂閱者，回傳的 cancel 可重複呼叫
func (h *Hub) Subscribe() (<-chan models.LogEntry, func()) {
	s := &subscriber{ch: make(chan models.LogEntry, h.buffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(s.ch)
		return s.ch, func() {}
	}
	h.subs[s] = struct{}{}
	h.mu.Unlock()

	return s.ch, func() { h.remove(s) }
}

// Publish 將紀錄送給所有訂閱者，佇列已滿的訂閱者會被移除
func (h *Hub) Publish(entry models.LogEntry) {
	h.mu.RLock()
	var slow []*subscriber
	for s := range h.subs {
		select {
		case s.ch <- entry:
		default:
			slow = append(slow, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range slow {
		h.remove(s)
	}
}

// Count 回傳目前的訂閱者數量
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close 關閉所有訂閱，之後的 Subscribe 會拿到已關閉的 channel
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for s := range h.subs {
		delete(h.subs, s)
		close(s.ch)
	}
}

func (h *Hub) remove(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[s]; ok {
		delete(h.subs, s)
		close(s.ch)
	}
}
