package http

import (
	"log/slog"
	"sync"
)

// Event is one message pushed to SSE subscribers.
type Event struct {
	Topic string
	Data  string
}

// StreamManager handles active SSE connections.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- Event]struct{} // Topic -> Set of Channels
	logger      *slog.Logger
}

// NewStreamManager creates an empty manager.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- Event]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a channel for the given topics.
// The returned function unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(topics ...string) (<-chan Event, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan Event, 10)
	for _, topic := range topics {
		if _, ok := sm.subscribers[topic]; !ok {
			sm.subscribers[topic] = make(map[chan<- Event]struct{})
		}
		sm.subscribers[topic][ch] = struct{}{}
	}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			for _, topic := range topics {
				if subs, ok := sm.subscribers[topic]; ok {
					delete(subs, ch)
					if len(subs) == 0 {
						delete(sm.subscribers, topic)
					}
				}
			}
			close(ch)
		})
	}
}

// Broadcast sends msg to every subscriber of topic without blocking.
func (sm *StreamManager) Broadcast(topic string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sm.logger.Debug("StreamManager: Broadcasting", "topic", topic, "payload_size", len(msg))

	for ch := range sm.subscribers[topic] {
		select {
		case ch <- Event{Topic: topic, Data: msg}:
		default:
			// Drop message if channel is full (slow client)
			sm.logger.Warn("SSE: Client buffer full, dropping message", "topic", topic)
		}
	}
}
