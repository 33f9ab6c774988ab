package stream

import "sync"

// Watcher hands out change signals for a set of topics.
type Watcher interface {
	Watch(topics ...string) (<-chan struct{}, func())
}

type subscription struct {
	topics map[string]struct{}
	ch     chan struct{}
}

// Broker fans change signals out to subscribers. A subscriber has at most one pending
// signal, further publishes are coalesced into it until it is received.
type Broker struct {
	mu   sync.Mutex
	next int
	subs map[int]*subscription
}

// NewBroker returns an empty broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[int]*subscription)}
}

// Watch subscribes to topics. Without topics the subscriber receives every signal.
// The returned func unsubscribes and may be called more than once.
func (b *Broker) Watch(topics ...string) (<-chan struct{}, func()) {
	sub := &subscription{
		topics: make(map[string]struct{}, len(topics)),
		ch:     make(chan struct{}, 1),
	}
	for _, t := range topics {
		sub.topics[t] = struct{}{}
	}

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = sub
	b.mu.Unlock()

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Publish signals every subscriber watching at least one of topics.
func (b *Broker) Publish(topics ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		if !sub.matches(topics) {
			continue
		}
		select {
		case sub.ch <- struct{}{}:
		default:
		}
	}
}

func (s *subscription) matches(topics []string) bool {
	if len(s.topics) == 0 {
		return true
	}
	for _, t := range topics {
		if _, ok := s.topics[t]; ok {
			return true
		}
	}
	return false
}
