package eventbus

import (
	"sync"

	"tilequest/internal/domain/event"

	"github.com/sirupsen/logrus"
)

type Handler func(event.Event)

// Subscription identifies one registration. Subscribing the same handler
// twice yields two subscriptions.
type Subscription uint64

type subscriber struct {
	id      Subscription
	handler Handler
}

// Bus fans every event out to its subscribers, synchronously and in
// subscription order. A panicking subscriber is logged and skipped.
type Bus struct {
	mu     sync.Mutex
	nextID Subscription
	subs   []subscriber
	closed bool
	log    logrus.FieldLogger
}

func New(log logrus.FieldLogger) *Bus {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Bus{log: log}
}

func (b *Bus) Subscribe(h Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	if b.closed || h == nil {
		return b.nextID
	}
	b.subs = append(b.subs, subscriber{id: b.nextID, handler: h})
	return b.nextID
}

// Unsubscribe drops the registration. Unknown or already removed
// subscriptions are ignored.
func (b *Bus) Unsubscribe(s Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subs {
		if sub.id == s {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

func (b *Bus) Notify(e event.Event) {
	b.mu.Lock()
	subs := b.subs
	b.mu.Unlock()

	for _, sub := range subs {
		b.deliver(sub, e)
	}
}

func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close removes every subscriber; later notifications reach nobody.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = nil
	b.closed = true
}

func (b *Bus) deliver(sub subscriber, e event.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.WithFields(logrus.Fields{
				"subscription": uint64(sub.id),
				"kind":         string(e.Kind),
				"game_id":      e.GameID,
				"panic":        r,
			}).Error("event subscriber panicked")
		}
	}()
	sub.handler(e)
}
