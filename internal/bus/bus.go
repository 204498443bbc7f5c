// Package bus implements the topic-keyed publish/subscribe primitive behind
// the live-update channels. Each subscription owns a FIFO queue drained by its
// own delivery goroutine, so a publisher hands a payload to every attachment
// without ever waiting on a consumer, and a stalled consumer only delays
// itself.
package bus

import "sync"

// Publisher is the write side of the bus. Services publish through this
// interface so unobserved entity kinds can be wired with NopPublisher.
type Publisher interface {
	Publish(topic string, payload any)
}

// NopPublisher discards every payload. Used for entity kinds that are
// deliberately not mutation-observable and for deployments running the
// counter channel family.
type NopPublisher struct{}

func (NopPublisher) Publish(string, any) {}

// Bus fans payloads out to per-topic attachments.
type Bus struct {
	mu     sync.RWMutex
	topics map[string]map[*Subscription]struct{}
	closed bool
}

func New() *Bus {
	return &Bus{topics: make(map[string]map[*Subscription]struct{})}
}

// Publish hands payload to every subscription attached to topic at the moment
// of the call. The payload is queued, not delivered inline: Publish returns
// without waiting for any consumer.
func (b *Bus) Publish(topic string, payload any) {
	b.mu.RLock()
	subs := make([]*Subscription, 0, len(b.topics[topic]))
	for sub := range b.topics[topic] {
		subs = append(subs, sub)
	}
	b.mu.RUnlock()

	for _, sub := range subs {
		sub.enqueue(payload)
	}
}

// Subscribe attaches a fresh consumer to topic. The subscription sees only
// payloads published after Subscribe returns, in publish order. Callers must
// Close the subscription when done; an abandoned attachment keeps receiving
// queued payloads forever.
func (b *Bus) Subscribe(topic string) *Subscription {
	sub := &Subscription{
		bus:   b,
		topic: topic,
		out:   make(chan any),
		done:  make(chan struct{}),
	}
	sub.cond = sync.NewCond(&sub.mu)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		sub.markClosed()
		close(sub.out)
		return sub
	}
	attachments, ok := b.topics[topic]
	if !ok {
		attachments = make(map[*Subscription]struct{})
		b.topics[topic] = attachments
	}
	attachments[sub] = struct{}{}
	b.mu.Unlock()

	go sub.pump()
	return sub
}

// Close detaches every subscription and stops accepting attachments.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	var subs []*Subscription
	for _, attachments := range b.topics {
		for sub := range attachments {
			subs = append(subs, sub)
		}
	}
	b.topics = make(map[string]map[*Subscription]struct{})
	b.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
}

func (b *Bus) detach(sub *Subscription) {
	b.mu.Lock()
	if attachments, ok := b.topics[sub.topic]; ok {
		delete(attachments, sub)
		if len(attachments) == 0 {
			delete(b.topics, sub.topic)
		}
	}
	b.mu.Unlock()
}

// Subscription is one consumer's live attachment to a topic.
type Subscription struct {
	bus   *Bus
	topic string

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []any
	closed bool

	out  chan any
	done chan struct{}
	once sync.Once
}

// C yields payloads in publish order. The channel is closed when the
// subscription is closed.
func (s *Subscription) C() <-chan any {
	return s.out
}

// Topic reports the topic this subscription is attached to.
func (s *Subscription) Topic() string {
	return s.topic
}

// Close detaches the subscription. Publishes after Close no longer reference
// it; a pending undelivered payload is dropped.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.detach(s)
		s.markClosed()
		close(s.done)
	})
}

func (s *Subscription) markClosed() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	if s.cond != nil {
		s.cond.Broadcast()
	}
}

func (s *Subscription) enqueue(payload any) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, payload)
	s.mu.Unlock()
	s.cond.Signal()
}

// pump moves payloads from the queue to the consumer channel one at a time.
// The consumer pulls at its own pace; only the queue grows while it lags.
func (s *Subscription) pump() {
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if s.closed {
			s.mu.Unlock()
			close(s.out)
			return
		}
		payload := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		select {
		case s.out <- payload:
		case <-s.done:
			close(s.out)
			return
		}
	}
}
