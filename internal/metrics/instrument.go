package metrics

import (
	"context"
	"time"
)

// publisher matches bus.Publisher without importing the bus package.
type publisher interface {
	Publish(topic string, payload any)
}

// InstrumentedPublisher counts bus publications by topic before forwarding.
type InstrumentedPublisher struct {
	Next publisher
}

func (p InstrumentedPublisher) Publish(topic string, payload any) {
	EventsPublishedTotal.WithLabelValues(topic).Inc()
	p.Next.Publish(topic, payload)
}

// entityCounter matches the store's collection-size report.
type entityCounter interface {
	Counts() map[string]int
}

// StoreCollector periodically copies collection sizes into the StoreEntities
// gauge.
type StoreCollector struct {
	store entityCounter
}

func NewStoreCollector(store entityCounter) *StoreCollector {
	return &StoreCollector{store: store}
}

// Start collects every interval until ctx is cancelled.
func (c *StoreCollector) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.collect()
	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-ctx.Done():
			return
		}
	}
}

func (c *StoreCollector) collect() {
	for collection, count := range c.store.Counts() {
		StoreEntities.WithLabelValues(collection).Set(float64(count))
	}
}
