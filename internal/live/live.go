// Package live binds the caller-facing notification channels to bus topics.
// A channel's bus attachment is created only when a consumer starts consuming
// and is torn down exactly when that consumer's context ends, so an abandoned
// stream never leaks a delivery target.
package live

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/gatherline/server/internal/bus"
	"github.com/gatherline/server/internal/domain/accounts"
	"github.com/gatherline/server/internal/domain/events"
	"github.com/gatherline/server/internal/domain/participations"
	"github.com/gatherline/server/internal/metrics"
)

// Family selects which channel set a deployment exposes. The two families are
// mutually exclusive.
type Family string

const (
	// FamilyChanges exposes created/updated/deleted channels for the
	// mutation-observable entity kinds.
	FamilyChanges Family = "changes"
	// FamilyCounter exposes a single periodic counter channel, independent of
	// any mutation.
	FamilyCounter Family = "counter"
)

// ParseFamily validates a configured family name.
func ParseFamily(value string) (Family, error) {
	switch Family(value) {
	case FamilyChanges, FamilyCounter:
		return Family(value), nil
	default:
		return "", fmt.Errorf("unknown subscription family %q", value)
	}
}

// CounterChannel is the only channel of the counter family.
const CounterChannel = "counter"

// changeChannels maps each channel of the changes family to its bus topic.
// Accounts, events, and participations are observable; locations are
// deliberately absent.
var changeChannels = map[string]string{
	"accountCreated":       accounts.TopicCreated,
	"accountUpdated":       accounts.TopicUpdated,
	"accountDeleted":       accounts.TopicDeleted,
	"eventCreated":         events.TopicCreated,
	"eventUpdated":         events.TopicUpdated,
	"eventDeleted":         events.TopicDeleted,
	"participationCreated": participations.TopicCreated,
	"participationUpdated": participations.TopicUpdated,
	"participationDeleted": participations.TopicDeleted,
}

// Envelope is the response shape of every live channel. Seq starts at 1 and
// is per-attachment.
type Envelope struct {
	Channel string `json:"channel"`
	Seq     uint64 `json:"seq"`
	Data    any    `json:"data"`
}

// ErrUnknownChannel is reported for channels not part of the active family.
type ErrUnknownChannel struct {
	Channel string
}

func (e ErrUnknownChannel) Error() string {
	return fmt.Sprintf("unknown channel %q", e.Channel)
}

// Multiplexer shapes bus payloads into channel envelopes.
type Multiplexer struct {
	bus      *bus.Bus
	family   Family
	interval time.Duration
	logger   zerolog.Logger
}

func NewMultiplexer(b *bus.Bus, family Family, interval time.Duration, logger zerolog.Logger) *Multiplexer {
	if interval <= 0 {
		interval = time.Second
	}
	return &Multiplexer{
		bus:      b,
		family:   family,
		interval: interval,
		logger:   logger.With().Str("component", "live").Logger(),
	}
}

// Family reports the active channel family.
func (m *Multiplexer) Family() Family {
	return m.family
}

// Channels lists the channel names of the active family, sorted.
func (m *Multiplexer) Channels() []string {
	if m.family == FamilyCounter {
		return []string{CounterChannel}
	}
	names := make([]string, 0, len(changeChannels))
	for name := range changeChannels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stream attaches a consumer to a channel. The returned channel closes when
// ctx is done or the bus shuts down; by the time it closes the underlying
// attachment has been deregistered.
func (m *Multiplexer) Stream(ctx context.Context, channel string) (<-chan Envelope, error) {
	if m.family == FamilyCounter {
		if channel != CounterChannel {
			return nil, ErrUnknownChannel{Channel: channel}
		}
		return m.counterStream(ctx), nil
	}

	topic, ok := changeChannels[channel]
	if !ok {
		return nil, ErrUnknownChannel{Channel: channel}
	}
	return m.changeStream(ctx, channel, topic), nil
}

func (m *Multiplexer) changeStream(ctx context.Context, channel, topic string) <-chan Envelope {
	sub := m.bus.Subscribe(topic)
	out := make(chan Envelope)
	metrics.ActiveSubscriptions.WithLabelValues(channel).Inc()
	m.logger.Debug().Str("channel", channel).Msg("consumer attached")

	go func() {
		defer close(out)
		defer metrics.ActiveSubscriptions.WithLabelValues(channel).Dec()
		defer m.logger.Debug().Str("channel", channel).Msg("consumer detached")
		defer sub.Close()

		var seq uint64
		for {
			select {
			case payload, open := <-sub.C():
				if !open {
					return
				}
				seq++
				select {
				case out <- Envelope{Channel: channel, Seq: seq, Data: payload}:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// counterStream emits 1, 2, 3, … on the configured period for this consumer
// only. Each attachment owns its ticker; cancelling one consumer never
// touches another.
func (m *Multiplexer) counterStream(ctx context.Context) <-chan Envelope {
	out := make(chan Envelope)
	metrics.ActiveSubscriptions.WithLabelValues(CounterChannel).Inc()

	go func() {
		defer close(out)
		defer metrics.ActiveSubscriptions.WithLabelValues(CounterChannel).Dec()

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		var n uint64
		for {
			select {
			case <-ticker.C:
				n++
				select {
				case out <- Envelope{Channel: CounterChannel, Seq: n, Data: n}:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
