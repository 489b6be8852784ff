/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package inmemory

import (
	"context"
	"sync"

	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/openvp/verifier-endpoint/internal/logfields"
	"github.com/openvp/verifier-endpoint/pkg/event/spi"
)

var logger = log.New("event-bus")

// Subscriber receives events published to a topic.
type Subscriber func(ctx context.Context, event *spi.Event) error

// Bus is an in-process publish/subscribe event bus. Subscribers for a topic
// are invoked synchronously in publish order; a failing subscriber does not
// stop delivery to the remaining ones.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]Subscriber
}

// NewBus creates an in-process event bus.
func NewBus() *Bus {
	return &Bus{subscribers: make(map[string][]Subscriber)}
}

// Subscribe registers a subscriber for the given topic.
func (b *Bus) Subscribe(topic string, subscriber Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers[topic] = append(b.subscribers[topic], subscriber)
}

// Publish delivers the given events to all subscribers of the topic.
func (b *Bus) Publish(ctx context.Context, topic string, messages ...*spi.Event) error {
	b.mu.RLock()
	subscribers := b.subscribers[topic]
	b.mu.RUnlock()

	for _, event := range messages {
		for _, subscriber := range subscribers {
			if err := subscriber(ctx, event.Copy()); err != nil {
				logger.Warnc(ctx, "Event subscriber failed. Ignoring..",
					logfields.WithEventType(string(event.Type)), log.WithError(err))
			}
		}
	}

	return nil
}
