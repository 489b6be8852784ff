/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package inmemory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openvp/verifier-endpoint/pkg/event/spi"
)

func TestBus_Publish(t *testing.T) {
	t.Run("Delivers to all subscribers in order", func(t *testing.T) {
		bus := NewBus()

		var first, second []*spi.Event

		bus.Subscribe("topic", func(_ context.Context, event *spi.Event) error {
			first = append(first, event)

			return nil
		})
		bus.Subscribe("topic", func(_ context.Context, event *spi.Event) error {
			second = append(second, event)

			return nil
		})

		e1 := spi.NewEvent("id-1", "source", spi.VerifierPresentationInitiated)
		e2 := spi.NewEvent("id-2", "source", spi.VerifierRequestObjectRetrieved)

		require.NoError(t, bus.Publish(context.Background(), "topic", e1, e2))

		require.Len(t, first, 2)
		require.Len(t, second, 2)
		require.Equal(t, "id-1", first[0].ID)
		require.Equal(t, "id-2", first[1].ID)
	})

	t.Run("Subscribers receive copies", func(t *testing.T) {
		bus := NewBus()

		event := spi.NewEvent("id-1", "source", spi.VerifierPresentationInitiated)

		bus.Subscribe("topic", func(_ context.Context, received *spi.Event) error {
			require.NotSame(t, event, received)
			require.Equal(t, event.ID, received.ID)

			received.ID = "mutated"

			return nil
		})

		require.NoError(t, bus.Publish(context.Background(), "topic", event))
		require.Equal(t, "id-1", event.ID)
	})

	t.Run("Failing subscriber does not stop delivery", func(t *testing.T) {
		bus := NewBus()

		var delivered bool

		bus.Subscribe("topic", func(_ context.Context, _ *spi.Event) error {
			return errors.New("subscriber failed")
		})
		bus.Subscribe("topic", func(_ context.Context, _ *spi.Event) error {
			delivered = true

			return nil
		})

		require.NoError(t, bus.Publish(context.Background(), "topic",
			spi.NewEvent("id-1", "source", spi.VerifierPresentationInitiated)))
		require.True(t, delivered)
	})

	t.Run("No subscribers for topic", func(t *testing.T) {
		bus := NewBus()

		require.NoError(t, bus.Publish(context.Background(), "other",
			spi.NewEvent("id-1", "source", spi.VerifierPresentationInitiated)))
	})
}
