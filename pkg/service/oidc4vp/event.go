/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4vp

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/openvp/verifier-endpoint/pkg/event/spi"
)

const eventSource = "source://verifier-endpoint/oidc4vp"

// EventPayload is the data attached to presentation lifecycle events.
type EventPayload struct {
	PresentationID string `json:"presentationID,omitempty"`
	RequestID      string `json:"requestID,omitempty"`
	State          string `json:"state,omitempty"`
	EmbedMode      string `json:"embedMode,omitempty"`
	Error          string `json:"error,omitempty"`
}

func (s *Service) createTxEvent(
	p *Presentation, eventType spi.EventType, e error) (*spi.Event, error) {
	ep := EventPayload{
		PresentationID: string(p.ID),
		RequestID:      string(p.RequestID),
		State:          p.State.String(),
		EmbedMode:      string(s.verifierConfig.RequestObjectEmbed.Mode),
	}

	if e != nil {
		ep.Error = e.Error()
	}

	payload, err := json.Marshal(ep)
	if err != nil {
		return nil, err
	}

	event := spi.NewEventWithPayload(uuid.NewString(), eventSource, eventType, payload)
	event.TransactionID = string(p.ID)

	return event, nil
}

func (s *Service) sendTxEvent(
	ctx context.Context, eventType spi.EventType, p *Presentation, e error) error {
	if s.eventSvc == nil {
		return nil
	}

	event, err := s.createTxEvent(p, eventType, e)
	if err != nil {
		return err
	}

	return s.eventSvc.Publish(ctx, s.eventTopic, event)
}

func (s *Service) sendFailedTxEvent(ctx context.Context, p *Presentation, e error) {
	if err := s.sendTxEvent(ctx, spi.VerifierPresentationFailed, p, e); err != nil {
		logger.Warnc(ctx, "Failed to send presentation failed event. Ignoring..", log.WithError(err))
	}
}
