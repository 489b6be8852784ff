/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination gomocks_test.go -self_package mocks -package oidc4vp_test -source=service.go -mock_names presentationStore=MockPresentationStore,requestObjectSigner=MockRequestObjectSigner,eventService=MockEventService,metricsProvider=MockMetricsProvider

package oidc4vp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/openvp/verifier-endpoint/internal/logfields"
	"github.com/openvp/verifier-endpoint/pkg/event/spi"
	noopmetrics "github.com/openvp/verifier-endpoint/pkg/observability/metrics/noop"
)

var logger = log.New("oidc4vp-service")

type presentationStore interface {
	// Create stores a new presentation and indexes it by request ID. It is
	// an upsert keyed by presentation ID.
	Create(ctx context.Context, p *Presentation) error
	// Get looks a presentation up by its primary ID. Absence is reported
	// as ErrDataNotFound.
	Get(ctx context.Context, id PresentationID) (*Presentation, error)
	// GetByRequestID looks a presentation up by the wallet-facing request
	// ID. Absence is reported as ErrDataNotFound.
	GetByRequestID(ctx context.Context, id RequestID) (*Presentation, error)
	// Update replaces the stored presentation only if its current state
	// equals from. A lost race is reported as ErrStateConflict; two
	// concurrent updates for the same presentation can never both succeed.
	Update(ctx context.Context, p *Presentation, from State) error
}

type requestObjectSigner interface {
	SignRequestObject(ctx context.Context, ro *RequestObject) (string, error)
}

type eventService interface {
	Publish(ctx context.Context, topic string, messages ...*spi.Event) error
}

type metricsProvider interface {
	InitTransactionTime(value time.Duration)
	GetRequestObjectTime(value time.Duration)
}

// Config holds the dependencies of the presentation lifecycle service.
type Config struct {
	PresentationStore      presentationStore
	RequestObjectSigner    requestObjectSigner
	EventSvc               eventService
	EventTopic             string
	VerifierConfig         *VerifierConfig
	GeneratePresentationID func() PresentationID
	GenerateRequestID      func() RequestID
	Clock                  func() time.Time
	Metrics                metricsProvider
}

// Service implements the presentation lifecycle: transaction initiation and
// at-most-once request object retrieval.
type Service struct {
	store                  presentationStore
	signer                 requestObjectSigner
	eventSvc               eventService
	eventTopic             string
	verifierConfig         *VerifierConfig
	generatePresentationID func() PresentationID
	generateRequestID      func() RequestID
	now                    func() time.Time
	metrics                metricsProvider
}

// NewService creates the presentation lifecycle service.
func NewService(cfg *Config) *Service {
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = &noopmetrics.NoMetrics{}
	}

	generatePresentationID := cfg.GeneratePresentationID
	if generatePresentationID == nil {
		generatePresentationID = func() PresentationID { return PresentationID(uuid.NewString()) }
	}

	generateRequestID := cfg.GenerateRequestID
	if generateRequestID == nil {
		generateRequestID = func() RequestID { return RequestID(uuid.NewString()) }
	}

	now := cfg.Clock
	if now == nil {
		now = time.Now
	}

	return &Service{
		store:                  cfg.PresentationStore,
		signer:                 cfg.RequestObjectSigner,
		eventSvc:               cfg.EventSvc,
		eventTopic:             cfg.EventTopic,
		verifierConfig:         cfg.VerifierConfig,
		generatePresentationID: generatePresentationID,
		generateRequestID:      generateRequestID,
		now:                    now,
		metrics:                metrics,
	}
}

// InitTransaction validates the caller's input, creates a presentation in
// the Requested state, applies the configured embedding policy and persists
// the result with a single store write. When the embedding policy is
// by-value the request object is signed immediately and the presentation is
// already retrieved by the time it is stored; a signing failure aborts the
// whole operation with nothing persisted.
func (s *Service) InitTransaction(
	ctx context.Context, req *InitTransactionRequest) (*JwtSecuredAuthorizationRequest, error) {
	logger.Debugc(ctx, "InitTransaction begin")
	startTime := s.now()

	defer func() {
		s.metrics.InitTransactionTime(s.now().Sub(startTime))
	}()

	typ, err := req.toType()
	if err != nil {
		return nil, err
	}

	requested := NewRequestedPresentation(s.generatePresentationID(), s.generateRequestID(), typ, s.now())

	logger.Debugc(ctx, "InitTransaction presentation created",
		logfields.WithPresentationID(string(requested.ID)),
		logfields.WithRequestID(string(requested.RequestID)))

	updated, authorizationRequest, err := s.createAuthorizationRequest(ctx, requested)
	if err != nil {
		return nil, err
	}

	if err = s.store.Create(ctx, &updated); err != nil {
		return nil, fmt.Errorf("store presentation: %w", err)
	}

	if err = s.sendTxEvent(ctx, spi.VerifierPresentationInitiated, &updated, nil); err != nil {
		return nil, err
	}

	logger.Debugc(ctx, "InitTransaction succeed")

	return authorizationRequest, nil
}

// createAuthorizationRequest applies the embedding policy. By-value signs
// now and advances the state; by-reference leaves the presentation in
// Requested and only builds the retrieval URI.
func (s *Service) createAuthorizationRequest(
	ctx context.Context, requested Presentation) (Presentation, *JwtSecuredAuthorizationRequest, error) {
	embed := s.verifierConfig.RequestObjectEmbed

	switch embed.Mode {
	case EmbedByValue:
		token, err := s.signer.SignRequestObject(ctx, s.createRequestObject(&requested))
		if err != nil {
			return Presentation{}, nil, fmt.Errorf("sign request object: %w", err)
		}

		retrieved, err := requested.RetrieveRequestObject(requested.InitiatedAt)
		if err != nil {
			return Presentation{}, nil, err
		}

		return retrieved, &JwtSecuredAuthorizationRequest{
			ClientID: s.verifierConfig.ClientID,
			Request:  token,
		}, nil
	case EmbedByReference:
		return requested, &JwtSecuredAuthorizationRequest{
			ClientID:   s.verifierConfig.ClientID,
			RequestURI: embed.RequestURI(requested.RequestID),
		}, nil
	default:
		return Presentation{}, nil, fmt.Errorf("unsupported embed mode %q", embed.Mode)
	}
}

// GetRequestObject returns the signed request object for the presentation
// correlated with requestID, at most once. Signing happens before the state
// transition is committed, and no store lock is held while signing: the
// conditional update is what guarantees a single winner under concurrency.
// After a lost race the caller observes ErrRequestObjectAlreadyRetrieved,
// never a second token.
func (s *Service) GetRequestObject(ctx context.Context, requestID RequestID) (string, error) {
	logger.Debugc(ctx, "GetRequestObject begin", logfields.WithRequestID(string(requestID)))
	startTime := s.now()

	defer func() {
		s.metrics.GetRequestObjectTime(s.now().Sub(startTime))
	}()

	presentation, err := s.store.GetByRequestID(ctx, requestID)
	if err != nil {
		if errors.Is(err, ErrDataNotFound) {
			return "", err
		}

		return "", fmt.Errorf("get presentation by request id: %w", err)
	}

	if presentation.State != StateRequested {
		logger.Debugc(ctx, "GetRequestObject repeated retrieval rejected",
			logfields.WithPresentationID(string(presentation.ID)),
			logfields.WithState(presentation.State.String()))

		return "", fmt.Errorf("%w: presentation %s", ErrRequestObjectAlreadyRetrieved, presentation.ID)
	}

	token, err := s.signer.SignRequestObject(ctx, s.createRequestObject(presentation))
	if err != nil {
		s.sendFailedTxEvent(ctx, presentation, err)

		return "", fmt.Errorf("sign request object: %w", err)
	}

	retrieved, err := presentation.RetrieveRequestObject(s.now())
	if err != nil {
		return "", err
	}

	if err = s.store.Update(ctx, &retrieved, StateRequested); err != nil {
		if errors.Is(err, ErrStateConflict) {
			// A concurrent call won the transition; this token is discarded.
			return "", fmt.Errorf("%w: presentation %s", ErrRequestObjectAlreadyRetrieved, presentation.ID)
		}

		return "", fmt.Errorf("update presentation: %w", err)
	}

	if err = s.sendTxEvent(ctx, spi.VerifierRequestObjectRetrieved, &retrieved, nil); err != nil {
		logger.Warnc(ctx, "Failed to send request object retrieved event. Ignoring..", log.WithError(err))
	}

	logger.Debugc(ctx, "GetRequestObject succeed", logfields.WithPresentationID(string(retrieved.ID)))

	return token, nil
}

// GetPresentation looks a presentation up by its primary ID.
func (s *Service) GetPresentation(ctx context.Context, id PresentationID) (*Presentation, error) {
	return s.store.Get(ctx, id)
}
