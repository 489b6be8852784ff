/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package presentationstore persists presentation transactions in Redis.
package presentationstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisapi "github.com/redis/go-redis/v9"

	"github.com/openvp/verifier-endpoint/pkg/service/oidc4vp"
	"github.com/openvp/verifier-endpoint/pkg/storage/redis"
)

const (
	keyPrefix          = "presentation"
	requestIDKeyPrefix = "presentation-requestid"
)

// updateIfStateScript replaces the presentation document only when the stored
// state matches. Running it inside Redis makes compare and swap atomic: of two
// concurrent updates for the same presentation exactly one succeeds.
// Returns 1 on success, 0 when the key is gone, -1 on state mismatch.
var updateIfStateScript = redisapi.NewScript(`
local doc = redis.call('GET', KEYS[1])
if not doc then
	return 0
end
if cjson.decode(doc)['state'] ~= tonumber(ARGV[1]) then
	return -1
end
redis.call('SET', KEYS[1], ARGV[2], 'KEEPTTL')
return 1
`)

// Store manages presentation transactions in Redis.
type Store struct {
	redisClient *redis.Client
	ttl         time.Duration
}

// New creates a presentation Store.
func New(redisClient *redis.Client, ttl time.Duration) *Store {
	return &Store{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

// Create stores a new presentation and indexes it by request ID. SETNX on the
// index key rejects a duplicate correlation token.
func (s *Store) Create(_ context.Context, p *oidc4vp.Presentation) error {
	ctxWithTimeout, cancel := s.redisClient.ContextWithTimeout()
	defer cancel()

	clientAPI := s.redisClient.API()

	doc := documentFromPresentation(p, time.Now().UTC().Add(s.ttl))

	indexSet, err := clientAPI.SetNX(ctxWithTimeout,
		resolveRequestIDKey(string(p.RequestID)), string(p.ID), s.ttl).Result()
	if err != nil {
		return fmt.Errorf("presentation request id index set: %w", err)
	}

	if !indexSet {
		return fmt.Errorf("presentation request id %s already indexed", p.RequestID)
	}

	if err = clientAPI.Set(ctxWithTimeout, resolveKey(string(p.ID)), doc, s.ttl).Err(); err != nil {
		return fmt.Errorf("presentation set: %w", err)
	}

	return nil
}

// Get looks a presentation up by its primary ID.
func (s *Store) Get(_ context.Context, id oidc4vp.PresentationID) (*oidc4vp.Presentation, error) {
	ctxWithTimeout, cancel := s.redisClient.ContextWithTimeout()
	defer cancel()

	doc, err := s.getDocument(ctxWithTimeout, resolveKey(string(id)))
	if err != nil {
		return nil, err
	}

	return presentationFromDocument(doc), nil
}

// GetByRequestID looks a presentation up by the wallet-facing request ID.
func (s *Store) GetByRequestID(_ context.Context, id oidc4vp.RequestID) (*oidc4vp.Presentation, error) {
	ctxWithTimeout, cancel := s.redisClient.ContextWithTimeout()
	defer cancel()

	presentationID, err := s.redisClient.API().Get(ctxWithTimeout, resolveRequestIDKey(string(id))).Result()
	if err != nil {
		if errors.Is(err, redisapi.Nil) {
			return nil, oidc4vp.ErrDataNotFound
		}

		return nil, fmt.Errorf("presentation request id index get: %w", err)
	}

	doc, err := s.getDocument(ctxWithTimeout, resolveKey(presentationID))
	if err != nil {
		return nil, err
	}

	return presentationFromDocument(doc), nil
}

func (s *Store) getDocument(ctx context.Context, key string) (*presentationDocument, error) {
	b, err := s.redisClient.API().Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redisapi.Nil) {
			return nil, oidc4vp.ErrDataNotFound
		}

		return nil, fmt.Errorf("presentation get: %w", err)
	}

	doc := &presentationDocument{}
	if err = json.Unmarshal(b, doc); err != nil {
		return nil, fmt.Errorf("presentation decode: %w", err)
	}

	if doc.ExpireAt.Before(time.Now().UTC()) {
		return nil, oidc4vp.ErrDataNotFound
	}

	return doc, nil
}

// Update replaces the stored presentation only if its current state equals
// from.
func (s *Store) Update(_ context.Context, p *oidc4vp.Presentation, from oidc4vp.State) error {
	ctxWithTimeout, cancel := s.redisClient.ContextWithTimeout()
	defer cancel()

	doc := documentFromPresentation(p, time.Now().UTC().Add(s.ttl))

	payload, err := doc.MarshalBinary()
	if err != nil {
		return fmt.Errorf("presentation encode: %w", err)
	}

	result, err := updateIfStateScript.Run(ctxWithTimeout, s.redisClient.API(),
		[]string{resolveKey(string(p.ID))}, int(from), string(payload)).Int()
	if err != nil {
		return fmt.Errorf("presentation update: %w", err)
	}

	switch result {
	case 1:
		return nil
	case 0:
		return oidc4vp.ErrDataNotFound
	default:
		return oidc4vp.ErrStateConflict
	}
}

func documentFromPresentation(p *oidc4vp.Presentation, expireAt time.Time) *presentationDocument {
	doc := &presentationDocument{
		ID:                       string(p.ID),
		RequestID:                string(p.RequestID),
		Kind:                     string(p.Type.Kind),
		PresentationDefinition:   p.Type.PresentationDefinition,
		State:                    int(p.State),
		InitiatedAt:              p.InitiatedAt,
		RequestObjectRetrievedAt: p.RequestObjectRetrievedAt,
		ExpireAt:                 expireAt,
	}

	for _, t := range p.Type.IDTokenTypes {
		doc.IDTokenTypes = append(doc.IDTokenTypes, string(t))
	}

	return doc
}

func presentationFromDocument(doc *presentationDocument) *oidc4vp.Presentation {
	typ := oidc4vp.PresentationType{
		Kind:                   oidc4vp.PresentationTypeKind(doc.Kind),
		IDTokenTypes:           []oidc4vp.IDTokenType{},
		PresentationDefinition: doc.PresentationDefinition,
	}

	for _, t := range doc.IDTokenTypes {
		typ.IDTokenTypes = append(typ.IDTokenTypes, oidc4vp.IDTokenType(t))
	}

	return &oidc4vp.Presentation{
		ID:                       oidc4vp.PresentationID(doc.ID),
		RequestID:                oidc4vp.RequestID(doc.RequestID),
		Type:                     typ,
		State:                    oidc4vp.State(doc.State),
		InitiatedAt:              doc.InitiatedAt,
		RequestObjectRetrievedAt: doc.RequestObjectRetrievedAt,
	}
}

func resolveKey(id string) string {
	return fmt.Sprintf("%s-%s", keyPrefix, id)
}

func resolveRequestIDKey(id string) string {
	return fmt.Sprintf("%s-%s", requestIDKeyPrefix, id)
}
