/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package presentationstore persists presentation transactions in MongoDB.
package presentationstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hyperledger/aries-framework-go/pkg/doc/presexch"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openvp/verifier-endpoint/pkg/service/oidc4vp"
	"github.com/openvp/verifier-endpoint/pkg/storage/mongodb"
)

const (
	presentationCollection = "presentationstore"
)

type presentationDocument struct {
	ID                       string                 `bson:"_id,omitempty"`
	RequestID                string                 `bson:"requestID"`
	Kind                     string                 `bson:"kind"`
	IDTokenTypes             []string               `bson:"idTokenTypes,omitempty"`
	PresentationDefinition   map[string]interface{} `bson:"presentationDefinition,omitempty"`
	State                    int                    `bson:"state"`
	InitiatedAt              time.Time              `bson:"initiatedAt"`
	RequestObjectRetrievedAt *time.Time             `bson:"requestObjectRetrievedAt,omitempty"`
	ExpireAt                 time.Time              `bson:"expireAt"`
}

// Store manages presentation transactions in MongoDB.
type Store struct {
	mongoClient *mongodb.Client
	ttl         time.Duration
}

// New creates a presentation Store and ensures its indexes.
func New(mongoClient *mongodb.Client, ttl time.Duration) (*Store, error) {
	s := &Store{
		mongoClient: mongoClient,
		ttl:         ttl,
	}

	if err := s.migrate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) migrate() error {
	ctxWithTimeout, cancel := s.mongoClient.ContextWithTimeout()
	defer cancel()

	if _, err := s.mongoClient.Database().Collection(presentationCollection).Indexes().
		CreateMany(ctxWithTimeout, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "requestID", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{ // ttl index https://www.mongodb.com/community/forums/t/ttl-index-internals/4086/2
				Keys: map[string]interface{}{
					"expireAt": 1,
				},
				Options: options.Index().SetExpireAfterSeconds(0),
			},
		}); err != nil {
		return err
	}

	return nil
}

// Create stores a new presentation. The request ID unique index rejects a
// duplicate correlation token.
func (s *Store) Create(_ context.Context, p *oidc4vp.Presentation) error {
	ctxWithTimeout, cancel := s.mongoClient.ContextWithTimeout()
	defer cancel()

	collection := s.mongoClient.Database().Collection(presentationCollection)

	doc, err := documentFromPresentation(p, time.Now().UTC().Add(s.ttl))
	if err != nil {
		return err
	}

	if _, err = collection.InsertOne(ctxWithTimeout, doc); err != nil {
		return fmt.Errorf("insert presentation: %w", err)
	}

	return nil
}

// Get looks a presentation up by its primary ID.
func (s *Store) Get(_ context.Context, id oidc4vp.PresentationID) (*oidc4vp.Presentation, error) {
	return s.findOne(bson.M{"_id": string(id)})
}

// GetByRequestID looks a presentation up by the wallet-facing request ID.
func (s *Store) GetByRequestID(_ context.Context, id oidc4vp.RequestID) (*oidc4vp.Presentation, error) {
	return s.findOne(bson.M{"requestID": string(id)})
}

func (s *Store) findOne(filter bson.M) (*oidc4vp.Presentation, error) {
	ctxWithTimeout, cancel := s.mongoClient.ContextWithTimeout()
	defer cancel()

	collection := s.mongoClient.Database().Collection(presentationCollection)

	doc := &presentationDocument{}

	err := collection.FindOne(ctxWithTimeout, filter).Decode(doc)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, oidc4vp.ErrDataNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("presentation find failed: %w", err)
	}

	// Expired documents linger until the ttl monitor sweeps them.
	if doc.ExpireAt.Before(time.Now().UTC()) {
		return nil, oidc4vp.ErrDataNotFound
	}

	return presentationFromDocument(doc)
}

// Update replaces the stored presentation only if its current state equals
// from. The state field in the filter makes the write a compare-and-swap: of
// two concurrent updates for the same presentation exactly one matches.
func (s *Store) Update(_ context.Context, p *oidc4vp.Presentation, from oidc4vp.State) error {
	ctxWithTimeout, cancel := s.mongoClient.ContextWithTimeout()
	defer cancel()

	collection := s.mongoClient.Database().Collection(presentationCollection)

	doc, err := documentFromPresentation(p, time.Now().UTC().Add(s.ttl))
	if err != nil {
		return err
	}

	result := collection.FindOneAndUpdate(ctxWithTimeout,
		bson.M{"_id": string(p.ID), "state": int(from)},
		bson.M{"$set": bson.M{
			"state":                    doc.State,
			"requestObjectRetrievedAt": doc.RequestObjectRetrievedAt,
		}},
	)

	if err = result.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return s.classifyUpdateMiss(ctxWithTimeout, p.ID)
		}

		return fmt.Errorf("presentation update failed: %w", err)
	}

	return nil
}

// classifyUpdateMiss distinguishes a missing document from a state mismatch.
func (s *Store) classifyUpdateMiss(ctx context.Context, id oidc4vp.PresentationID) error {
	collection := s.mongoClient.Database().Collection(presentationCollection)

	err := collection.FindOne(ctx, bson.M{"_id": string(id)}).Err()

	if errors.Is(err, mongo.ErrNoDocuments) {
		return oidc4vp.ErrDataNotFound
	}

	if err != nil {
		return fmt.Errorf("presentation find failed: %w", err)
	}

	return oidc4vp.ErrStateConflict
}

func documentFromPresentation(p *oidc4vp.Presentation, expireAt time.Time) (*presentationDocument, error) {
	doc := &presentationDocument{
		ID:                       string(p.ID),
		RequestID:                string(p.RequestID),
		Kind:                     string(p.Type.Kind),
		State:                    int(p.State),
		InitiatedAt:              p.InitiatedAt,
		RequestObjectRetrievedAt: p.RequestObjectRetrievedAt,
		ExpireAt:                 expireAt,
	}

	for _, t := range p.Type.IDTokenTypes {
		doc.IDTokenTypes = append(doc.IDTokenTypes, string(t))
	}

	if p.Type.PresentationDefinition != nil {
		pdContent, err := mongodb.StructureToMap(p.Type.PresentationDefinition)
		if err != nil {
			return nil, fmt.Errorf("presentation definition serialization failed: %w", err)
		}

		doc.PresentationDefinition = pdContent
	}

	return doc, nil
}

func presentationFromDocument(doc *presentationDocument) (*oidc4vp.Presentation, error) {
	typ := oidc4vp.PresentationType{
		Kind:         oidc4vp.PresentationTypeKind(doc.Kind),
		IDTokenTypes: []oidc4vp.IDTokenType{},
	}

	for _, t := range doc.IDTokenTypes {
		typ.IDTokenTypes = append(typ.IDTokenTypes, oidc4vp.IDTokenType(t))
	}

	if doc.PresentationDefinition != nil {
		pd := &presexch.PresentationDefinition{}

		if err := mongodb.MapToStructure(doc.PresentationDefinition, pd); err != nil {
			return nil, fmt.Errorf("presentation definition deserialization failed: %w", err)
		}

		typ.PresentationDefinition = pd
	}

	return &oidc4vp.Presentation{
		ID:                       oidc4vp.PresentationID(doc.ID),
		RequestID:                oidc4vp.RequestID(doc.RequestID),
		Type:                     typ,
		State:                    oidc4vp.State(doc.State),
		InitiatedAt:              doc.InitiatedAt,
		RequestObjectRetrievedAt: doc.RequestObjectRetrievedAt,
	}, nil
}
