/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4vp

import (
	"context"
	"errors"
)

// ErrDataNotFound is returned when no presentation exists for a given key.
var ErrDataNotFound = errors.New("data not found")

// ErrRequestObjectAlreadyRetrieved is returned when the wallet asks for a
// request object that has been handed out before. A request object can be
// retrieved at most once per presentation.
var ErrRequestObjectAlreadyRetrieved = errors.New("request object already retrieved")

// ErrInvalidStateTransition is returned by state machine transitions invoked
// from a state they are not legal in.
var ErrInvalidStateTransition = errors.New("invalid state transition")

// ErrStateConflict is returned by presentation stores when a conditional
// update loses against a concurrent writer for the same presentation.
var ErrStateConflict = errors.New("presentation state conflict")

// Validation errors surfaced from InitTransaction. They indicate problems
// with the caller's input; nothing is persisted when they occur.
var (
	ErrMissingPresentationDefinition = errors.New("missing presentation definition")
	ErrInvalidPresentationDefinition = errors.New("invalid presentation definition")
	ErrUnsupportedPresentationType   = errors.New("unsupported presentation type")
	ErrUnsupportedIDTokenType        = errors.New("unsupported id token type")
)

// PresentationID is the primary identifier of a presentation transaction.
type PresentationID string

// RequestID is the wallet-facing correlation token of a presentation
// transaction. It is the sole lookup key for request object retrieval and is
// also used as OAuth state/nonce material in the request object.
type RequestID string

// InitTransactionRequest carries the caller's input for initiating a
// presentation transaction. Field values follow the wire representation.
type InitTransactionRequest struct {
	Type                   string
	IDTokenType            string
	PresentationDefinition string
}

// JwtSecuredAuthorizationRequest is the caller-facing descriptor of an
// initiated transaction. Request and RequestURI are mutually exclusive:
// Request carries the signed request object inline, RequestURI points the
// wallet at the retrieval endpoint.
type JwtSecuredAuthorizationRequest struct {
	ClientID   string `json:"client_id"`
	Request    string `json:"request,omitempty"`
	RequestURI string `json:"request_uri,omitempty"`
}

// ServiceInterface defines the two operations the transport layer may call.
type ServiceInterface interface {
	InitTransaction(ctx context.Context, req *InitTransactionRequest) (*JwtSecuredAuthorizationRequest, error)
	GetRequestObject(ctx context.Context, requestID RequestID) (string, error)
	GetPresentation(ctx context.Context, id PresentationID) (*Presentation, error)
}
