/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4vp

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/hyperledger/aries-framework-go/pkg/doc/presexch"
)

// State discriminates the lifecycle phase of a Presentation. New downstream
// phases (wallet response submitted, expired) extend this enum without
// changing existing transitions.
type State int

const (
	// StateRequested is the initial state of every presentation.
	StateRequested State = iota + 1
	// StateRequestObjectRetrieved means the signed request object has been
	// handed out. A presentation enters this state exactly once.
	StateRequestObjectRetrieved
)

func (s State) String() string {
	switch s {
	case StateRequested:
		return "requested"
	case StateRequestObjectRetrieved:
		return "request-object-retrieved"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// IDTokenType specifies what kind of id_token the wallet is asked for.
type IDTokenType string

const (
	IDTokenTypeSubjectSigned  IDTokenType = "SubjectSigned"
	IDTokenTypeAttesterSigned IDTokenType = "AttesterSigned"
)

// PresentationTypeKind enumerates the supported transaction kinds.
type PresentationTypeKind string

const (
	KindIDTokenRequest      PresentationTypeKind = "IdTokenRequest"
	KindVPTokenRequest      PresentationTypeKind = "VpTokenRequest"
	KindIDAndVPTokenRequest PresentationTypeKind = "IdAndVpTokenRequest"
)

// PresentationType describes what the wallet is asked to present.
// IDTokenTypes is always non-nil (possibly empty) for kinds that request an
// id_token; PresentationDefinition is always non-nil for kinds that request
// a vp_token. Use the constructors to keep those invariants.
type PresentationType struct {
	Kind                   PresentationTypeKind
	IDTokenTypes           []IDTokenType
	PresentationDefinition *presexch.PresentationDefinition
}

// NewIDTokenRequestType creates an id_token-only presentation type. An empty
// list of id token types means "no constraint".
func NewIDTokenRequestType(idTokenTypes []IDTokenType) PresentationType {
	if idTokenTypes == nil {
		idTokenTypes = []IDTokenType{}
	}

	return PresentationType{Kind: KindIDTokenRequest, IDTokenTypes: idTokenTypes}
}

// NewVPTokenRequestType creates a vp_token-only presentation type.
func NewVPTokenRequestType(pd *presexch.PresentationDefinition) (PresentationType, error) {
	if pd == nil {
		return PresentationType{}, ErrMissingPresentationDefinition
	}

	return PresentationType{Kind: KindVPTokenRequest, PresentationDefinition: pd}, nil
}

// NewIDAndVPTokenRequestType creates a presentation type asking for both an
// id_token and a vp_token.
func NewIDAndVPTokenRequestType(
	idTokenTypes []IDTokenType, pd *presexch.PresentationDefinition) (PresentationType, error) {
	if pd == nil {
		return PresentationType{}, ErrMissingPresentationDefinition
	}

	if idTokenTypes == nil {
		idTokenTypes = []IDTokenType{}
	}

	return PresentationType{Kind: KindIDAndVPTokenRequest, IDTokenTypes: idTokenTypes, PresentationDefinition: pd}, nil
}

// RequestsIDToken reports whether the wallet is asked for an id_token.
func (t PresentationType) RequestsIDToken() bool {
	return t.Kind == KindIDTokenRequest || t.Kind == KindIDAndVPTokenRequest
}

// RequestsVPToken reports whether the wallet is asked for a vp_token.
func (t PresentationType) RequestsVPToken() bool {
	return t.Kind == KindVPTokenRequest || t.Kind == KindIDAndVPTokenRequest
}

// Presentation is the aggregate root of a single credential presentation
// transaction. Transitions never mutate in place: they return a new value
// and the store is the only place the change becomes durable.
type Presentation struct {
	ID                       PresentationID
	RequestID                RequestID
	Type                     PresentationType
	State                    State
	InitiatedAt              time.Time
	RequestObjectRetrievedAt *time.Time
}

// NewRequestedPresentation creates a presentation in its initial state.
func NewRequestedPresentation(
	id PresentationID, requestID RequestID, typ PresentationType, initiatedAt time.Time) Presentation {
	return Presentation{
		ID:          id,
		RequestID:   requestID,
		Type:        typ,
		State:       StateRequested,
		InitiatedAt: initiatedAt,
	}
}

// RetrieveRequestObject transitions the presentation to
// StateRequestObjectRetrieved. Legal only from StateRequested; this check is
// the last line of defense against concurrent double retrieval, the store's
// conditional update being the first.
func (p Presentation) RetrieveRequestObject(at time.Time) (Presentation, error) {
	if p.State != StateRequested {
		return Presentation{}, fmt.Errorf("%w: retrieve request object from state %s",
			ErrInvalidStateTransition, p.State)
	}

	p.State = StateRequestObjectRetrieved
	p.RequestObjectRetrievedAt = &at

	return p, nil
}

// toType validates the caller's input and maps it onto a PresentationType.
// It fails fast: no identifiers are generated and nothing is persisted when
// validation fails.
func (r *InitTransactionRequest) toType() (PresentationType, error) {
	idTokenTypes, err := r.idTokenTypes()
	if err != nil {
		return PresentationType{}, err
	}

	switch PresentationTypeKind(r.Type) {
	case KindIDTokenRequest:
		return NewIDTokenRequestType(idTokenTypes), nil
	case KindVPTokenRequest:
		pd, pdErr := r.presentationDefinition()
		if pdErr != nil {
			return PresentationType{}, pdErr
		}

		return NewVPTokenRequestType(pd)
	case KindIDAndVPTokenRequest:
		pd, pdErr := r.presentationDefinition()
		if pdErr != nil {
			return PresentationType{}, pdErr
		}

		return NewIDAndVPTokenRequestType(idTokenTypes, pd)
	default:
		return PresentationType{}, fmt.Errorf("%w: %q", ErrUnsupportedPresentationType, r.Type)
	}
}

// idTokenTypes maps the optional id_token_type input. Absence means "no
// constraint" and yields an empty list, never a failure.
func (r *InitTransactionRequest) idTokenTypes() ([]IDTokenType, error) {
	if r.IDTokenType == "" {
		return []IDTokenType{}, nil
	}

	switch IDTokenType(r.IDTokenType) {
	case IDTokenTypeSubjectSigned, IDTokenTypeAttesterSigned:
		return []IDTokenType{IDTokenType(r.IDTokenType)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedIDTokenType, r.IDTokenType)
	}
}

func (r *InitTransactionRequest) presentationDefinition() (*presexch.PresentationDefinition, error) {
	if strings.TrimSpace(r.PresentationDefinition) == "" {
		return nil, ErrMissingPresentationDefinition
	}

	pd := &presexch.PresentationDefinition{}
	if err := json.Unmarshal([]byte(r.PresentationDefinition), pd); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPresentationDefinition, err.Error())
	}

	if err := pd.ValidateSchema(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPresentationDefinition, err.Error())
	}

	return pd, nil
}

// EmbedMode selects how the request object reaches the wallet.
type EmbedMode string

const (
	// EmbedByValue returns the signed request object inline.
	EmbedByValue EmbedMode = "by_value"
	// EmbedByReference returns a URI the wallet fetches the request object from.
	EmbedByReference EmbedMode = "by_reference"
)

// requestIDPlaceholder is substituted with the request ID when building
// retrieval URIs from the configured template.
const requestIDPlaceholder = "{requestId}"

// EmbedOption is the deployment-wide embedding policy.
type EmbedOption struct {
	Mode               EmbedMode
	RequestURITemplate string
}

// RequestURI builds the wallet-facing retrieval URI for the given request ID.
func (o EmbedOption) RequestURI(id RequestID) string {
	return strings.ReplaceAll(o.RequestURITemplate, requestIDPlaceholder, url.PathEscape(string(id)))
}

// VerifierConfig is the immutable per-deployment verifier configuration. It
// is passed to the service at construction and never changes during a call.
type VerifierConfig struct {
	ClientID           string
	ClientName         string
	ClientPurpose      string
	LogoURI            string
	RedirectURI        string
	RequestObjectEmbed EmbedOption
	TokenLifetime      time.Duration
}
