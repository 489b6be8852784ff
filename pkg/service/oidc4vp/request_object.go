/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4vp

import (
	"strings"

	"github.com/google/uuid"
	"github.com/hyperledger/aries-framework-go/pkg/doc/presexch"
)

const (
	scopeOpenID            = "openid"
	responseModeDirectPost = "direct_post"

	responseTypeIDToken = "id_token"
	responseTypeVPToken = "vp_token"
)

// RequestObject is the RFC 9101 request object sent to the wallet. For
// vp_token kinds it carries the presentation definition that specifies what
// verifiable credentials the wallet should send back.
type RequestObject struct {
	JTI          string `json:"jti"`
	IAT          int64  `json:"iat"`
	ISS          string `json:"iss"`
	ResponseType string `json:"response_type"`
	ResponseMode string `json:"response_mode"`
	Scope        string `json:"scope"`
	Nonce        string `json:"nonce"`
	ClientID     string `json:"client_id"`
	RedirectURI  string `json:"redirect_uri"`
	State        string `json:"state"`
	Exp          int64  `json:"exp"`
	IDTokenType  string `json:"id_token_type,omitempty"`

	Registration RequestObjectRegistration `json:"registration"`
	Claims       *RequestObjectClaims      `json:"claims,omitempty"`
}

// RequestObjectRegistration carries verifier metadata for wallet display.
type RequestObjectRegistration struct {
	ClientName    string `json:"client_name,omitempty"`
	ClientPurpose string `json:"client_purpose,omitempty"`
	LogoURI       string `json:"logo_uri,omitempty"`
}

// RequestObjectClaims wraps the vp_token claims request.
type RequestObjectClaims struct {
	VPToken VPToken `json:"vp_token"`
}

// VPToken carries the presentation definition inside the claims request.
type VPToken struct {
	PresentationDefinition *presexch.PresentationDefinition `json:"presentation_definition"`
}

// createRequestObject builds the claims set for the given presentation. The
// request ID doubles as OAuth state and nonce so that the wallet response
// can be correlated back to the transaction.
func (s *Service) createRequestObject(p *Presentation) *RequestObject {
	now := s.now()

	ro := &RequestObject{
		JTI:          uuid.NewString(),
		IAT:          now.Unix(),
		ISS:          s.verifierConfig.ClientID,
		ResponseType: responseTypeOf(p.Type),
		ResponseMode: responseModeDirectPost,
		Scope:        scopeOpenID,
		Nonce:        string(p.RequestID),
		ClientID:     s.verifierConfig.ClientID,
		RedirectURI:  s.verifierConfig.RedirectURI,
		State:        string(p.RequestID),
		Exp:          now.Add(s.verifierConfig.TokenLifetime).Unix(),
		Registration: RequestObjectRegistration{
			ClientName:    s.verifierConfig.ClientName,
			ClientPurpose: s.verifierConfig.ClientPurpose,
			LogoURI:       s.verifierConfig.LogoURI,
		},
	}

	if p.Type.RequestsIDToken() && len(p.Type.IDTokenTypes) > 0 {
		ro.IDTokenType = idTokenTypesClaim(p.Type.IDTokenTypes)
	}

	if p.Type.RequestsVPToken() {
		ro.Claims = &RequestObjectClaims{VPToken: VPToken{
			PresentationDefinition: p.Type.PresentationDefinition,
		}}
	}

	return ro
}

func responseTypeOf(typ PresentationType) string {
	switch typ.Kind {
	case KindVPTokenRequest:
		return responseTypeVPToken
	case KindIDAndVPTokenRequest:
		return responseTypeVPToken + " " + responseTypeIDToken
	default:
		return responseTypeIDToken
	}
}

func idTokenTypesClaim(types []IDTokenType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}

	return strings.Join(names, " ")
}
