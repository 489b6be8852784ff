/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package signer signs request objects into compact JWS using an Ed25519 key.
package signer

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/hyperledger/aries-framework-go/pkg/doc/jose"
	"github.com/hyperledger/aries-framework-go/pkg/doc/jwt"

	noopmetrics "github.com/openvp/verifier-endpoint/pkg/observability/metrics/noop"
	"github.com/openvp/verifier-endpoint/pkg/service/oidc4vp"
)

type metricsProvider interface {
	SignTime(value time.Duration)
}

// Config holds the key material of the request object signer.
type Config struct {
	KeyID      string
	PrivateKey ed25519.PrivateKey
	Metrics    metricsProvider
}

// RequestObjectSigner signs request objects with EdDSA.
type RequestObjectSigner struct {
	keyID      string
	privateKey ed25519.PrivateKey
	metrics    metricsProvider
}

// NewRequestObjectSigner creates a request object signer. When no private key
// is supplied an ephemeral one is generated, which is only suitable for
// development setups.
func NewRequestObjectSigner(cfg *Config) (*RequestObjectSigner, error) {
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = &noopmetrics.NoMetrics{}
	}

	privateKey := cfg.PrivateKey
	if privateKey == nil {
		var err error

		_, privateKey, err = ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("generate ephemeral signing key: %w", err)
		}
	}

	return &RequestObjectSigner{
		keyID:      cfg.KeyID,
		privateKey: privateKey,
		metrics:    metrics,
	}, nil
}

// SignRequestObject serializes ro into a compact JWS.
func (s *RequestObjectSigner) SignRequestObject(_ context.Context, ro *oidc4vp.RequestObject) (string, error) {
	startTime := time.Now()

	defer func() {
		s.metrics.SignTime(time.Since(startTime))
	}()

	token, err := jwt.NewSigned(ro, nil, &jwsSigner{keyID: s.keyID, privateKey: s.privateKey})
	if err != nil {
		return "", fmt.Errorf("sign request object: %w", err)
	}

	tokenBytes, err := token.Serialize(false)
	if err != nil {
		return "", fmt.Errorf("serialize request object: %w", err)
	}

	return tokenBytes, nil
}

type jwsSigner struct {
	keyID      string
	privateKey ed25519.PrivateKey
}

func (s *jwsSigner) Sign(data []byte) ([]byte, error) {
	return ed25519.Sign(s.privateKey, data), nil
}

// Headers provides JWS headers. "alg" header must be provided (see https://tools.ietf.org/html/rfc7515#section-4.1)
func (s *jwsSigner) Headers() jose.Headers {
	headers := jose.Headers{
		jose.HeaderAlgorithm: "EdDSA",
	}

	if s.keyID != "" {
		headers[jose.HeaderKeyID] = s.keyID
	}

	return headers
}
