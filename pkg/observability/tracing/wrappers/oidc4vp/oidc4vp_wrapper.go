/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination gomocks_test.go -package oidc4vp . Service

package oidc4vp

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/openvp/verifier-endpoint/pkg/service/oidc4vp"
)

type Service oidc4vp.ServiceInterface

type Wrapper struct {
	svc    Service
	tracer trace.Tracer
}

func Wrap(svc Service, tracer trace.Tracer) *Wrapper {
	return &Wrapper{svc: svc, tracer: tracer}
}

func (w *Wrapper) InitTransaction(
	ctx context.Context, req *oidc4vp.InitTransactionRequest) (*oidc4vp.JwtSecuredAuthorizationRequest, error) {
	ctx, span := w.tracer.Start(ctx, "oidc4vp.InitTransaction")
	defer span.End()

	span.SetAttributes(attribute.String("type", req.Type))

	resp, err := w.svc.InitTransaction(ctx, req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (w *Wrapper) GetRequestObject(ctx context.Context, requestID oidc4vp.RequestID) (string, error) {
	ctx, span := w.tracer.Start(ctx, "oidc4vp.GetRequestObject")
	defer span.End()

	span.SetAttributes(attribute.String("request_id", string(requestID)))

	token, err := w.svc.GetRequestObject(ctx, requestID)
	if err != nil {
		return "", err
	}

	return token, nil
}

func (w *Wrapper) GetPresentation(ctx context.Context, id oidc4vp.PresentationID) (*oidc4vp.Presentation, error) {
	ctx, span := w.tracer.Start(ctx, "oidc4vp.GetPresentation")
	defer span.End()

	span.SetAttributes(attribute.String("presentation_id", string(id)))

	presentation, err := w.svc.GetPresentation(ctx, id)
	if err != nil {
		return nil, err
	}

	return presentation, nil
}
