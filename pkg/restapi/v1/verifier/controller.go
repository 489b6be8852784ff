/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination controller_mocks_test.go -self_package mocks -package verifier -source=controller.go -mock_names oidc4VPService=MockOIDC4VPService

package verifier

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/openvp/verifier-endpoint/internal/logfields"
	"github.com/openvp/verifier-endpoint/pkg/restapi/resterr"
	"github.com/openvp/verifier-endpoint/pkg/restapi/v1/util"
	"github.com/openvp/verifier-endpoint/pkg/service/oidc4vp"
)

const (
	oidc4vpSvcComponent = "oidc4vp.Service"

	// RequestObjectContentType is the media type of a retrieved request
	// object, per RFC 9101.
	RequestObjectContentType = "application/oauth-authz-req+jwt"
)

var logger = log.New("verifier-controller")

type oidc4VPService interface {
	InitTransaction(ctx context.Context,
		req *oidc4vp.InitTransactionRequest) (*oidc4vp.JwtSecuredAuthorizationRequest, error)

	GetRequestObject(ctx context.Context, requestID oidc4vp.RequestID) (string, error)
}

// InitTransactionData is the request body of the transaction initiation
// endpoint.
type InitTransactionData struct {
	Type                   string `json:"type"`
	IDTokenType            string `json:"id_token_type,omitempty"`
	PresentationDefinition string `json:"presentation_definition,omitempty"`
}

type Config struct {
	OIDC4VPService oidc4VPService
}

// Controller for the verifier endpoint API.
type Controller struct {
	oidc4VPService oidc4VPService
}

// NewController creates a new Controller instance.
func NewController(config *Config) *Controller {
	return &Controller{
		oidc4VPService: config.OIDC4VPService,
	}
}

// Routes registers the controller endpoints on the given echo instance.
func (c *Controller) Routes(e *echo.Echo) {
	e.POST("/ui/presentations", c.InitTransaction)
	e.GET("/wallet/request.jwt/:requestId", c.GetRequestObject)
}

// InitTransaction initiates a presentation transaction.
// (POST /ui/presentations).
func (c *Controller) InitTransaction(ctx echo.Context) error {
	logger.Debug("InitTransaction begin")

	var body InitTransactionData

	if err := util.ReadBody(ctx, &body); err != nil {
		return err
	}

	return util.WriteOutput(ctx)(c.initTransaction(ctx.Request().Context(), &body))
}

func (c *Controller) initTransaction(
	ctx context.Context, body *InitTransactionData) (*oidc4vp.JwtSecuredAuthorizationRequest, error) {
	result, err := c.oidc4VPService.InitTransaction(ctx, &oidc4vp.InitTransactionRequest{
		Type:                   body.Type,
		IDTokenType:            body.IDTokenType,
		PresentationDefinition: body.PresentationDefinition,
	})
	if err != nil {
		return nil, mapInitTransactionError(err)
	}

	logger.Debug("InitTransaction success")

	return result, nil
}

func mapInitTransactionError(err error) error {
	switch {
	case errors.Is(err, oidc4vp.ErrUnsupportedPresentationType):
		return resterr.NewValidationError(resterr.InvalidValue, "type", err)
	case errors.Is(err, oidc4vp.ErrUnsupportedIDTokenType):
		return resterr.NewValidationError(resterr.InvalidValue, "id_token_type", err)
	case errors.Is(err, oidc4vp.ErrMissingPresentationDefinition),
		errors.Is(err, oidc4vp.ErrInvalidPresentationDefinition):
		return resterr.NewValidationError(resterr.InvalidValue, "presentation_definition", err)
	default:
		return resterr.NewSystemError(oidc4vpSvcComponent, "InitTransaction", err)
	}
}

// GetRequestObject returns the signed request object for a presentation.
// (GET /wallet/request.jwt/:requestId).
func (c *Controller) GetRequestObject(ctx echo.Context) error {
	requestID := ctx.Param("requestId")

	logger.Debug("GetRequestObject begin", logfields.WithRequestID(requestID))

	token, err := c.oidc4VPService.GetRequestObject(ctx.Request().Context(), oidc4vp.RequestID(requestID))
	if err != nil {
		switch {
		case errors.Is(err, oidc4vp.ErrDataNotFound):
			return resterr.NewValidationError(resterr.DoesntExist, "requestId", err)
		case errors.Is(err, oidc4vp.ErrRequestObjectAlreadyRetrieved):
			return resterr.NewCustomError(resterr.AlreadyRetrieved, err)
		default:
			return resterr.NewSystemError(oidc4vpSvcComponent, "GetRequestObject", err)
		}
	}

	logger.Debug("GetRequestObject success", logfields.WithRequestID(requestID))

	return util.WriteRawOutputWithContentType(ctx)([]byte(token), RequestObjectContentType, nil)
}
