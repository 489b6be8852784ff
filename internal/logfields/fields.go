/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logfields

import (
	"go.uber.org/zap"
)

// Log Fields.
const (
	FieldPresentationID = "presentationID"
	FieldRequestID      = "requestID"
	FieldState          = "state"
	FieldEmbedMode      = "embedMode"
	FieldEventType      = "eventType"
	FieldStorageType    = "storageType"
	FieldUserLogLevel   = "userLogLevel"
	FieldAddress        = "address"
)

// WithPresentationID sets the presentationID field.
func WithPresentationID(value string) zap.Field {
	return zap.String(FieldPresentationID, value)
}

// WithRequestID sets the requestID field.
func WithRequestID(value string) zap.Field {
	return zap.String(FieldRequestID, value)
}

// WithState sets the state field.
func WithState(value string) zap.Field {
	return zap.String(FieldState, value)
}

// WithEmbedMode sets the embedMode field.
func WithEmbedMode(value string) zap.Field {
	return zap.String(FieldEmbedMode, value)
}

// WithEventType sets the eventType field.
func WithEventType(value string) zap.Field {
	return zap.String(FieldEventType, value)
}

// WithStorageType sets the storageType field.
func WithStorageType(value string) zap.Field {
	return zap.String(FieldStorageType, value)
}

// WithUserLogLevel sets the userLogLevel field.
func WithUserLogLevel(value string) zap.Field {
	return zap.String(FieldUserLogLevel, value)
}

// WithAddress sets the address field.
func WithAddress(value string) zap.Field {
	return zap.String(FieldAddress, value)
}
