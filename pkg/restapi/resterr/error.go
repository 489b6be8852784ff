/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resterr

import (
	"fmt"
	"net/http"
)

type ErrorCode int

const (
	SystemError ErrorCode = iota
	BadRequest
	InvalidValue
	DoesntExist
	AlreadyRetrieved
)

func (c ErrorCode) Name() string {
	switch c {
	case SystemError:
		return "system-error"
	case BadRequest:
		return "bad-request"
	case InvalidValue:
		return "invalid-value"
	case DoesntExist:
		return "doesnt-exist"
	case AlreadyRetrieved:
		return "already-retrieved"
	default:
		return fmt.Sprintf("error-code-%d", int(c))
	}
}

// CustomError wraps a service failure with the error code the API reports and
// the place it happened at.
type CustomError struct {
	Code            ErrorCode
	IncorrectValue  string
	Component       string
	FailedOperation string
	Err             error
}

func NewSystemError(component, failedOperation string, err error) *CustomError {
	return &CustomError{
		Code:            SystemError,
		Component:       component,
		FailedOperation: failedOperation,
		Err:             err,
	}
}

func NewValidationError(code ErrorCode, incorrectValue string, err error) *CustomError {
	return &CustomError{
		Code:           code,
		IncorrectValue: incorrectValue,
		Err:            err,
	}
}

func NewCustomError(code ErrorCode, err error) *CustomError {
	return &CustomError{
		Code: code,
		Err:  err,
	}
}

func (e *CustomError) Error() string {
	if e.Code == SystemError {
		return fmt.Sprintf("%s[%s, %s]: %v", e.Code.Name(), e.Component, e.FailedOperation, e.Err)
	}

	if e.IncorrectValue != "" {
		return fmt.Sprintf("%s[%s]: %v", e.Code.Name(), e.IncorrectValue, e.Err)
	}

	return fmt.Sprintf("%s: %v", e.Code.Name(), e.Err)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// HTTPCodeMsg maps the error onto an HTTP status and a response body.
func (e *CustomError) HTTPCodeMsg() (int, interface{}) {
	var code int

	switch e.Code { //nolint:exhaustive
	case SystemError:
		code = http.StatusInternalServerError
	case DoesntExist:
		code = http.StatusNotFound
	case AlreadyRetrieved:
		code = http.StatusConflict
	default:
		code = http.StatusBadRequest
	}

	msg := map[string]interface{}{
		"code":    e.Code.Name(),
		"message": e.Err.Error(),
	}

	if e.IncorrectValue != "" {
		msg["incorrectValue"] = e.IncorrectValue
	}

	return code, msg
}
