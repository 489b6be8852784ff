/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resterr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSystemError(t *testing.T) {
	err := NewSystemError("testComp", "TestOp", errors.New("some error"))
	require.Equal(t, "system-error[testComp, TestOp]: some error", err.Error())

	httpCode, resp := err.HTTPCodeMsg()

	require.Equal(t, http.StatusInternalServerError, httpCode)
	requireCode(t, resp, SystemError.Name())
	requireMessage(t, resp, "some error")
}

func TestNewValidationError(t *testing.T) {
	t.Run("invalid value error", func(t *testing.T) {
		err := NewValidationError(InvalidValue, "test.value1", errors.New("some error"))
		require.Equal(t, "invalid-value[test.value1]: some error", err.Error())

		httpCode, resp := err.HTTPCodeMsg()

		require.Equal(t, http.StatusBadRequest, httpCode)
		requireCode(t, resp, InvalidValue.Name())
		requireMessage(t, resp, "some error")
		requireIncorrectValue(t, resp, "test.value1")
	})

	t.Run("bad request", func(t *testing.T) {
		err := NewValidationError(BadRequest, "test.value1", errors.New("some error"))
		require.Equal(t, "bad-request[test.value1]: some error", err.Error())

		httpCode, resp := err.HTTPCodeMsg()

		require.Equal(t, http.StatusBadRequest, httpCode)
		requireCode(t, resp, BadRequest.Name())
		requireMessage(t, resp, "some error")
	})

	t.Run("doesn't exist error", func(t *testing.T) {
		err := NewValidationError(DoesntExist, "test.value1", errors.New("some error"))
		require.Equal(t, "doesnt-exist[test.value1]: some error", err.Error())

		httpCode, resp := err.HTTPCodeMsg()

		require.Equal(t, http.StatusNotFound, httpCode)
		requireCode(t, resp, DoesntExist.Name())
		requireMessage(t, resp, "some error")
	})
}

func TestNewCustomError(t *testing.T) {
	err := NewCustomError(AlreadyRetrieved, errors.New("some error"))
	require.Equal(t, "already-retrieved: some error", err.Error())

	httpCode, resp := err.HTTPCodeMsg()

	require.Equal(t, http.StatusConflict, httpCode)
	requireCode(t, resp, AlreadyRetrieved.Name())
	requireMessage(t, resp, "some error")
}

func TestCustomError_Unwrap(t *testing.T) {
	inner := errors.New("some error")

	err := NewCustomError(AlreadyRetrieved, inner)
	require.ErrorIs(t, err, inner)
}

func TestErrorCode_Name(t *testing.T) {
	require.Equal(t, "system-error", SystemError.Name())
	require.Equal(t, "bad-request", BadRequest.Name())
	require.Equal(t, "invalid-value", InvalidValue.Name())
	require.Equal(t, "doesnt-exist", DoesntExist.Name())
	require.Equal(t, "already-retrieved", AlreadyRetrieved.Name())
	require.Equal(t, "error-code-42", ErrorCode(42).Name())
}

func requireCode(t *testing.T, resp interface{}, code string) {
	t.Helper()

	msg, ok := resp.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, code, msg["code"])
}

func requireMessage(t *testing.T, resp interface{}, message string) {
	t.Helper()

	msg, ok := resp.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, message, msg["message"])
}

func requireIncorrectValue(t *testing.T, resp interface{}, value string) {
	t.Helper()

	msg, ok := resp.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, value, msg["incorrectValue"])
}
