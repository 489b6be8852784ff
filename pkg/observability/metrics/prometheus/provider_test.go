/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prometheus

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestPromProvider(t *testing.T) {
	provider := NewPrometheusProvider(nil)
	require.NotNil(t, provider)

	err := provider.Create()
	require.NoError(t, err)

	m := provider.Metrics()
	require.NotNil(t, m)

	err = provider.Destroy()
	require.NoError(t, err)
}

func TestGetMetrics(t *testing.T) {
	m := GetMetrics()
	require.NotNil(t, m)
	require.True(t, m == GetMetrics())

	require.NotPanics(t, func() { m.SignTime(time.Second) })
	require.NotPanics(t, func() { m.InitTransactionTime(time.Second) })
	require.NotPanics(t, func() { m.GetRequestObjectTime(time.Second) })
}

func TestNewHistogram(t *testing.T) {
	labels := prometheus.Labels{"type": "create"}

	require.NotNil(t, newHistogram("service", "metric_name", "Some help", labels))
}
