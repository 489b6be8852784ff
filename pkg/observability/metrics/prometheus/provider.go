/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prometheus

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/openvp/verifier-endpoint/pkg/observability/metrics"
)

var logger = metrics.Logger

var (
	createOnce sync.Once       //nolint:gochecknoglobals
	instance   metrics.Metrics //nolint:gochecknoglobals
)

type promProvider struct {
	httpServer *http.Server
}

// NewPrometheusProvider creates new instance of Prometheus Metrics Provider.
func NewPrometheusProvider(httpServer *http.Server) metrics.Provider {
	return &promProvider{httpServer: httpServer}
}

// Create creates/initializes the prometheus metrics provider.
func (pp *promProvider) Create() error {
	if pp.httpServer == nil {
		return nil
	}

	if err := pp.httpServer.ListenAndServe(); err != nil {
		return fmt.Errorf("start metrics HTTP server: %w", err)
	}

	return nil
}

// Metrics returns supported metrics.
func (pp *promProvider) Metrics() metrics.Metrics {
	return GetMetrics()
}

// Destroy destroys the prometheus metrics provider.
func (pp *promProvider) Destroy() error {
	if pp.httpServer != nil {
		return pp.httpServer.Shutdown(context.Background())
	}

	return nil
}

// GetMetrics returns metrics implementation.
func GetMetrics() metrics.Metrics {
	createOnce.Do(func() {
		instance = NewMetrics()
	})

	return instance
}

// PromMetrics manages the metrics for the verifier endpoint.
type PromMetrics struct {
	signTime             prometheus.Histogram
	initTransactionTime  prometheus.Histogram
	getRequestObjectTime prometheus.Histogram
}

// NewMetrics creates instance of prometheus metrics.
func NewMetrics() metrics.Metrics {
	pm := &PromMetrics{
		signTime:             newSignTime(),
		initTransactionTime:  newInitTransactionTime(),
		getRequestObjectTime: newGetRequestObjectTime(),
	}

	registerMetrics(pm)

	return pm
}

// SignTime records the time for sign.
func (pm *PromMetrics) SignTime(value time.Duration) {
	pm.signTime.Observe(value.Seconds())

	logger.Debug("crypto sign time", log.WithDuration(value))
}

// InitTransactionTime records the time for the InitTransaction service call.
func (pm *PromMetrics) InitTransactionTime(value time.Duration) {
	pm.initTransactionTime.Observe(value.Seconds())

	logger.Debug("InitTransaction service call time", log.WithDuration(value))
}

// GetRequestObjectTime records the time for the GetRequestObject service call.
func (pm *PromMetrics) GetRequestObjectTime(value time.Duration) {
	pm.getRequestObjectTime.Observe(value.Seconds())

	logger.Debug("GetRequestObject service call time", log.WithDuration(value))
}

func registerMetrics(pm *PromMetrics) {
	prometheus.MustRegister(
		pm.signTime, pm.initTransactionTime, pm.getRequestObjectTime,
	)
}

func newHistogram(subsystem, name, help string, labels prometheus.Labels) prometheus.Histogram {
	return prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   metrics.Namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: labels,
	})
}

func newSignTime() prometheus.Histogram {
	return newHistogram(
		metrics.Crypto, metrics.CryptoSignTimeMetric,
		"The time (in seconds) it takes to run crypto sign.",
		nil,
	)
}

func newInitTransactionTime() prometheus.Histogram {
	return newHistogram(
		metrics.Service, metrics.InitTransactionTimeMetric,
		"The time (in seconds) it takes to execute InitTransaction service call.",
		nil,
	)
}

func newGetRequestObjectTime() prometheus.Histogram {
	return newHistogram(
		metrics.Service, metrics.GetRequestObjectTimeMetric,
		"The time (in seconds) it takes to execute GetRequestObject service call.",
		nil,
	)
}
