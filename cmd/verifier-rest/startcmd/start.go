/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"context"
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/alexliesenfeld/health"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/trustbloc/logutil-go/pkg/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/openvp/verifier-endpoint/cmd/common"
	"github.com/openvp/verifier-endpoint/internal/logfields"
	"github.com/openvp/verifier-endpoint/pkg/event/inmemory"
	"github.com/openvp/verifier-endpoint/pkg/event/spi"
	"github.com/openvp/verifier-endpoint/pkg/healthchecks"
	"github.com/openvp/verifier-endpoint/pkg/kms/signer"
	"github.com/openvp/verifier-endpoint/pkg/observability/metrics"
	noopmetrics "github.com/openvp/verifier-endpoint/pkg/observability/metrics/noop"
	prometheusmetrics "github.com/openvp/verifier-endpoint/pkg/observability/metrics/prometheus"
	"github.com/openvp/verifier-endpoint/pkg/observability/tracing"
	oidc4vptracing "github.com/openvp/verifier-endpoint/pkg/observability/tracing/wrappers/oidc4vp"
	"github.com/openvp/verifier-endpoint/pkg/restapi/resterr"
	"github.com/openvp/verifier-endpoint/pkg/restapi/v1/verifier"
	"github.com/openvp/verifier-endpoint/pkg/service/oidc4vp"
	"github.com/openvp/verifier-endpoint/pkg/storage/mongodb"
	mongodbpresentationstore "github.com/openvp/verifier-endpoint/pkg/storage/mongodb/presentationstore"
	"github.com/openvp/verifier-endpoint/pkg/storage/redis"
	redispresentationstore "github.com/openvp/verifier-endpoint/pkg/storage/redis/presentationstore"
)

const (
	healthCheckPath     = "/healthcheck"
	gracefulTimeout     = 10 * time.Second
	metricsProviderProm = "prometheus"
)

var logger = log.New("verifier-rest")

type server interface {
	ListenAndServe(host string, router http.Handler) error
}

// HTTPServer represents an actual HTTP server implementation.
type HTTPServer struct{}

// ListenAndServe starts the server using the standard Go HTTP server implementation.
func (s *HTTPServer) ListenAndServe(host string, router http.Handler) error {
	return http.ListenAndServe(host, router)
}

// GetStartCmd returns the Cobra start command.
func GetStartCmd(srv server) *cobra.Command {
	startCmd := createStartCmd(srv)

	createFlags(startCmd)

	return startCmd
}

func createStartCmd(srv server) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start verifier-rest",
		Long:  "Start the OpenID4VP verifier endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := getStartupParameters(cmd)
			if err != nil {
				return err
			}

			return startVerifierService(params, srv)
		},
	}
}

//nolint:funlen
func startVerifierService(params *startupParameters, srv server) error {
	if params.logLevel != "" {
		common.SetDefaultLogLevel(logger, params.logLevel)
	}

	tracingShutdown, tracer, err := tracing.Initialize(params.tracingParams.exporter,
		params.tracingParams.serviceName)
	if err != nil {
		return fmt.Errorf("initialize tracing: %w", err)
	}

	defer tracingShutdown()

	serviceMetrics, err := createMetrics(params)
	if err != nil {
		return err
	}

	store, storeCloser, err := createPresentationStore(params)
	if err != nil {
		return err
	}

	defer storeCloser()

	requestObjectSigner, err := createRequestObjectSigner(params, serviceMetrics)
	if err != nil {
		return err
	}

	eventBus := inmemory.NewBus()
	eventBus.Subscribe(params.verifierEventTopic, logEvent)

	svc := oidc4vp.NewService(&oidc4vp.Config{
		PresentationStore:   store,
		RequestObjectSigner: requestObjectSigner,
		EventSvc:            eventBus,
		EventTopic:          params.verifierEventTopic,
		VerifierConfig: &oidc4vp.VerifierConfig{
			ClientID:      params.clientID,
			ClientName:    params.clientName,
			ClientPurpose: params.clientPurpose,
			LogoURI:       params.logoURI,
			RedirectURI:   params.redirectURI,
			RequestObjectEmbed: oidc4vp.EmbedOption{
				Mode:               params.embedMode,
				RequestURITemplate: params.requestURITemplate,
			},
			TokenLifetime: params.tokenLifetime,
		},
		Metrics: serviceMetrics,
	})

	controller := verifier.NewController(&verifier.Config{
		OIDC4VPService: oidc4vptracing.Wrap(svc, tracer),
	})

	e := buildEchoHandler(params, controller)

	logger.Info("Starting verifier-rest server", logfields.WithAddress(params.hostURL))

	return srv.ListenAndServe(params.hostURL, e)
}

func buildEchoHandler(params *startupParameters, controller *verifier.Controller) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.HTTPErrorHandler = resterr.HTTPErrorHandler

	e.Use(echomw.Recover())

	controller.Routes(e)

	checkerOpts := []health.CheckerOption{
		health.WithCacheDuration(2 * time.Second), //nolint:gomnd
		health.WithTimeout(5 * time.Second),       //nolint:gomnd
	}

	for _, check := range healthchecks.Get(healthChecksConfig(params)) {
		checkerOpts = append(checkerOpts, health.WithCheck(check))
	}

	e.GET(healthCheckPath, echo.WrapHandler(health.NewHandler(health.NewChecker(checkerOpts...))))

	return e
}

func healthChecksConfig(params *startupParameters) *healthchecks.Config {
	cfg := &healthchecks.Config{}

	switch params.dbParameters.databaseType {
	case databaseTypeMongoDBOption:
		cfg.MongoDBURL = params.dbParameters.databaseURL
	case databaseTypeRedisOption:
		cfg.RedisAddrs = strings.Split(params.dbParameters.databaseURL, ",")
		cfg.RedisMasterName = params.dbParameters.redisMasterName
		cfg.RedisPassword = params.dbParameters.redisPassword
	}

	return cfg
}

type presentationStore interface {
	Create(ctx context.Context, p *oidc4vp.Presentation) error
	Get(ctx context.Context, id oidc4vp.PresentationID) (*oidc4vp.Presentation, error)
	GetByRequestID(ctx context.Context, id oidc4vp.RequestID) (*oidc4vp.Presentation, error)
	Update(ctx context.Context, p *oidc4vp.Presentation, from oidc4vp.State) error
}

func createPresentationStore(params *startupParameters) (presentationStore, func(), error) {
	traceProvider := traceProviderOrNil(params)

	switch params.dbParameters.databaseType {
	case databaseTypeMongoDBOption:
		var opts []mongodb.ClientOpt
		if traceProvider != nil {
			opts = append(opts, mongodb.WithTraceProvider(traceProvider))
		}

		mongoClient, err := mongodb.New(params.dbParameters.databaseURL,
			params.dbParameters.databaseName, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("create mongodb client: %w", err)
		}

		store, err := mongodbpresentationstore.New(mongoClient, params.dataTTL)
		if err != nil {
			return nil, nil, fmt.Errorf("create mongodb presentation store: %w", err)
		}

		return store, func() {
			if err = mongoClient.Close(); err != nil {
				logger.Warn("Error closing mongodb client", log.WithError(err))
			}
		}, nil
	case databaseTypeRedisOption:
		var opts []redis.ClientOpt

		if traceProvider != nil {
			opts = append(opts, redis.WithTraceProvider(traceProvider))
		}

		if params.dbParameters.redisMasterName != "" {
			opts = append(opts, redis.WithMasterName(params.dbParameters.redisMasterName))
		}

		if params.dbParameters.redisPassword != "" {
			opts = append(opts, redis.WithPassword(params.dbParameters.redisPassword))
		}

		redisClient, err := redis.New(strings.Split(params.dbParameters.databaseURL, ","), opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("create redis client: %w", err)
		}

		return redispresentationstore.New(redisClient, params.dataTTL), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database type %s", params.dbParameters.databaseType)
	}
}

func traceProviderOrNil(params *startupParameters) trace.TracerProvider {
	if params.tracingParams.exporter == tracing.None {
		return nil
	}

	return otel.GetTracerProvider()
}

func createRequestObjectSigner(params *startupParameters,
	serviceMetrics metrics.Metrics) (*signer.RequestObjectSigner, error) {
	var privateKey ed25519.PrivateKey

	if params.signingKeyFile != "" {
		var err error

		privateKey, err = loadPrivateKey(params.signingKeyFile)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Warn("No signing key file configured, using an ephemeral key." +
			" Request objects will not verify across restarts.")
	}

	return signer.NewRequestObjectSigner(&signer.Config{
		KeyID:      params.signingKeyID,
		PrivateKey: privateKey,
		Metrics:    serviceMetrics,
	})
}

func loadPrivateKey(path string) (ed25519.PrivateKey, error) {
	b, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("read signing key file: %w", err)
	}

	block, _ := pem.Decode(b)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found in %s", path)
	}

	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse signing key: %w", err)
	}

	privateKey, ok := key.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("signing key in %s is not an Ed25519 key", path)
	}

	return privateKey, nil
}

func createMetrics(params *startupParameters) (metrics.Metrics, error) {
	if params.metricsProviderName != metricsProviderProm {
		return noopmetrics.GetMetrics(), nil
	}

	if params.promHTTPURL == "" {
		return nil, fmt.Errorf("prom-http-url is required for the prometheus metrics provider")
	}

	metricsServer := &http.Server{
		Addr:              params.promHTTPURL,
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: gracefulTimeout,
	}

	provider := prometheusmetrics.NewPrometheusProvider(metricsServer)

	go func() {
		if err := provider.Create(); err != nil {
			logger.Error("Metrics HTTP server stopped", log.WithError(err))
		}
	}()

	return provider.Metrics(), nil
}

func logEvent(ctx context.Context, event *spi.Event) error {
	logger.Infoc(ctx, "Event published", logfields.WithEventType(string(event.Type)),
		logfields.WithPresentationID(event.TransactionID))

	return nil
}
