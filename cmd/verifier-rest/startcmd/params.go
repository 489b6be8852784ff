/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	cmdutils "github.com/trustbloc/cmdutil-go/pkg/utils/cmd"

	"github.com/openvp/verifier-endpoint/cmd/common"
	"github.com/openvp/verifier-endpoint/pkg/event/spi"
	"github.com/openvp/verifier-endpoint/pkg/observability/tracing"
	"github.com/openvp/verifier-endpoint/pkg/service/oidc4vp"
)

const (
	commonEnvVarUsageText = "Alternatively, this can be set with the following environment variable: "

	hostURLFlagName      = "host-url"
	hostURLFlagShorthand = "u"
	hostURLFlagUsage     = "URL to run the verifier-rest instance on. Format: HostName:Port."
	hostURLEnvKey        = "VERIFIER_REST_HOST_URL"

	hostURLExternalFlagName      = "host-url-external"
	hostURLExternalFlagShorthand = "x"
	hostURLExternalEnvKey        = "VERIFIER_REST_HOST_URL_EXTERNAL"
	hostURLExternalFlagUsage     = "This is the URL for the host server as seen externally." +
		" Format: http://<HOST>:<PORT>. " + commonEnvVarUsageText + hostURLExternalEnvKey

	databaseTypeFlagName      = "database-type"
	databaseTypeEnvKey        = "VERIFIER_REST_DATABASE_TYPE"
	databaseTypeFlagShorthand = "t"
	databaseTypeFlagUsage     = "The type of database to use for presentation storage. " +
		"Supported options: mongodb, redis. " + commonEnvVarUsageText + databaseTypeEnvKey

	databaseURLFlagName      = "database-url"
	databaseURLEnvKey        = "VERIFIER_REST_DATABASE_URL"
	databaseURLFlagShorthand = "v"
	databaseURLFlagUsage     = "The URL (or connection string) of the database. For redis this is a" +
		" comma-separated list of addresses. " + commonEnvVarUsageText + databaseURLEnvKey

	databaseNameFlagName  = "database-name"
	databaseNameEnvKey    = "VERIFIER_REST_DATABASE_NAME"
	databaseNameFlagUsage = "The name of the MongoDB database. Default: verifier. " +
		commonEnvVarUsageText + databaseNameEnvKey

	redisMasterNameFlagName  = "redis-master-name"
	redisMasterNameEnvKey    = "VERIFIER_REST_REDIS_MASTER_NAME"
	redisMasterNameFlagUsage = "The name of the redis sentinel master. " +
		commonEnvVarUsageText + redisMasterNameEnvKey

	redisPasswordFlagName  = "redis-password"
	redisPasswordEnvKey    = "VERIFIER_REST_REDIS_PASSWORD" //nolint: gosec
	redisPasswordFlagUsage = "The password for redis. " +
		commonEnvVarUsageText + redisPasswordEnvKey

	dataTTLFlagName  = "data-ttl"
	dataTTLEnvKey    = "VERIFIER_REST_DATA_TTL"
	dataTTLFlagUsage = "Presentation data TTL as a duration, for example 1h. Defaults to 1h. " +
		commonEnvVarUsageText + dataTTLEnvKey

	embedModeFlagName  = "request-object-embed-mode"
	embedModeEnvKey    = "VERIFIER_REST_REQUEST_OBJECT_EMBED_MODE"
	embedModeFlagUsage = "How the request object reaches the wallet. " +
		"Supported options: by_value, by_reference. Defaults to by_reference. " +
		commonEnvVarUsageText + embedModeEnvKey

	requestURITemplateFlagName  = "request-uri-template"
	requestURITemplateEnvKey    = "VERIFIER_REST_REQUEST_URI_TEMPLATE"
	requestURITemplateFlagUsage = "Template of the wallet-facing request object retrieval URI with a" +
		" {requestId} placeholder. Defaults to <host-url-external>/wallet/request.jwt/{requestId}. " +
		commonEnvVarUsageText + requestURITemplateEnvKey

	clientIDFlagName  = "client-id"
	clientIDEnvKey    = "VERIFIER_REST_CLIENT_ID"
	clientIDFlagUsage = "The verifier client id placed into request objects. " +
		commonEnvVarUsageText + clientIDEnvKey

	clientNameFlagName  = "client-name"
	clientNameEnvKey    = "VERIFIER_REST_CLIENT_NAME"
	clientNameFlagUsage = "The verifier display name placed into request object registration. " +
		commonEnvVarUsageText + clientNameEnvKey

	clientPurposeFlagName  = "client-purpose"
	clientPurposeEnvKey    = "VERIFIER_REST_CLIENT_PURPOSE"
	clientPurposeFlagUsage = "The purpose text placed into request object registration. " +
		commonEnvVarUsageText + clientPurposeEnvKey

	logoURIFlagName  = "logo-uri"
	logoURIEnvKey    = "VERIFIER_REST_LOGO_URI"
	logoURIFlagUsage = "The verifier logo URI placed into request object registration. " +
		commonEnvVarUsageText + logoURIEnvKey

	redirectURIFlagName  = "redirect-uri"
	redirectURIEnvKey    = "VERIFIER_REST_REDIRECT_URI"
	redirectURIFlagUsage = "The URI the wallet posts the authorization response to. " +
		commonEnvVarUsageText + redirectURIEnvKey

	tokenLifetimeFlagName  = "token-lifetime"
	tokenLifetimeEnvKey    = "VERIFIER_REST_TOKEN_LIFETIME"
	tokenLifetimeFlagUsage = "The request object JWT lifetime as a duration, for example 5m." +
		" Defaults to 5m. " + commonEnvVarUsageText + tokenLifetimeEnvKey

	signingKeyFileFlagName  = "signing-key-file"
	signingKeyFileEnvKey    = "VERIFIER_REST_SIGNING_KEY_FILE"
	signingKeyFileFlagUsage = "The path to a PEM-encoded PKCS8 Ed25519 private key used to sign" +
		" request objects. An ephemeral key is generated when not set. " +
		commonEnvVarUsageText + signingKeyFileEnvKey

	signingKeyIDFlagName  = "signing-key-id"
	signingKeyIDEnvKey    = "VERIFIER_REST_SIGNING_KEY_ID"
	signingKeyIDFlagUsage = "The kid JOSE header placed into signed request objects. " +
		commonEnvVarUsageText + signingKeyIDEnvKey

	verifierTopicFlagName  = "verifier-event-topic"
	verifierTopicEnvKey    = "VERIFIER_REST_VERIFIER_EVENT_TOPIC"
	verifierTopicFlagUsage = "The name of the verifier event topic. " +
		commonEnvVarUsageText + verifierTopicEnvKey

	metricsProviderFlagName         = "metrics-provider-name"
	metricsProviderEnvKey           = "VERIFIER_REST_METRICS_PROVIDER_NAME"
	allowedMetricsProviderFlagUsage = "The metrics provider name (for example: 'prometheus' etc.). " +
		commonEnvVarUsageText + metricsProviderEnvKey

	promHTTPURLFlagName             = "prom-http-url"
	promHTTPURLEnvKey               = "VERIFIER_REST_PROM_HTTP_URL"
	allowedPromHTTPURLFlagNameUsage = "URL that exposes the prometheus metrics endpoint. Format: HostName:Port. " +
		commonEnvVarUsageText + promHTTPURLEnvKey

	tracingProviderFlagName  = "tracing-provider"
	tracingProviderEnvKey    = "VERIFIER_REST_TRACING_PROVIDER"
	tracingProviderFlagUsage = "The tracing provider (for example, JAEGER). " +
		commonEnvVarUsageText + tracingProviderEnvKey

	tracingServiceNameFlagName  = "tracing-service-name"
	tracingServiceNameEnvKey    = "VERIFIER_REST_TRACING_SERVICE_NAME"
	tracingServiceNameFlagUsage = "The name of the tracing service. Default: verifier-rest. " +
		commonEnvVarUsageText + tracingServiceNameEnvKey

	databaseTypeMongoDBOption = "mongodb"
	databaseTypeRedisOption   = "redis"

	defaultDataTTL            = time.Hour
	defaultTokenLifetime      = 5 * time.Minute
	defaultDatabaseName       = "verifier"
	defaultTracingServiceName = "verifier-rest"

	requestObjectRetrievalPath = "/wallet/request.jwt/{requestId}"
)

type startupParameters struct {
	hostURL             string
	hostURLExternal     string
	dbParameters        *dbParameters
	dataTTL             time.Duration
	embedMode           oidc4vp.EmbedMode
	requestURITemplate  string
	clientID            string
	clientName          string
	clientPurpose       string
	logoURI             string
	redirectURI         string
	tokenLifetime       time.Duration
	signingKeyFile      string
	signingKeyID        string
	verifierEventTopic  string
	metricsProviderName string
	promHTTPURL         string
	tracingParams       *tracingParams
	logLevel            string
}

type dbParameters struct {
	databaseType    string
	databaseURL     string
	databaseName    string
	redisMasterName string
	redisPassword   string
}

type tracingParams struct {
	exporter    tracing.SpanExporterType
	serviceName string
}

//nolint:funlen
func getStartupParameters(cmd *cobra.Command) (*startupParameters, error) {
	hostURL, err := cmdutils.GetUserSetVarFromString(cmd, hostURLFlagName, hostURLEnvKey, false)
	if err != nil {
		return nil, err
	}

	hostURLExternal, err := cmdutils.GetUserSetVarFromString(cmd, hostURLExternalFlagName,
		hostURLExternalEnvKey, false)
	if err != nil {
		return nil, err
	}

	dbParams, err := getDBParameters(cmd)
	if err != nil {
		return nil, err
	}

	dataTTL, err := getDuration(cmd, dataTTLFlagName, dataTTLEnvKey, defaultDataTTL)
	if err != nil {
		return nil, err
	}

	embedMode, err := getEmbedMode(cmd)
	if err != nil {
		return nil, err
	}

	requestURITemplate := cmdutils.GetUserSetOptionalVarFromString(cmd, requestURITemplateFlagName,
		requestURITemplateEnvKey)
	if requestURITemplate == "" {
		requestURITemplate = strings.TrimSuffix(hostURLExternal, "/") + requestObjectRetrievalPath
	}

	clientID, err := cmdutils.GetUserSetVarFromString(cmd, clientIDFlagName, clientIDEnvKey, false)
	if err != nil {
		return nil, err
	}

	clientName := cmdutils.GetUserSetOptionalVarFromString(cmd, clientNameFlagName, clientNameEnvKey)
	clientPurpose := cmdutils.GetUserSetOptionalVarFromString(cmd, clientPurposeFlagName, clientPurposeEnvKey)
	logoURI := cmdutils.GetUserSetOptionalVarFromString(cmd, logoURIFlagName, logoURIEnvKey)

	redirectURI, err := cmdutils.GetUserSetVarFromString(cmd, redirectURIFlagName, redirectURIEnvKey, false)
	if err != nil {
		return nil, err
	}

	tokenLifetime, err := getDuration(cmd, tokenLifetimeFlagName, tokenLifetimeEnvKey, defaultTokenLifetime)
	if err != nil {
		return nil, err
	}

	signingKeyFile := cmdutils.GetUserSetOptionalVarFromString(cmd, signingKeyFileFlagName, signingKeyFileEnvKey)
	signingKeyID := cmdutils.GetUserSetOptionalVarFromString(cmd, signingKeyIDFlagName, signingKeyIDEnvKey)

	verifierEventTopic := cmdutils.GetUserSetOptionalVarFromString(cmd, verifierTopicFlagName, verifierTopicEnvKey)
	if verifierEventTopic == "" {
		verifierEventTopic = spi.VerifierEventTopic
	}

	metricsProviderName := cmdutils.GetUserSetOptionalVarFromString(cmd, metricsProviderFlagName,
		metricsProviderEnvKey)

	promHTTPURL := cmdutils.GetUserSetOptionalVarFromString(cmd, promHTTPURLFlagName, promHTTPURLEnvKey)

	tracingParams, err := getTracingParams(cmd)
	if err != nil {
		return nil, err
	}

	logLevel := cmdutils.GetUserSetOptionalVarFromString(cmd, common.LogLevelFlagName, common.LogLevelEnvKey)

	return &startupParameters{
		hostURL:             hostURL,
		hostURLExternal:     hostURLExternal,
		dbParameters:        dbParams,
		dataTTL:             dataTTL,
		embedMode:           embedMode,
		requestURITemplate:  requestURITemplate,
		clientID:            clientID,
		clientName:          clientName,
		clientPurpose:       clientPurpose,
		logoURI:             logoURI,
		redirectURI:         redirectURI,
		tokenLifetime:       tokenLifetime,
		signingKeyFile:      signingKeyFile,
		signingKeyID:        signingKeyID,
		verifierEventTopic:  verifierEventTopic,
		metricsProviderName: metricsProviderName,
		promHTTPURL:         promHTTPURL,
		tracingParams:       tracingParams,
		logLevel:            logLevel,
	}, nil
}

func getDBParameters(cmd *cobra.Command) (*dbParameters, error) {
	databaseType, err := cmdutils.GetUserSetVarFromString(cmd, databaseTypeFlagName, databaseTypeEnvKey, false)
	if err != nil {
		return nil, err
	}

	databaseType = strings.ToLower(databaseType)
	if databaseType != databaseTypeMongoDBOption && databaseType != databaseTypeRedisOption {
		return nil, fmt.Errorf("unsupported database type %s, run start --help to see the available options",
			databaseType)
	}

	databaseURL, err := cmdutils.GetUserSetVarFromString(cmd, databaseURLFlagName, databaseURLEnvKey, false)
	if err != nil {
		return nil, err
	}

	databaseName := cmdutils.GetUserSetOptionalVarFromString(cmd, databaseNameFlagName, databaseNameEnvKey)
	if databaseName == "" {
		databaseName = defaultDatabaseName
	}

	redisMasterName := cmdutils.GetUserSetOptionalVarFromString(cmd, redisMasterNameFlagName, redisMasterNameEnvKey)
	redisPassword := cmdutils.GetUserSetOptionalVarFromString(cmd, redisPasswordFlagName, redisPasswordEnvKey)

	return &dbParameters{
		databaseType:    databaseType,
		databaseURL:     databaseURL,
		databaseName:    databaseName,
		redisMasterName: redisMasterName,
		redisPassword:   redisPassword,
	}, nil
}

func getEmbedMode(cmd *cobra.Command) (oidc4vp.EmbedMode, error) {
	embedMode := cmdutils.GetUserSetOptionalVarFromString(cmd, embedModeFlagName, embedModeEnvKey)

	switch oidc4vp.EmbedMode(embedMode) {
	case "":
		return oidc4vp.EmbedByReference, nil
	case oidc4vp.EmbedByValue:
		return oidc4vp.EmbedByValue, nil
	case oidc4vp.EmbedByReference:
		return oidc4vp.EmbedByReference, nil
	default:
		return "", fmt.Errorf("unsupported embed mode %s, run start --help to see the available options",
			embedMode)
	}
}

func getDuration(cmd *cobra.Command, flagName, envKey string,
	defaultDuration time.Duration) (time.Duration, error) {
	timeStr := cmdutils.GetUserSetOptionalVarFromString(cmd, flagName, envKey)
	if timeStr == "" {
		return defaultDuration, nil
	}

	duration, err := time.ParseDuration(timeStr)
	if err != nil {
		return -1, fmt.Errorf("invalid value [%s] for parameter [%s]: %w", timeStr, flagName, err)
	}

	return duration, nil
}

func getTracingParams(cmd *cobra.Command) (*tracingParams, error) {
	exporter := cmdutils.GetUserSetOptionalVarFromString(cmd, tracingProviderFlagName, tracingProviderEnvKey)

	params := &tracingParams{
		exporter:    tracing.SpanExporterType(strings.ToUpper(exporter)),
		serviceName: defaultTracingServiceName,
	}

	if serviceName := cmdutils.GetUserSetOptionalVarFromString(cmd, tracingServiceNameFlagName,
		tracingServiceNameEnvKey); serviceName != "" {
		params.serviceName = serviceName
	}

	switch params.exporter {
	case tracing.None, tracing.Jaeger, tracing.Stdout:
		return params, nil
	default:
		return nil, fmt.Errorf("unsupported tracing provider %s", params.exporter)
	}
}

func createFlags(startCmd *cobra.Command) {
	startCmd.Flags().StringP(hostURLFlagName, hostURLFlagShorthand, "", hostURLFlagUsage)
	startCmd.Flags().StringP(hostURLExternalFlagName, hostURLExternalFlagShorthand, "", hostURLExternalFlagUsage)
	startCmd.Flags().StringP(databaseTypeFlagName, databaseTypeFlagShorthand, "", databaseTypeFlagUsage)
	startCmd.Flags().StringP(databaseURLFlagName, databaseURLFlagShorthand, "", databaseURLFlagUsage)
	startCmd.Flags().StringP(databaseNameFlagName, "", "", databaseNameFlagUsage)
	startCmd.Flags().StringP(redisMasterNameFlagName, "", "", redisMasterNameFlagUsage)
	startCmd.Flags().StringP(redisPasswordFlagName, "", "", redisPasswordFlagUsage)
	startCmd.Flags().StringP(dataTTLFlagName, "", "", dataTTLFlagUsage)
	startCmd.Flags().StringP(embedModeFlagName, "", "", embedModeFlagUsage)
	startCmd.Flags().StringP(requestURITemplateFlagName, "", "", requestURITemplateFlagUsage)
	startCmd.Flags().StringP(clientIDFlagName, "", "", clientIDFlagUsage)
	startCmd.Flags().StringP(clientNameFlagName, "", "", clientNameFlagUsage)
	startCmd.Flags().StringP(clientPurposeFlagName, "", "", clientPurposeFlagUsage)
	startCmd.Flags().StringP(logoURIFlagName, "", "", logoURIFlagUsage)
	startCmd.Flags().StringP(redirectURIFlagName, "", "", redirectURIFlagUsage)
	startCmd.Flags().StringP(tokenLifetimeFlagName, "", "", tokenLifetimeFlagUsage)
	startCmd.Flags().StringP(signingKeyFileFlagName, "", "", signingKeyFileFlagUsage)
	startCmd.Flags().StringP(signingKeyIDFlagName, "", "", signingKeyIDFlagUsage)
	startCmd.Flags().StringP(verifierTopicFlagName, "", "", verifierTopicFlagUsage)
	startCmd.Flags().StringP(metricsProviderFlagName, "", "", allowedMetricsProviderFlagUsage)
	startCmd.Flags().StringP(promHTTPURLFlagName, "", "", allowedPromHTTPURLFlagNameUsage)
	startCmd.Flags().StringP(tracingProviderFlagName, "", "", tracingProviderFlagUsage)
	startCmd.Flags().StringP(tracingServiceNameFlagName, "", "", tracingServiceNameFlagUsage)
	startCmd.Flags().StringP(common.LogLevelFlagName, common.LogLevelFlagShorthand, "",
		common.LogLevelPrefixFlagUsage)
}
