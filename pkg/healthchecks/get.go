/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package healthchecks assembles the liveness probes of the verifier
// endpoint's backing services.
package healthchecks

import (
	"github.com/alexliesenfeld/health"
)

// Config selects which backing services get probed.
type Config struct {
	MongoDBURL      string
	RedisAddrs      []string
	RedisMasterName string
	RedisPassword   string
}

// Get returns the health checks for the configured backing services.
func Get(config *Config) []health.Check {
	var checks []health.Check

	if config.MongoDBURL != "" {
		checks = append(checks, health.Check{
			Name:               "mongodb",
			Check:              MongoDB(config.MongoDBURL),
			MaxTimeInError:     1,
			MaxContiguousFails: 1,
		})
	}

	if len(config.RedisAddrs) > 0 {
		checks = append(checks, health.Check{
			Name:               "redis",
			Check:              Redis(config.RedisAddrs, config.RedisMasterName, config.RedisPassword),
			MaxTimeInError:     1,
			MaxContiguousFails: 1,
		})
	}

	return checks
}
