/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package healthchecks_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openvp/verifier-endpoint/pkg/healthchecks"
)

func TestGet(t *testing.T) {
	require.Empty(t, healthchecks.Get(&healthchecks.Config{}))

	checks := healthchecks.Get(&healthchecks.Config{
		MongoDBURL: "mongodb://mongodb.example.com:27017",
	})
	require.Len(t, checks, 1)
	require.Equal(t, "mongodb", checks[0].Name)

	checks = healthchecks.Get(&healthchecks.Config{
		RedisAddrs: []string{"redis.example.com:6379"},
	})
	require.Len(t, checks, 1)
	require.Equal(t, "redis", checks[0].Name)
}
