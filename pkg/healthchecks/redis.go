/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package healthchecks

import (
	"context"
	"fmt"

	redisapi "github.com/redis/go-redis/v9"
)

// Redis returns a health check that pings the given Redis deployment.
func Redis(addrs []string, masterName, password string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		client := redisapi.NewUniversalClient(&redisapi.UniversalOptions{
			Addrs:      addrs,
			MasterName: masterName,
			Password:   password,
		})

		defer func() {
			_ = client.Close()
		}()

		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to ping redis: %w", err)
		}

		return nil
	}
}
