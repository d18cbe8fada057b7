// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package adapters_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idrelay/idrelay/adapters"
)

const adapterID = "tenant-1/salesforce"

func newPool(maxConns int64) *adapters.Pool {
	return adapters.NewPool(adapters.PoolConfig{
		MaxConnections: maxConns,
		Lifetime:       time.Hour,
		IdleTimeout:    time.Hour,
		RequestTimeout: time.Second,
	})
}

func TestPoolReusesIdleClients(t *testing.T) {
	pool := newPool(2)
	defer pool.Close()

	client, err := pool.Acquire(context.Background(), adapterID)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	pool.Release(adapterID, client)

	again, err := pool.Acquire(context.Background(), adapterID)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Same(t, client, again)

	stats := pool.Stats(adapterID)
	assert.Equal(t, uint64(2), stats.TotalRequests)
	assert.Equal(t, uint64(1), stats.PoolHits)
	assert.Equal(t, uint64(1), stats.TotalCreated)
	assert.Equal(t, 0.5, stats.HitRate)
}

func TestPoolBoundsConcurrency(t *testing.T) {
	pool := newPool(1)
	defer pool.Close()

	client, err := pool.Acquire(context.Background(), adapterID)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = pool.Acquire(ctx, adapterID)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	pool.Release(adapterID, client)
	again, err := pool.Acquire(context.Background(), adapterID)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	pool.Release(adapterID, again)
}

func TestPoolRecyclesExpiredClients(t *testing.T) {
	pool := adapters.NewPool(adapters.PoolConfig{
		MaxConnections: 1,
		Lifetime:       time.Nanosecond,
		IdleTimeout:    time.Hour,
		RequestTimeout: time.Second,
	})
	defer pool.Close()

	client, err := pool.Acquire(context.Background(), adapterID)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	time.Sleep(time.Millisecond)
	pool.Release(adapterID, client)

	stats := pool.Stats(adapterID)
	assert.Equal(t, uint64(1), stats.Recycled)
	assert.Equal(t, 0, stats.Idle)
}

func TestPoolClose(t *testing.T) {
	pool := newPool(1)

	client, err := pool.Acquire(context.Background(), adapterID)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	pool.Close()

	// Returning into a closed pool is a no-op.
	pool.Release(adapterID, client)

	_, err = pool.Acquire(context.Background(), adapterID)
	assert.ErrorIs(t, err, adapters.ErrPoolClosed)
}

func TestPoolStatsUnknownAdapter(t *testing.T) {
	pool := newPool(1)
	defer pool.Close()

	assert.Equal(t, adapters.Stats{}, pool.Stats("missing"))
}
