// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package adapters

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/idrelay/idrelay/pkg/errors"
)

// ErrPoolClosed indicates an acquire against a disposed pool.
var ErrPoolClosed = errors.New("connection pool is closed")

const sweepInterval = time.Minute

// PoolConfig tunes the per-adapter connection pool.
type PoolConfig struct {
	MaxConnections int64         `env:"MAX_CONNECTIONS"  envDefault:"10"`
	Lifetime       time.Duration `env:"LIFETIME"         envDefault:"30m"`
	IdleTimeout    time.Duration `env:"IDLE_TIMEOUT"     envDefault:"5m"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"  envDefault:"30s"`
}

// Client is a pooled HTTP client. Age and idle time drive recycling.
type Client struct {
	*http.Client
	createdAt time.Time
	idleSince time.Time
}

func (c *Client) expired(lifetime time.Duration) bool {
	return time.Since(c.createdAt) > lifetime
}

// Stats is a point-in-time view of one adapter's pool.
type Stats struct {
	Active        int     `json:"active"`
	Idle          int     `json:"idle"`
	TotalRequests uint64  `json:"totalRequests"`
	PoolHits      uint64  `json:"poolHits"`
	TotalCreated  uint64  `json:"totalCreated"`
	Recycled      uint64  `json:"recycled"`
	HitRate       float64 `json:"hitRate"`
}

type adapterPool struct {
	sem *semaphore.Weighted

	mu            sync.Mutex
	idle          []*Client
	active        int
	totalRequests uint64
	poolHits      uint64
	totalCreated  uint64
	recycled      uint64
}

// Pool bounds per-adapter concurrency and reuses HTTP clients across
// requests. A background sweep evicts idle and expired clients.
type Pool struct {
	cfg PoolConfig

	mu     sync.Mutex
	pools  map[string]*adapterPool
	closed bool
	stop   chan struct{}
}

// NewPool returns a running pool. Close releases its resources.
func NewPool(cfg PoolConfig) *Pool {
	p := &Pool{
		cfg:   cfg,
		pools: make(map[string]*adapterPool),
		stop:  make(chan struct{}),
	}
	go p.sweep()

	return p
}

// Acquire checks a client out of the adapter's pool, waiting on the
// per-adapter semaphore. Expired idle clients are never handed out.
func (p *Pool) Acquire(ctx context.Context, adapterID string) (*Client, error) {
	ap, err := p.pool(adapterID)
	if err != nil {
		return nil, err
	}
	if err := ap.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	ap.mu.Lock()
	defer ap.mu.Unlock()
	ap.totalRequests++

	for len(ap.idle) > 0 {
		last := len(ap.idle) - 1
		client := ap.idle[last]
		ap.idle = ap.idle[:last]
		if client.expired(p.cfg.Lifetime) {
			ap.recycled++
			client.CloseIdleConnections()
			continue
		}
		ap.poolHits++
		ap.active++
		return client, nil
	}

	client := &Client{
		Client:    &http.Client{Timeout: p.cfg.RequestTimeout},
		createdAt: time.Now(),
	}
	ap.totalCreated++
	ap.active++

	return client, nil
}

// Release returns a client to the pool. Expired clients are disposed
// instead of being parked. Releasing into a closed pool is a no-op.
func (p *Pool) Release(adapterID string, client *Client) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		client.CloseIdleConnections()
		return
	}
	ap, ok := p.pools[adapterID]
	p.mu.Unlock()
	if !ok {
		client.CloseIdleConnections()
		return
	}

	ap.mu.Lock()
	ap.active--
	if client.expired(p.cfg.Lifetime) {
		ap.recycled++
		client.CloseIdleConnections()
	} else {
		client.idleSince = time.Now()
		ap.idle = append(ap.idle, client)
	}
	ap.mu.Unlock()

	ap.sem.Release(1)
}

// Stats reports the counters of one adapter's pool.
func (p *Pool) Stats(adapterID string) Stats {
	p.mu.Lock()
	ap, ok := p.pools[adapterID]
	p.mu.Unlock()
	if !ok {
		return Stats{}
	}

	ap.mu.Lock()
	defer ap.mu.Unlock()
	stats := Stats{
		Active:        ap.active,
		Idle:          len(ap.idle),
		TotalRequests: ap.totalRequests,
		PoolHits:      ap.poolHits,
		TotalCreated:  ap.totalCreated,
		Recycled:      ap.recycled,
	}
	if stats.TotalRequests > 0 {
		stats.HitRate = float64(stats.PoolHits) / float64(stats.TotalRequests)
	}

	return stats
}

// Close disposes every idle client and stops the sweeper. Clients still
// checked out are disposed when released.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.stop)
	pools := p.pools
	p.pools = make(map[string]*adapterPool)
	p.mu.Unlock()

	for _, ap := range pools {
		ap.mu.Lock()
		for _, client := range ap.idle {
			client.CloseIdleConnections()
		}
		ap.idle = nil
		ap.mu.Unlock()
	}
}

func (p *Pool) pool(adapterID string) (*adapterPool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrPoolClosed
	}
	ap, ok := p.pools[adapterID]
	if !ok {
		ap = &adapterPool{sem: semaphore.NewWeighted(p.cfg.MaxConnections)}
		p.pools[adapterID] = ap
	}

	return ap, nil
}

func (p *Pool) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			p.evict()
		}
	}
}

func (p *Pool) evict() {
	p.mu.Lock()
	pools := make([]*adapterPool, 0, len(p.pools))
	for _, ap := range p.pools {
		pools = append(pools, ap)
	}
	p.mu.Unlock()

	for _, ap := range pools {
		ap.mu.Lock()
		kept := ap.idle[:0]
		for _, client := range ap.idle {
			if client.expired(p.cfg.Lifetime) || time.Since(client.idleSince) > p.cfg.IdleTimeout {
				ap.recycled++
				client.CloseIdleConnections()
				continue
			}
			kept = append(kept, client)
		}
		ap.idle = kept
		ap.mu.Unlock()
	}
}
