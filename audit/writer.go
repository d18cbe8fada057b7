// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/idrelay/idrelay"
)

// DefQueueSize is the default bound of the writer queue.
const DefQueueSize = 1024

// writeTimeout bounds a single store write issued by the writer.
const writeTimeout = 10 * time.Second

var _ Sink = (*writer)(nil)

type writer struct {
	repo   Repository
	idp    idrelay.IDProvider
	logger *slog.Logger
	queue  chan Entry
	once   sync.Once
	done   chan struct{}
}

// NewWriter returns a sink draining submitted entries into the
// repository on a single background goroutine. The id provider is
// expected to generate ULIDs so listings sort by occurrence time.
func NewWriter(repo Repository, idp idrelay.IDProvider, logger *slog.Logger, queueSize int) Sink {
	if queueSize <= 0 {
		queueSize = DefQueueSize
	}
	w := &writer{
		repo:   repo,
		idp:    idp,
		logger: logger,
		queue:  make(chan Entry, queueSize),
		done:   make(chan struct{}),
	}
	go w.drain()

	return w
}

func (w *writer) Submit(entry Entry) {
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now().UTC()
	}
	if entry.TTL == 0 {
		entry.TTL = DefTTL
	}

	select {
	case w.queue <- entry:
	default:
		w.logger.Warn("audit queue full, dropping entry",
			slog.String("tenant_id", entry.TenantID),
			slog.String("operation", entry.Operation),
		)
	}
}

func (w *writer) Close() {
	w.once.Do(func() {
		close(w.queue)
		<-w.done
	})
}

func (w *writer) drain() {
	defer close(w.done)
	for entry := range w.queue {
		tenantID := entry.TenantID
		entry.TenantID = ""
		if entry.ID == "" {
			if id, err := w.idp.ID(); err == nil {
				entry.ID = id
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := w.repo.Save(ctx, tenantID, entry); err != nil {
			w.logger.Warn("failed to persist audit entry",
				slog.String("tenant_id", tenantID),
				slog.String("operation", entry.Operation),
				slog.Any("error", err),
			)
		}
		cancel()
	}
}
