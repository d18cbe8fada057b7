// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package cache holds Redis-backed snapshots of enabled transformation
// rules keyed per (tenant, provider) pair.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/idrelay/idrelay/pkg/errors"
	repoerr "github.com/idrelay/idrelay/pkg/errors/repository"
	"github.com/idrelay/idrelay/rules"
)

const keyPrefix = "rules"

var _ rules.Cache = (*rulesCache)(nil)

type rulesCache struct {
	client   *redis.Client
	duration time.Duration
}

// NewCache returns a Redis rule cache implementation. Snapshots expire
// after the given duration; mutations remove them eagerly.
func NewCache(client *redis.Client, duration time.Duration) rules.Cache {
	return &rulesCache{
		client:   client,
		duration: duration,
	}
}

func (rc *rulesCache) Save(ctx context.Context, tenantID, providerID string, snapshot []rules.Rule) error {
	if tenantID == "" || providerID == "" {
		return errors.Wrap(repoerr.ErrCreateEntity, errors.New("tenant id or provider id is empty"))
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return errors.Wrap(repoerr.ErrCreateEntity, err)
	}
	if err := rc.client.Set(ctx, key(tenantID, providerID), payload, rc.duration).Err(); err != nil {
		return errors.Wrap(repoerr.ErrCreateEntity, err)
	}

	return nil
}

func (rc *rulesCache) Get(ctx context.Context, tenantID, providerID string) ([]rules.Rule, error) {
	payload, err := rc.client.Get(ctx, key(tenantID, providerID)).Bytes()
	if err == redis.Nil {
		return nil, repoerr.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(repoerr.ErrViewEntity, err)
	}

	var snapshot []rules.Rule
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, errors.Wrap(repoerr.ErrViewEntity, err)
	}

	return snapshot, nil
}

func (rc *rulesCache) Remove(ctx context.Context, tenantID, providerID string) error {
	if err := rc.client.Del(ctx, key(tenantID, providerID)).Err(); err != nil {
		return errors.Wrap(repoerr.ErrRemoveEntity, err)
	}

	return nil
}

func key(tenantID, providerID string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, tenantID, providerID)
}
