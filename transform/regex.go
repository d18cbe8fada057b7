// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package transform

import (
	"context"
	"regexp"
	"sync"
	"time"

	"github.com/idrelay/idrelay/pkg/errors"
	"github.com/idrelay/idrelay/rules"
)

// maxCachedPatterns bounds the process-wide regex cache. Patterns are
// admin-authored, so the set stays small; the bound guards against a
// misbehaving tenant cycling through generated patterns.
const maxCachedPatterns = 1024

// ErrMatchTimeout indicates a regex match that exceeded the hard limit.
var ErrMatchTimeout = errors.New("regex match timed out")

// regexCache is a lazily populated pattern cache. Entries are never
// expired.
type regexCache struct {
	mu       sync.RWMutex
	compiled map[string]*regexp.Regexp
}

func newRegexCache() *regexCache {
	return &regexCache{compiled: make(map[string]*regexp.Regexp)}
}

func (rc *regexCache) get(pattern string) (*regexp.Regexp, error) {
	rc.mu.RLock()
	re, ok := rc.compiled[pattern]
	rc.mu.RUnlock()
	if ok {
		return re, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrap(rules.ErrInvalidRegex, err)
	}

	rc.mu.Lock()
	if len(rc.compiled) < maxCachedPatterns {
		rc.compiled[pattern] = re
	}
	rc.mu.Unlock()

	return re, nil
}

// matchTimed runs a submatch extraction under the engine's hard match
// timeout. Go's regexp engine is linear-time, so the timeout is a
// backstop for very large inputs rather than for backtracking blowups.
func matchTimed(ctx context.Context, re *regexp.Regexp, input string, timeout time.Duration) ([]string, error) {
	type result struct {
		captures []string
	}
	done := make(chan result, 1)
	go func() {
		done <- result{captures: re.FindStringSubmatch(input)}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-done:
		return res.captures, nil
	case <-timer.C:
		return nil, ErrMatchTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
