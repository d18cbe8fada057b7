// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/idrelay/idrelay/pkg/errors"
)

// maxErrBody caps how much of a provider error body is read.
const maxErrBody = 64 * 1024

// Request describes one provider HTTP call.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   interface{}
}

// Do executes req with a client leased from the pool. A 2xx JSON body
// is decoded into out when out is non-nil; other statuses are handed to
// translate together with the response body.
func Do(ctx context.Context, pool *Pool, adapterID string, req Request, out interface{}, translate func(status int, body []byte) *Error) error {
	client, err := pool.Acquire(ctx, adapterID)
	if err != nil {
		return err
	}
	defer pool.Release(adapterID, client)

	var reader io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return errors.Wrap(errors.ErrMalformedEntity, err)
		}
		reader = bytes.NewReader(data)
	}

	hreq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, reader)
	if err != nil {
		return err
	}
	for key, vals := range req.Header {
		for _, val := range vals {
			hreq.Header.Add(key, val)
		}
	}
	if req.Body != nil && hreq.Header.Get("Content-Type") == "" {
		hreq.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(hreq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
		return translate(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
