// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package nats

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/idrelay/idrelay/pkg/events"
)

const maxReconnects = -1

var (
	eventsPrefix = "events"

	jsStreamConfig = jetstream.StreamConfig{
		Name:              "events",
		Description:       "IdRelay stream for provisioning and admin events",
		Subjects:          []string{"events.>"},
		Retention:         jetstream.LimitsPolicy,
		MaxMsgsPerSubject: 1e9,
		MaxAge:            time.Hour * 24,
		MaxMsgSize:        1024 * 1024,
		Discard:           jetstream.DiscardOld,
		Storage:           jetstream.FileStorage,
	}

	// ErrEmptyStream is returned when stream name is empty.
	ErrEmptyStream = errors.New("stream name cannot be empty")

	// ErrEmptyConsumer is returned when consumer name is empty.
	ErrEmptyConsumer = errors.New("consumer name cannot be empty")
)

var _ events.Publisher = (*pubEventStore)(nil)

type pubEventStore struct {
	conn   *nats.Conn
	js     jetstream.JetStream
	stream string
}

func NewPublisher(ctx context.Context, url, stream string) (events.Publisher, error) {
	if stream == "" {
		return nil, ErrEmptyStream
	}

	conn, err := nats.Connect(url, nats.MaxReconnects(maxReconnects))
	if err != nil {
		return nil, err
	}
	js, err := jetstream.New(conn)
	if err != nil {
		return nil, err
	}
	if _, err := js.CreateOrUpdateStream(ctx, jsStreamConfig); err != nil {
		return nil, err
	}

	return &pubEventStore{
		conn:   conn,
		js:     js,
		stream: eventsPrefix + "." + stream,
	}, nil
}

func (es *pubEventStore) Publish(ctx context.Context, event events.Event) error {
	values, err := event.Encode()
	if err != nil {
		return err
	}
	values["occurred_at"] = time.Now().UnixNano()

	data, err := json.Marshal(values)
	if err != nil {
		return err
	}

	_, err = es.js.Publish(ctx, es.stream, data)

	return err
}

func (es *pubEventStore) Close() error {
	es.conn.Close()
	return nil
}
