// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/idrelay/idrelay/pkg/events"
)

const (
	exchangeName = "events"
	eventsPrefix = "events"
)

var _ events.Publisher = (*pubEventStore)(nil)

type pubEventStore struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	stream  string
}

func NewPublisher(_ context.Context, url, stream string) (events.Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchangeName, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, err
	}

	return &pubEventStore{
		conn:    conn,
		channel: ch,
		stream:  eventsPrefix + "." + stream,
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

	return es.channel.PublishWithContext(ctx, exchangeName, es.stream, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        data,
	})
}

func (es *pubEventStore) Close() error {
	if err := es.channel.Close(); err != nil {
		return err
	}
	return es.conn.Close()
}
