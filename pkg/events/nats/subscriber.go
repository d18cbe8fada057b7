// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package nats

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/idrelay/idrelay/pkg/events"
)

var _ events.Subscriber = (*subEventStore)(nil)

type subEventStore struct {
	conn   *nats.Conn
	js     jetstream.JetStream
	logger *slog.Logger
}

func NewSubscriber(ctx context.Context, url string, logger *slog.Logger) (events.Subscriber, error) {
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

	return &subEventStore{
		conn:   conn,
		js:     js,
		logger: logger,
	}, nil
}

func (es *subEventStore) Subscribe(ctx context.Context, cfg events.SubscriberConfig) error {
	if cfg.Stream == "" {
		return ErrEmptyStream
	}
	if cfg.Consumer == "" {
		return ErrEmptyConsumer
	}

	stream, err := es.js.Stream(ctx, jsStreamConfig.Name)
	if err != nil {
		return err
	}
	consumer, err := stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Durable:       cfg.Consumer,
		FilterSubject: eventsPrefix + "." + cfg.Stream,
		DeliverPolicy: jetstream.DeliverNewPolicy,
	})
	if err != nil {
		return err
	}

	_, err = consumer.Consume(func(msg jetstream.Msg) {
		event := natsEvent{}
		if err := json.Unmarshal(msg.Data(), &event.data); err != nil {
			es.logger.Warn("failed to unmarshal received event", slog.Any("error", err))
			if err := msg.Nak(); err != nil {
				es.logger.Warn("failed to nack event", slog.Any("error", err))
			}
			return
		}

		if err := cfg.Handler.Handle(ctx, event); err != nil {
			es.logger.Warn("failed to handle event", slog.Any("error", err))
			if err := msg.Nak(); err != nil {
				es.logger.Warn("failed to nack event", slog.Any("error", err))
			}
			return
		}
		if err := msg.Ack(); err != nil {
			es.logger.Warn("failed to ack event", slog.Any("error", err))
		}
	})

	return err
}

func (es *subEventStore) Close() error {
	es.conn.Close()
	return nil
}

type natsEvent struct {
	data map[string]interface{}
}

func (ne natsEvent) Encode() (map[string]interface{}, error) {
	return ne.data, nil
}
