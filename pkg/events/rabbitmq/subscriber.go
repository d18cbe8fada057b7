// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/idrelay/idrelay/pkg/events"
)

var (
	// ErrEmptyStream is returned when stream name is empty.
	ErrEmptyStream = errors.New("stream name cannot be empty")

	// ErrEmptyConsumer is returned when consumer name is empty.
	ErrEmptyConsumer = errors.New("consumer name cannot be empty")
)

var _ events.Subscriber = (*subEventStore)(nil)

type subEventStore struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger
}

func NewSubscriber(url string, logger *slog.Logger) (events.Subscriber, error) {
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

	return &subEventStore{
		conn:    conn,
		channel: ch,
		logger:  logger,
	}, nil
}

func (es *subEventStore) Subscribe(ctx context.Context, cfg events.SubscriberConfig) error {
	if cfg.Stream == "" {
		return ErrEmptyStream
	}
	if cfg.Consumer == "" {
		return ErrEmptyConsumer
	}

	queue, err := es.channel.QueueDeclare(cfg.Consumer, true, false, false, false, nil)
	if err != nil {
		return err
	}
	subject := eventsPrefix + "." + cfg.Stream
	if err := es.channel.QueueBind(queue.Name, subject, exchangeName, false, nil); err != nil {
		return err
	}

	msgs, err := es.channel.Consume(queue.Name, cfg.Consumer, false, false, false, false, nil)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				es.handle(ctx, msg, cfg.Handler)
			}
		}
	}()

	return nil
}

func (es *subEventStore) handle(ctx context.Context, msg amqp.Delivery, handler events.EventHandler) {
	event := rabbitmqEvent{}
	if err := json.Unmarshal(msg.Body, &event.data); err != nil {
		es.logger.Warn("failed to unmarshal received event", slog.Any("error", err))
		if err := msg.Nack(false, false); err != nil {
			es.logger.Warn("failed to nack event", slog.Any("error", err))
		}
		return
	}

	if err := handler.Handle(ctx, event); err != nil {
		es.logger.Warn("failed to handle event", slog.Any("error", err))
		if err := msg.Nack(false, true); err != nil {
			es.logger.Warn("failed to nack event", slog.Any("error", err))
		}
		return
	}
	if err := msg.Ack(false); err != nil {
		es.logger.Warn("failed to ack event", slog.Any("error", err))
	}
}

func (es *subEventStore) Close() error {
	if err := es.channel.Close(); err != nil {
		return err
	}
	return es.conn.Close()
}

type rabbitmqEvent struct {
	data map[string]interface{}
}

func (re rabbitmqEvent) Encode() (map[string]interface{}, error) {
	return re.data, nil
}
