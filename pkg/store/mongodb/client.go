// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/idrelay/idrelay/pkg/errors"
)

var errConnect = errors.New("failed to connect to mongodb server")

// Config defines the options that are used when connecting to a MongoDB instance.
type Config struct {
	Host    string        `env:"HOST"    envDefault:"localhost"`
	Port    string        `env:"PORT"    envDefault:"27017"`
	Name    string        `env:"NAME"    envDefault:"idrelay"`
	User    string        `env:"USER"    envDefault:""`
	Pass    string        `env:"PASS"    envDefault:""`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// Connect creates a connection to the MongoDB instance and verifies it
// with a ping.
func Connect(ctx context.Context, cfg Config) (*mongo.Database, error) {
	uri := fmt.Sprintf("mongodb://%s:%s", cfg.Host, cfg.Port)
	opts := options.Client().ApplyURI(uri).SetConnectTimeout(cfg.Timeout)
	if cfg.User != "" {
		opts = opts.SetAuth(options.Credential{Username: cfg.User, Password: cfg.Pass})
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(errConnect, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(errConnect, err)
	}

	return client.Database(cfg.Name), nil
}
