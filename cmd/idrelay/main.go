// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package main contains the idrelay main function to start the gateway.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/idrelay/idrelay"
	"github.com/idrelay/idrelay/adapters"
	"github.com/idrelay/idrelay/audit"
	auditapi "github.com/idrelay/idrelay/audit/api"
	auditmw "github.com/idrelay/idrelay/audit/middleware"
	"github.com/idrelay/idrelay/groups"
	groupsapi "github.com/idrelay/idrelay/groups/api"
	groupsevents "github.com/idrelay/idrelay/groups/events"
	groupsmw "github.com/idrelay/idrelay/groups/middleware"
	"github.com/idrelay/idrelay/internal/api"
	irlog "github.com/idrelay/idrelay/logger"
	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/authn/jwt"
	jaegerclient "github.com/idrelay/idrelay/pkg/jaeger"
	pgclient "github.com/idrelay/idrelay/pkg/postgres"
	"github.com/idrelay/idrelay/pkg/prometheus"
	"github.com/idrelay/idrelay/pkg/secret"
	"github.com/idrelay/idrelay/pkg/secret/vault"
	"github.com/idrelay/idrelay/pkg/server"
	httpserver "github.com/idrelay/idrelay/pkg/server/http"
	"github.com/idrelay/idrelay/pkg/store"
	"github.com/idrelay/idrelay/pkg/store/memory"
	storemongo "github.com/idrelay/idrelay/pkg/store/mongodb"
	storepg "github.com/idrelay/idrelay/pkg/store/postgres"
	"github.com/idrelay/idrelay/pkg/ulid"
	"github.com/idrelay/idrelay/pkg/uuid"
	"github.com/idrelay/idrelay/providers"
	providersapi "github.com/idrelay/idrelay/providers/api"
	"github.com/idrelay/idrelay/provision"
	"github.com/idrelay/idrelay/provision/email"
	"github.com/idrelay/idrelay/rules"
	rulesapi "github.com/idrelay/idrelay/rules/api"
	rulescache "github.com/idrelay/idrelay/rules/cache"
	rulesevents "github.com/idrelay/idrelay/rules/events"
	rulesmw "github.com/idrelay/idrelay/rules/middleware"
	"github.com/idrelay/idrelay/transform"
	"github.com/idrelay/idrelay/users"
	usersapi "github.com/idrelay/idrelay/users/api"
	usersevents "github.com/idrelay/idrelay/users/events"
	usersmw "github.com/idrelay/idrelay/users/middleware"
)

const (
	svcName = "idrelay"

	envPrefixDB        = "IR_DB_"
	envPrefixMongo     = "IR_MONGO_"
	envPrefixHTTP      = "IR_HTTP_"
	envPrefixPool      = "IR_POOL_"
	envPrefixEmail     = "IR_EMAIL_"
	envPrefixVault     = "IR_VAULT_"
	envPrefixProvision = "IR_PROVISION_"
	envPrefixSecret    = "IR_SECRET_"

	defDB          = "idrelay"
	defSvcHTTPPort = "9017"
)

type config struct {
	LogLevel      string        `env:"IR_LOG_LEVEL"          envDefault:"info"`
	StoreBackend  string        `env:"IR_STORE_BACKEND"      envDefault:"postgres"`
	SecretBackend string        `env:"IR_SECRET_BACKEND"     envDefault:"env"`
	TokenSecret   string        `env:"IR_TOKEN_SECRET,notEmpty"`
	RequireMatch  bool          `env:"IR_REQUIRE_IF_MATCH"   envDefault:"false"`
	ESURL         string        `env:"IR_ES_URL"             envDefault:""`
	CacheURL      string        `env:"IR_CACHE_URL"          envDefault:"redis://localhost:6379/0"`
	CacheTTL      time.Duration `env:"IR_CACHE_TTL"          envDefault:"10m"`
	EmailTo       string        `env:"IR_EMAIL_TO"           envDefault:""`
	AuditQueue    int           `env:"IR_AUDIT_QUEUE_SIZE"   envDefault:"1024"`
	JaegerURL     url.URL       `env:"IR_JAEGER_URL"         envDefault:"http://localhost:4318/v1/traces"`
	TraceRatio    float64       `env:"IR_JAEGER_TRACE_RATIO" envDefault:"1.0"`
	InstanceID    string        `env:"IR_INSTANCE_ID"        envDefault:""`
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)

	cfg := config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to load %s configuration : %s", svcName, err)
	}

	logger, err := irlog.New(os.Stdout, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %s", err)
	}

	var exitCode int
	defer irlog.ExitWithError(&exitCode)

	if cfg.InstanceID == "" {
		if cfg.InstanceID, err = uuid.New().ID(); err != nil {
			logger.Error(fmt.Sprintf("failed to generate instanceID: %s", err))
			exitCode = 1
			return
		}
	}

	tp, err := jaegerclient.NewProvider(ctx, svcName, cfg.JaegerURL, cfg.InstanceID, cfg.TraceRatio)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to init Jaeger: %s", err))
		exitCode = 1
		return
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("error shutting down tracer provider: %s", err))
		}
	}()
	tracer := tp.Tracer(svcName)

	st, closeStore, err := setupStore(ctx, cfg.StoreBackend, tracer)
	if err != nil {
		logger.Error(err.Error())
		exitCode = 1
		return
	}
	defer closeStore()

	secrets, err := setupSecrets(cfg.SecretBackend)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to configure secret backend: %s", err))
		exitCode = 1
		return
	}

	poolCfg := adapters.PoolConfig{}
	if err := env.ParseWithOptions(&poolCfg, env.Options{Prefix: envPrefixPool}); err != nil {
		logger.Error(fmt.Sprintf("failed to load connection pool configuration : %s", err))
		exitCode = 1
		return
	}
	pool := adapters.NewPool(poolCfg)
	defer pool.Close()

	provCfg := provision.Config{}
	if err := env.ParseWithOptions(&provCfg, env.Options{Prefix: envPrefixProvision}); err != nil {
		logger.Error(fmt.Sprintf("failed to load provisioning configuration : %s", err))
		exitCode = 1
		return
	}
	provCfg, err = provision.Read(provCfg, provCfg.File)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to read provisioning config file : %s", err))
		exitCode = 1
		return
	}
	registry, err := provision.Bootstrap(provCfg, pool, secrets)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to bootstrap provider registry : %s", err))
		exitCode = 1
		return
	}

	notifier, err := setupNotifier(cfg, logger)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to configure email notifier : %s", err))
		exitCode = 1
		return
	}

	redisOpts, err := redis.ParseURL(cfg.CacheURL)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to parse cache URL : %s", err))
		exitCode = 1
		return
	}
	cacheClient := redis.NewClient(redisOpts)
	defer cacheClient.Close()

	idp := uuid.New()

	auditRepo := audit.NewRepository(st)
	auditSvc := audit.NewService(auditRepo)
	sink := audit.NewWriter(auditRepo, ulid.New(), logger, cfg.AuditQueue)
	defer sink.Close()

	// The rule service tests rules through the engine, the engine reads
	// enabled rules through the rule service and records conflicts through
	// the orchestrator. Function adapters defer the two lookups until the
	// services exist.
	var rulesSvc rules.Service
	var provisionSvc provision.Service

	engine := transform.NewEngine(
		transform.SourceFunc(func(ctx context.Context, tenantID, providerID string) ([]rules.Rule, error) {
			return rulesSvc.ListEnabled(ctx, tenantID, providerID)
		}),
		transform.SinkFunc(func(ctx context.Context, conflict transform.Conflict) error {
			return provisionSvc.RecordConflict(ctx, conflict)
		}),
		logger,
	)

	rulesSvc = rules.NewService(rules.NewRepository(st), rulescache.NewCache(cacheClient, cfg.CacheTTL), engine, idp)
	if cfg.ESURL != "" {
		rulesSvc, err = rulesevents.NewEventStoreMiddleware(ctx, rulesSvc, cfg.ESURL)
		if err != nil {
			logger.Error(fmt.Sprintf("failed to init rules event store middleware : %s", err))
			exitCode = 1
			return
		}
	}
	rulesSvc = rulesmw.LoggingMiddleware(rulesSvc, logger)
	counter, latency := prometheus.MakeMetrics(svcName, "rules")
	rulesSvc = rulesmw.MetricsMiddleware(rulesSvc, counter, latency)

	provisionSvc = provision.NewService(provCfg, registry, engine, provision.NewRepository(st), notifier, idp, logger)

	providersSvc := providers.NewService(registry, pool)

	usersSvc := users.NewService(users.NewRepository(st), idp)
	usersSvc = auditmw.UsersMiddleware(usersSvc, sink)
	usersSvc = provision.UsersMiddleware(usersSvc, provisionSvc)
	if cfg.ESURL != "" {
		usersSvc, err = usersevents.NewEventStoreMiddleware(ctx, usersSvc, cfg.ESURL)
		if err != nil {
			logger.Error(fmt.Sprintf("failed to init users event store middleware : %s", err))
			exitCode = 1
			return
		}
	}
	usersSvc = usersmw.LoggingMiddleware(usersSvc, logger)
	counter, latency = prometheus.MakeMetrics(svcName, "users")
	usersSvc = usersmw.MetricsMiddleware(usersSvc, counter, latency)

	groupsSvc := groups.NewService(groups.NewRepository(st), idp)
	groupsSvc = auditmw.GroupsMiddleware(groupsSvc, sink)
	groupsSvc = provision.GroupsMiddleware(groupsSvc, provisionSvc)
	if cfg.ESURL != "" {
		groupsSvc, err = groupsevents.NewEventStoreMiddleware(ctx, groupsSvc, cfg.ESURL)
		if err != nil {
			logger.Error(fmt.Sprintf("failed to init groups event store middleware : %s", err))
			exitCode = 1
			return
		}
	}
	groupsSvc = groupsmw.LoggingMiddleware(groupsSvc, logger)
	counter, latency = prometheus.MakeMetrics(svcName, "groups")
	groupsSvc = groupsmw.MetricsMiddleware(groupsSvc, counter, latency)

	authenticator := jwt.New([]byte(cfg.TokenSecret))

	mux := newHandler(cfg, usersSvc, groupsSvc, rulesSvc, auditSvc, providersSvc, provisionSvc, authenticator, logger)

	httpServerConfig := server.Config{Port: defSvcHTTPPort}
	if err := env.ParseWithOptions(&httpServerConfig, env.Options{Prefix: envPrefixHTTP}); err != nil {
		logger.Error(fmt.Sprintf("failed to load %s HTTP server configuration : %s", svcName, err))
		exitCode = 1
		return
	}
	hs := httpserver.NewServer(ctx, cancel, svcName, httpServerConfig, mux, logger)

	g.Go(func() error {
		return hs.Start()
	})

	g.Go(func() error {
		return server.StopSignalHandler(ctx, cancel, logger, svcName, hs)
	})

	if err := g.Wait(); err != nil {
		logger.Error(fmt.Sprintf("%s service terminated: %s", svcName, err))
	}
}

func newHandler(cfg config, usersSvc users.Service, groupsSvc groups.Service, rulesSvc rules.Service, auditSvc audit.Service, providersSvc providers.Service, provisionSvc provision.Service, authenticator authn.Authentication, logger *slog.Logger) *chi.Mux {
	mux := chi.NewRouter()
	if cfg.RequireMatch {
		mux.Use(api.RequireIfMatch)
	}
	mux = usersapi.MakeHandler(usersSvc, authenticator, mux, logger)
	mux = groupsapi.MakeHandler(groupsSvc, authenticator, mux, logger)
	mux = rulesapi.MakeHandler(rulesSvc, authenticator, mux, logger)
	mux = auditapi.MakeHandler(auditSvc, authenticator, mux, logger)
	mux = providersapi.MakeHandler(providersSvc, provisionSvc, authenticator, mux, logger)
	mux = api.MountDiscovery(mux)
	mux.Get("/health", idrelay.Health(svcName, cfg.InstanceID))
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

func setupStore(ctx context.Context, backend string, tracer trace.Tracer) (store.Store, func(), error) {
	switch backend {
	case "postgres":
		dbConfig := pgclient.Config{Name: defDB}
		if err := env.ParseWithOptions(&dbConfig, env.Options{Prefix: envPrefixDB}); err != nil {
			return nil, nil, err
		}
		db, err := pgclient.Setup(dbConfig, storepg.Migration())
		if err != nil {
			return nil, nil, err
		}
		database := pgclient.NewDatabase(db, dbConfig, tracer)

		return storepg.NewStore(database), func() { db.Close() }, nil
	case "mongodb":
		mongoConfig := storemongo.Config{}
		if err := env.ParseWithOptions(&mongoConfig, env.Options{Prefix: envPrefixMongo}); err != nil {
			return nil, nil, err
		}
		db, err := storemongo.Connect(ctx, mongoConfig)
		if err != nil {
			return nil, nil, err
		}

		return storemongo.NewStore(db), func() {}, nil
	case "memory":
		return memory.New(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

func setupSecrets(backend string) (secret.Provider, error) {
	switch backend {
	case "vault":
		vaultCfg := vault.Config{}
		if err := env.ParseWithOptions(&vaultCfg, env.Options{Prefix: envPrefixVault}); err != nil {
			return nil, err
		}

		return vault.New(vaultCfg)
	case "env":
		return secret.NewEnv(envPrefixSecret), nil
	default:
		return nil, fmt.Errorf("unknown secret backend %q", backend)
	}
}

// setupNotifier returns nil when no recipients are configured, which
// disables conflict notifications.
func setupNotifier(cfg config, logger *slog.Logger) (provision.Notifier, error) {
	if cfg.EmailTo == "" {
		logger.Info("no notification recipients configured, conflict emails disabled")
		return nil, nil
	}

	emailCfg := email.Config{}
	if err := env.ParseWithOptions(&emailCfg, env.Options{Prefix: envPrefixEmail}); err != nil {
		return nil, err
	}
	agent, err := email.New(&emailCfg)
	if err != nil {
		return nil, err
	}

	return email.NewNotifier(agent, strings.Split(cfg.EmailTo, ",")), nil
}
