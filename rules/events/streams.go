// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package events

import (
	"context"

	"github.com/idrelay/idrelay/pkg/authn"
	"github.com/idrelay/idrelay/pkg/events"
	"github.com/idrelay/idrelay/pkg/events/store"
	"github.com/idrelay/idrelay/rules"
)

const streamID = "idrelay.rules"

var _ rules.Service = (*eventStore)(nil)

type eventStore struct {
	events.Publisher
	svc rules.Service
}

// NewEventStoreMiddleware returns a rule service wrapper that emits
// lifecycle events to the event store.
func NewEventStoreMiddleware(ctx context.Context, svc rules.Service, url string) (rules.Service, error) {
	publisher, err := store.NewPublisher(ctx, url, streamID)
	if err != nil {
		return nil, err
	}

	return &eventStore{
		Publisher: publisher,
		svc:       svc,
	}, nil
}

func (es *eventStore) CreateRule(ctx context.Context, session authn.Session, rule rules.Rule) (rules.Rule, error) {
	saved, err := es.svc.CreateRule(ctx, session, rule)
	if err != nil {
		return saved, err
	}

	event := ruleEvent{operation: ruleCreate, tenantID: session.TenantID, rule: saved}
	if err := es.Publish(ctx, event); err != nil {
		return saved, err
	}

	return saved, nil
}

func (es *eventStore) ViewRule(ctx context.Context, session authn.Session, id string) (rules.Rule, error) {
	return es.svc.ViewRule(ctx, session, id)
}

func (es *eventStore) ListRules(ctx context.Context, session authn.Session, page rules.Page) (rules.RulesPage, error) {
	return es.svc.ListRules(ctx, session, page)
}

func (es *eventStore) UpdateRule(ctx context.Context, session authn.Session, rule rules.Rule, ifMatch string) (rules.Rule, error) {
	updated, err := es.svc.UpdateRule(ctx, session, rule, ifMatch)
	if err != nil {
		return updated, err
	}

	event := ruleEvent{operation: ruleUpdate, tenantID: session.TenantID, rule: updated}
	if err := es.Publish(ctx, event); err != nil {
		return updated, err
	}

	return updated, nil
}

func (es *eventStore) DeleteRule(ctx context.Context, session authn.Session, id string, ifMatch string) error {
	if err := es.svc.DeleteRule(ctx, session, id, ifMatch); err != nil {
		return err
	}

	event := removeRuleEvent{tenantID: session.TenantID, id: id}

	return es.Publish(ctx, event)
}

func (es *eventStore) EnableRule(ctx context.Context, session authn.Session, id string) (rules.Rule, error) {
	enabled, err := es.svc.EnableRule(ctx, session, id)
	if err != nil {
		return enabled, err
	}

	event := ruleEvent{operation: ruleEnable, tenantID: session.TenantID, rule: enabled}
	if err := es.Publish(ctx, event); err != nil {
		return enabled, err
	}

	return enabled, nil
}

func (es *eventStore) DisableRule(ctx context.Context, session authn.Session, id string) (rules.Rule, error) {
	disabled, err := es.svc.DisableRule(ctx, session, id)
	if err != nil {
		return disabled, err
	}

	event := ruleEvent{operation: ruleDisable, tenantID: session.TenantID, rule: disabled}
	if err := es.Publish(ctx, event); err != nil {
		return disabled, err
	}

	return disabled, nil
}

func (es *eventStore) TestRule(ctx context.Context, session authn.Session, rule rules.Rule, inputs []string) ([]rules.TestResult, error) {
	return es.svc.TestRule(ctx, session, rule, inputs)
}

func (es *eventStore) ListEnabled(ctx context.Context, tenantID, providerID string) ([]rules.Rule, error) {
	return es.svc.ListEnabled(ctx, tenantID, providerID)
}
