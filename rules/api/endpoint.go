// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/idrelay/idrelay/internal/api"
	"github.com/idrelay/idrelay/pkg/apiutil"
	"github.com/idrelay/idrelay/pkg/errors"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	"github.com/idrelay/idrelay/rules"
)

func createRuleEndpoint(svc rules.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(createRuleReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}
		session, ok := api.SessionFromContext(ctx)
		if !ok {
			return nil, svcerr.ErrAuthentication
		}

		rule, err := svc.CreateRule(ctx, session, req.rule)
		if err != nil {
			return nil, err
		}

		return ruleRes{Rule: rule, created: true}, nil
	}
}

func viewRuleEndpoint(svc rules.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(viewRuleReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}
		session, ok := api.SessionFromContext(ctx)
		if !ok {
			return nil, svcerr.ErrAuthentication
		}

		rule, err := svc.ViewRule(ctx, session, req.id)
		if err != nil {
			return nil, err
		}

		return ruleRes{Rule: rule}, nil
	}
}

func listRulesEndpoint(svc rules.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(listRulesReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}
		session, ok := api.SessionFromContext(ctx)
		if !ok {
			return nil, svcerr.ErrAuthentication
		}

		page, err := svc.ListRules(ctx, session, req.page)
		if err != nil {
			return nil, err
		}

		return listRulesRes{RulesPage: page}, nil
	}
}

func updateRuleEndpoint(svc rules.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(updateRuleReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}
		session, ok := api.SessionFromContext(ctx)
		if !ok {
			return nil, svcerr.ErrAuthentication
		}

		req.rule.ID = req.id
		rule, err := svc.UpdateRule(ctx, session, req.rule, req.ifMatch)
		if err != nil {
			return nil, err
		}

		return ruleRes{Rule: rule}, nil
	}
}

func deleteRuleEndpoint(svc rules.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(deleteRuleReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}
		session, ok := api.SessionFromContext(ctx)
		if !ok {
			return nil, svcerr.ErrAuthentication
		}

		if err := svc.DeleteRule(ctx, session, req.id, req.ifMatch); err != nil {
			return nil, err
		}

		return deleteRuleRes{}, nil
	}
}

func changeRuleStateEndpoint(svc rules.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(changeRuleStateReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}
		session, ok := api.SessionFromContext(ctx)
		if !ok {
			return nil, svcerr.ErrAuthentication
		}

		var rule rules.Rule
		var err error
		if req.enabled {
			rule, err = svc.EnableRule(ctx, session, req.id)
		} else {
			rule, err = svc.DisableRule(ctx, session, req.id)
		}
		if err != nil {
			return nil, err
		}

		return ruleRes{Rule: rule}, nil
	}
}

func testRuleEndpoint(svc rules.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(testRuleReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}
		session, ok := api.SessionFromContext(ctx)
		if !ok {
			return nil, svcerr.ErrAuthentication
		}

		results, err := svc.TestRule(ctx, session, req.rule, req.inputs)
		if err != nil {
			return nil, err
		}

		return testRuleRes{Results: results}, nil
	}
}
