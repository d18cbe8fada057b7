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
	"github.com/idrelay/idrelay/pkg/scim"
	"github.com/idrelay/idrelay/users"
)

func createUserEndpoint(svc users.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(createUserReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}
		session, ok := api.SessionFromContext(ctx)
		if !ok {
			return nil, svcerr.ErrAuthentication
		}

		user, err := svc.CreateUser(ctx, session, req.user)
		if err != nil {
			return nil, err
		}

		return userRes{User: user, created: true}, nil
	}
}

func viewUserEndpoint(svc users.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(viewUserReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}
		session, ok := api.SessionFromContext(ctx)
		if !ok {
			return nil, svcerr.ErrAuthentication
		}

		user, err := svc.ViewUser(ctx, session, req.id)
		if err != nil {
			return nil, err
		}

		return userRes{User: user}, nil
	}
}

func listUsersEndpoint(svc users.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(listUsersReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}
		session, ok := api.SessionFromContext(ctx)
		if !ok {
			return nil, svcerr.ErrAuthentication
		}

		page, err := svc.ListUsers(ctx, session, req.page)
		if err != nil {
			return nil, err
		}

		resources := make([]scim.Document, 0, len(page.Users))
		for _, user := range page.Users {
			doc, err := scim.ToDocument(user)
			if err != nil {
				return nil, errors.Wrap(svcerr.ErrMalformedEntity, err)
			}
			resources = append(resources, scim.Project(doc, req.attributes, req.excluded))
		}

		return listUsersRes{
			Schemas:      []string{scim.SchemaListResponse},
			TotalResults: page.Total,
			StartIndex:   page.StartIndex,
			ItemsPerPage: page.ItemsPerPage,
			Resources:    resources,
		}, nil
	}
}

func updateUserEndpoint(svc users.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(updateUserReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}
		session, ok := api.SessionFromContext(ctx)
		if !ok {
			return nil, svcerr.ErrAuthentication
		}

		req.user.ID = req.id
		user, err := svc.UpdateUser(ctx, session, req.user, req.ifMatch)
		if err != nil {
			return nil, err
		}

		return userRes{User: user}, nil
	}
}

func patchUserEndpoint(svc users.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(patchUserReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}
		session, ok := api.SessionFromContext(ctx)
		if !ok {
			return nil, svcerr.ErrAuthentication
		}

		user, err := svc.PatchUser(ctx, session, req.id, req.ops, req.ifMatch)
		if err != nil {
			return nil, err
		}

		return userRes{User: user}, nil
	}
}

func deleteUserEndpoint(svc users.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(deleteUserReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}
		session, ok := api.SessionFromContext(ctx)
		if !ok {
			return nil, svcerr.ErrAuthentication
		}

		if err := svc.DeleteUser(ctx, session, req.id, req.ifMatch); err != nil {
			return nil, err
		}

		return deleteUserRes{}, nil
	}
}
