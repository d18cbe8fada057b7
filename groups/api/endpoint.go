// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/idrelay/idrelay/groups"
	"github.com/idrelay/idrelay/internal/api"
	"github.com/idrelay/idrelay/pkg/apiutil"
	"github.com/idrelay/idrelay/pkg/errors"
	svcerr "github.com/idrelay/idrelay/pkg/errors/service"
	"github.com/idrelay/idrelay/pkg/scim"
)

func createGroupEndpoint(svc groups.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(createGroupReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}
		session, ok := api.SessionFromContext(ctx)
		if !ok {
			return nil, svcerr.ErrAuthentication
		}

		group, err := svc.CreateGroup(ctx, session, req.group)
		if err != nil {
			return nil, err
		}

		return groupRes{Group: group, created: true}, nil
	}
}

func viewGroupEndpoint(svc groups.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(viewGroupReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}
		session, ok := api.SessionFromContext(ctx)
		if !ok {
			return nil, svcerr.ErrAuthentication
		}

		group, err := svc.ViewGroup(ctx, session, req.id)
		if err != nil {
			return nil, err
		}

		return groupRes{Group: group}, nil
	}
}

func listGroupsEndpoint(svc groups.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(listGroupsReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}
		session, ok := api.SessionFromContext(ctx)
		if !ok {
			return nil, svcerr.ErrAuthentication
		}

		page, err := svc.ListGroups(ctx, session, req.page)
		if err != nil {
			return nil, err
		}

		resources := make([]scim.Document, 0, len(page.Groups))
		for _, group := range page.Groups {
			doc, err := scim.ToDocument(group)
			if err != nil {
				return nil, errors.Wrap(svcerr.ErrMalformedEntity, err)
			}
			resources = append(resources, scim.Project(doc, req.attributes, req.excluded))
		}

		return listGroupsRes{
			Schemas:      []string{scim.SchemaListResponse},
			TotalResults: page.Total,
			StartIndex:   page.StartIndex,
			ItemsPerPage: page.ItemsPerPage,
			Resources:    resources,
		}, nil
	}
}

func updateGroupEndpoint(svc groups.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(updateGroupReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}
		session, ok := api.SessionFromContext(ctx)
		if !ok {
			return nil, svcerr.ErrAuthentication
		}

		req.group.ID = req.id
		group, err := svc.UpdateGroup(ctx, session, req.group, req.ifMatch)
		if err != nil {
			return nil, err
		}

		return groupRes{Group: group}, nil
	}
}

func patchGroupEndpoint(svc groups.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(patchGroupReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}
		session, ok := api.SessionFromContext(ctx)
		if !ok {
			return nil, svcerr.ErrAuthentication
		}

		group, err := svc.PatchGroup(ctx, session, req.id, req.ops, req.ifMatch)
		if err != nil {
			return nil, err
		}

		return groupRes{Group: group}, nil
	}
}

func deleteGroupEndpoint(svc groups.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(deleteGroupReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}
		session, ok := api.SessionFromContext(ctx)
		if !ok {
			return nil, svcerr.ErrAuthentication
		}

		if err := svc.DeleteGroup(ctx, session, req.id, req.ifMatch); err != nil {
			return nil, err
		}

		return deleteGroupRes{}, nil
	}
}
