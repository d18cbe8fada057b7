// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/idrelay/idrelay/pkg/errors"
	repoerr "github.com/idrelay/idrelay/pkg/errors/repository"
	"github.com/idrelay/idrelay/pkg/scim"
)

type listRes struct {
	Schemas      []string      `json:"schemas"`
	Total        int           `json:"totalResults"`
	StartIndex   int           `json:"startIndex"`
	ItemsPerPage int           `json:"itemsPerPage"`
	Resources    []interface{} `json:"Resources"`
}

// MountDiscovery registers the discovery endpoints. The documents are
// static, so the routes skip authentication: identity providers probe
// ServiceProviderConfig before they have a token configured.
func MountDiscovery(mux *chi.Mux) *chi.Mux {
	mux.Route("/scim/v2", func(r chi.Router) {
		r.Get("/ServiceProviderConfig", func(w http.ResponseWriter, _ *http.Request) {
			writeDiscovery(w, scim.ProviderConfig(MaxCount))
		})

		r.Get("/ResourceTypes", func(w http.ResponseWriter, _ *http.Request) {
			writeDiscoveryList(w, resourceTypeDocs())
		})
		r.Get("/ResourceTypes/{resourceTypeID}", func(w http.ResponseWriter, req *http.Request) {
			id := chi.URLParam(req, "resourceTypeID")
			for _, rt := range scim.ResourceTypes() {
				if rt.ID == id {
					writeDiscovery(w, rt)
					return
				}
			}
			EncodeError(req.Context(), errors.Wrap(repoerr.ErrNotFound, errors.New("unknown resource type")), w)
		})

		r.Get("/Schemas", func(w http.ResponseWriter, _ *http.Request) {
			writeDiscoveryList(w, schemaDocs())
		})
		r.Get("/Schemas/{schemaID}", func(w http.ResponseWriter, req *http.Request) {
			id := chi.URLParam(req, "schemaID")
			for _, sd := range scim.SchemaDefinitions() {
				if sd.ID == id {
					writeDiscovery(w, sd)
					return
				}
			}
			EncodeError(req.Context(), errors.Wrap(repoerr.ErrNotFound, errors.New("unknown schema")), w)
		})
	})

	return mux
}

func resourceTypeDocs() []interface{} {
	types := scim.ResourceTypes()
	docs := make([]interface{}, 0, len(types))
	for _, rt := range types {
		docs = append(docs, rt)
	}
	return docs
}

func schemaDocs() []interface{} {
	defs := scim.SchemaDefinitions()
	docs := make([]interface{}, 0, len(defs))
	for _, sd := range defs {
		docs = append(docs, sd)
	}
	return docs
}

func writeDiscovery(w http.ResponseWriter, doc interface{}) {
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func writeDiscoveryList(w http.ResponseWriter, docs []interface{}) {
	writeDiscovery(w, listRes{
		Schemas:      []string{scim.SchemaListResponse},
		Total:        len(docs),
		StartIndex:   1,
		ItemsPerPage: len(docs),
		Resources:    docs,
	})
}
