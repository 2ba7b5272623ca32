// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
)

// Resource is the HTTP face of one admin collection. The router mounts
// only the handlers that are set.
type Resource struct {
	List   http.HandlerFunc
	Create http.HandlerFunc
	Get    http.HandlerFunc
	Update http.HandlerFunc
	Delete http.HandlerFunc
}

// crud adapts service methods for a row type T, its input In and its JSON
// view V into a Resource. Nil methods leave the matching handler unset.
type crud[T, In, V any] struct {
	list   func(ctx context.Context) ([]T, error)
	get    func(ctx context.Context, id int64) (T, error)
	create func(ctx context.Context, in In) (T, error)
	update func(ctx context.Context, id int64, in In) (T, error)
	del    func(ctx context.Context, id int64) error
	view   func(T) V
}

func (c crud[T, In, V]) resource() Resource {
	var res Resource
	if c.list != nil {
		res.List = func(w http.ResponseWriter, r *http.Request) {
			items, err := c.list(r.Context())
			if err != nil {
				writeError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, newList(mapAll(items, c.view)))
		}
	}
	if c.get != nil {
		res.Get = func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r)
			if !ok {
				return
			}
			item, err := c.get(r.Context(), id)
			if err != nil {
				writeError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, c.view(item))
		}
	}
	if c.create != nil {
		res.Create = func(w http.ResponseWriter, r *http.Request) {
			var in In
			if !decodeJSON(w, r, &in) {
				return
			}
			item, err := c.create(r.Context(), in)
			if err != nil {
				writeError(w, r, err)
				return
			}
			writeJSON(w, http.StatusCreated, c.view(item))
		}
	}
	if c.update != nil {
		res.Update = func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r)
			if !ok {
				return
			}
			var in In
			if !decodeJSON(w, r, &in) {
				return
			}
			item, err := c.update(r.Context(), id, in)
			if err != nil {
				writeError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, c.view(item))
		}
	}
	if c.del != nil {
		res.Delete = func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseIDParam(w, r)
			if !ok {
				return
			}
			if err := c.del(r.Context(), id); err != nil {
				writeError(w, r, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		}
	}
	return res
}
