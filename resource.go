package main

// resource.go is the CRUD surface shared by every content type

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"gorm.io/gorm"
)

// Kind decides which operations a resource exposes and what create means.
type Kind int

const (
	// KindList resources hold many rows addressed by id.
	KindList Kind = iota
	// KindSingleton resources hold at most one row; create replaces it.
	KindSingleton
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// Resource serves one table. T is the stored row, C the create payload and
// U the update payload.
type Resource[T any, C createPayload[T], U updatePayload[T]] struct {
	Name     string // cache namespace and log label, e.g. "projects"
	Path     string // e.g. "/api/projects"
	Kind     Kind
	Label    string // e.g. "Project", used in delete confirmations
	NotFound string // e.g. "Project not found"
	Conflict string // e.g. "Blog post with this slug already exists"

	store *Store[T]
	cache *responseCache
}

func newResource[T any, C createPayload[T], U updatePayload[T]](db *gorm.DB, rc *responseCache, r Resource[T, C, U]) *Resource[T, C, U] {
	r.store = NewStore[T](db)
	r.cache = rc
	if r.Conflict == "" {
		r.Conflict = r.Label + " already exists"
	}
	return &r
}

// Register mounts the resource's routes on mux.
func (res *Resource[T, C, U]) Register(mux *http.ServeMux) {
	switch res.Kind {
	case KindList:
		mux.HandleFunc("GET "+res.Path, res.List)
		mux.HandleFunc("POST "+res.Path, res.Create)
		mux.HandleFunc("GET "+res.Path+"/{id}", res.Get)
		mux.HandleFunc("PUT "+res.Path+"/{id}", res.Update)
		mux.HandleFunc("DELETE "+res.Path+"/{id}", res.Delete)
	case KindSingleton:
		mux.HandleFunc("GET "+res.Path, res.Get)
		mux.HandleFunc("POST "+res.Path, res.Create)
		mux.HandleFunc("PUT "+res.Path, res.Update)
	}
}

// List handles GET <path>?skip=&limit=
func (res *Resource[T, C, U]) List(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	limit, err := queryInt(r, "limit", defaultLimit)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	key := fmt.Sprintf("%s?skip=%d&limit=%d", res.Name, skip, limit)
	data, err := res.cache.getCachedData(res.Name, key, func() (interface{}, error) {
		return res.store.List(r.Context(), skip, limit)
	})
	if err != nil {
		res.writeStoreError(w, "list", err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// Get handles GET <path>/{id} and, for singletons, GET <path>
func (res *Resource[T, C, U]) Get(w http.ResponseWriter, r *http.Request) {
	key := res.Name
	fetch := func() (interface{}, error) { return res.store.First(r.Context()) }

	if res.Kind == KindList {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		key = fmt.Sprintf("%s/%d", res.Name, id)
		fetch = func() (interface{}, error) { return res.store.GetByID(r.Context(), id) }
	}

	data, err := res.cache.getCachedData(res.Name, key, fetch)
	if err != nil {
		res.writeStoreError(w, "get", err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// Create handles POST <path>. Singletons replace whatever row exists.
func (res *Resource[T, C, U]) Create(w http.ResponseWriter, r *http.Request) {
	var in C
	if err := decodePayload(r, &in); err != nil {
		writePayloadError(w, err)
		return
	}

	row := in.model()
	var err error
	if res.Kind == KindSingleton {
		err = res.store.Replace(r.Context(), &row)
	} else {
		err = res.store.Insert(r.Context(), &row)
	}
	if err != nil {
		res.writeStoreError(w, "create", err)
		return
	}
	res.cache.invalidate(res.Name)

	slog.Info("record created", "resource", res.Name)
	writeJSON(w, http.StatusOK, row)
}

// Update handles PUT <path>/{id} and, for singletons, PUT <path>. Only the
// fields present in the body change.
func (res *Resource[T, C, U]) Update(w http.ResponseWriter, r *http.Request) {
	var id uint
	if res.Kind == KindList {
		var ok bool
		if id, ok = pathID(w, r); !ok {
			return
		}
	}

	var in U
	if err := decodePayload(r, &in); err != nil {
		writePayloadError(w, err)
		return
	}

	row, err := res.lookup(r.Context(), id)
	if err != nil {
		res.writeStoreError(w, "update", err)
		return
	}
	if err := res.store.UpdateFields(r.Context(), &row, func(t *T) { in.apply(t) }); err != nil {
		res.writeStoreError(w, "update", err)
		return
	}
	res.cache.invalidate(res.Name)

	slog.Info("record updated", "resource", res.Name)
	writeJSON(w, http.StatusOK, row)
}

// Delete handles DELETE <path>/{id}
func (res *Resource[T, C, U]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	deleted, err := res.store.DeleteByID(r.Context(), id)
	if err != nil {
		res.writeStoreError(w, "delete", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, res.NotFound)
		return
	}
	res.cache.invalidate(res.Name)

	slog.Info("record deleted", "resource", res.Name, "id", id)
	writeJSON(w, http.StatusOK, MessageResponse{Message: res.Label + " deleted successfully"})
}

func (res *Resource[T, C, U]) lookup(ctx context.Context, id uint) (T, error) {
	if res.Kind == KindSingleton {
		return res.store.First(ctx)
	}
	return res.store.GetByID(ctx, id)
}

func (res *Resource[T, C, U]) writeStoreError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, res.NotFound)
	case errors.Is(err, ErrDuplicate):
		writeError(w, http.StatusConflict, res.Conflict)
	default:
		slog.Error("storage failure", "resource", res.Name, "op", op, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// pathID parses {id}, writing a 422 if it is not an unsigned integer.
func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid id %q", raw))
		return 0, false
	}
	return uint(id), true
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("query parameter %q must be a non-negative integer", name)
	}
	return n, nil
}
