package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"alloydb-shop/api/internal/repository"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// Store is the CRUD surface of one table. T is the stored row, In the
// client-supplied fields.
type Store[T, In any] interface {
	List(ctx context.Context, limit, offset int) ([]T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, in In) (*T, error)
	Update(ctx context.Context, id int64, in In) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// Resource serves the five CRUD routes of one table.
type Resource[T, In any] struct {
	name  string
	store Store[T, In]
}

// NewResource builds a resource; name is the capitalized singular used in
// messages, e.g. "User".
func NewResource[T, In any](name string, store Store[T, In]) *Resource[T, In] {
	return &Resource[T, In]{name: name, store: store}
}

func (res *Resource[T, In]) Routes(r chi.Router) {
	r.Get("/", res.List)
	r.Post("/", res.Create)
	r.Get("/{id}", res.Get)
	r.Put("/{id}", res.Update)
	r.Delete("/{id}", res.Delete)
}

// List godoc
//
//	@Summary	List rows of a table
//	@Tags		resources
//	@Produce	json
//	@Param		resource	path		string	true	"Table"	Enums(users, items, orders, order_items, ratings)
//	@Param		limit		query		int		false	"Page size, default 100, max 1000"
//	@Param		offset		query		int		false	"Rows to skip, default 0"
//	@Success	200			{array}		object
//	@Failure	500			{object}	errorResponse
//	@Router		/{resource} [get]
func (res *Resource[T, In]) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	rows, err := res.store.List(r.Context(), limit, offset)
	if err != nil {
		writeInternal(w, r, "failed to list "+res.plural(), err)
		return
	}
	writeJSON(w, r, http.StatusOK, rows)
}

// Get godoc
//
//	@Summary	Get one row by id
//	@Tags		resources
//	@Produce	json
//	@Param		resource	path		string	true	"Table"	Enums(users, items, orders, order_items, ratings)
//	@Param		id			path		int		true	"Row id"
//	@Success	200			{object}	object
//	@Failure	404			{object}	errorResponse
//	@Failure	500			{object}	errorResponse
//	@Router		/{resource}/{id} [get]
func (res *Resource[T, In]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := res.id(w, r)
	if !ok {
		return
	}
	row, err := res.store.Get(r.Context(), id)
	if err != nil {
		res.storeError(w, r, "failed to get "+strings.ToLower(res.name), err)
		return
	}
	writeJSON(w, r, http.StatusOK, row)
}

// Create godoc
//
//	@Summary	Insert a row
//	@Tags		resources
//	@Accept		json
//	@Produce	json
//	@Param		resource	path		string	true	"Table"	Enums(users, items, orders, order_items, ratings)
//	@Param		body		body		object	true	"Column values"
//	@Success	201			{object}	object
//	@Failure	400			{object}	errorResponse
//	@Failure	413			{object}	errorResponse
//	@Failure	500			{object}	errorResponse
//	@Router		/{resource} [post]
func (res *Resource[T, In]) Create(w http.ResponseWriter, r *http.Request) {
	var in In
	if !decodeBody(w, r, &in) {
		return
	}
	row, err := res.store.Create(r.Context(), in)
	if err != nil {
		writeInternal(w, r, "failed to create "+strings.ToLower(res.name), err)
		return
	}
	writeJSON(w, r, http.StatusCreated, row)
}

// Update godoc
//
//	@Summary	Replace every column of a row
//	@Tags		resources
//	@Accept		json
//	@Produce	json
//	@Param		resource	path		string	true	"Table"	Enums(users, items, orders, order_items, ratings)
//	@Param		id			path		int		true	"Row id"
//	@Param		body		body		object	true	"Column values"
//	@Success	200			{object}	object
//	@Failure	400			{object}	errorResponse
//	@Failure	404			{object}	errorResponse
//	@Failure	500			{object}	errorResponse
//	@Router		/{resource}/{id} [put]
func (res *Resource[T, In]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := res.id(w, r)
	if !ok {
		return
	}
	var in In
	if !decodeReplaceBody(w, r, &in) {
		return
	}
	row, err := res.store.Update(r.Context(), id, in)
	if err != nil {
		res.storeError(w, r, "failed to update "+strings.ToLower(res.name), err)
		return
	}
	writeJSON(w, r, http.StatusOK, row)
}

// Delete godoc
//
//	@Summary	Delete a row
//	@Tags		resources
//	@Produce	json
//	@Param		resource	path		string	true	"Table"	Enums(users, items, orders, order_items, ratings)
//	@Param		id			path		int		true	"Row id"
//	@Success	200			{object}	messageResponse
//	@Failure	404			{object}	errorResponse
//	@Failure	500			{object}	errorResponse
//	@Router		/{resource}/{id} [delete]
func (res *Resource[T, In]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := res.id(w, r)
	if !ok {
		return
	}
	if err := res.store.Delete(r.Context(), id); err != nil {
		res.storeError(w, r, "failed to delete "+strings.ToLower(res.name), err)
		return
	}
	writeJSON(w, r, http.StatusOK, messageResponse{Message: res.name + " deleted successfully"})
}

// id parses the {id} path parameter. An id that is not an integer cannot
// match any row, so it is answered as not found.
func (res *Resource[T, In]) id(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := pathID(r)
	if !ok {
		res.notFound(w, r)
	}
	return id, ok
}

func (res *Resource[T, In]) storeError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		res.notFound(w, r)
		return
	}
	writeInternal(w, r, msg, err)
}

func (res *Resource[T, In]) notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, res.name+" not found")
}

func (res *Resource[T, In]) plural() string {
	return strings.ToLower(res.name) + "s"
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// pagination reads limit and offset. A limit that is not a positive integer
// falls back to the default, as does an offset that is not a non-negative one.
func pagination(r *http.Request) (limit, offset int) {
	q := r.URL.Query()

	limit = defaultLimit
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		limit = min(v, maxLimit)
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}
