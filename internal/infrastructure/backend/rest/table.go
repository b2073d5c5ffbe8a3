package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/saradorri/tournamenthub/internal/domain"
)

// table is one PostgREST resource under /rest/v1
type table[T any] struct {
	c    *Client
	name string
}

func newTable[T any](c *Client, name string) *table[T] {
	return &table[T]{c: c, name: name}
}

func (t *table[T]) path() string {
	return "/rest/v1/" + t.name
}

func byID(id string) url.Values {
	return url.Values{"id": {"eq." + id}}
}

func representation() http.Header {
	return http.Header{"Prefer": {"return=representation"}}
}

func (t *table[T]) list(ctx context.Context, order string) ([]*T, error) {
	q := url.Values{"select": {"*"}}
	if order != "" {
		q.Set("order", order)
	}
	var rows []*T
	if err := t.c.do(ctx, request{method: http.MethodGet, path: t.path(), query: q}, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (t *table[T]) find(ctx context.Context, q url.Values) (*T, error) {
	q.Set("select", "*")
	q.Set("limit", "1")
	var rows []*T
	if err := t.c.do(ctx, request{method: http.MethodGet, path: t.path(), query: q}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (t *table[T]) get(ctx context.Context, id string) (*T, error) {
	return t.find(ctx, byID(id))
}

func (t *table[T]) insert(ctx context.Context, row *T) (*T, error) {
	var rows []*T
	err := t.c.do(ctx, request{
		method: http.MethodPost,
		path:   t.path(),
		query:  url.Values{"select": {"*"}},
		body:   row,
		header: representation(),
	}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &domain.BackendError{StatusCode: http.StatusOK, Message: "insert returned no row"}
	}
	return rows[0], nil
}

func (t *table[T]) update(ctx context.Context, id string, fields domain.Fields) (*T, error) {
	q := byID(id)
	q.Set("select", "*")
	var rows []*T
	err := t.c.do(ctx, request{
		method: http.MethodPatch,
		path:   t.path(),
		query:  q,
		body:   fields,
		header: representation(),
	}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrRowNotFound
	}
	return rows[0], nil
}

func (t *table[T]) delete(ctx context.Context, id string) error {
	return t.c.do(ctx, request{method: http.MethodDelete, path: t.path(), query: byID(id)}, nil)
}
