package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/fitlog/internal/client/models"
	"github.com/dmitrijs2005/fitlog/internal/common"
)

// Resource is the CRUD client for one resource kind rooted at /api/{name}.
// Every method returns the server's representation verbatim; reconciling it
// into local state is the caller's job.
type Resource[T models.Record] struct {
	c    *Client
	name string
}

func NewResource[T models.Record](c *Client, name string) *Resource[T] {
	return &Resource[T]{c: c, name: name}
}

// Name is the resource segment, e.g. "meals".
func (r *Resource[T]) Name() string { return r.name }

func (r *Resource[T]) base() string { return "/api/" + r.name }

func (r *Resource[T]) item(id string) string { return r.base() + "/" + url.PathEscape(id) }

func (r *Resource[T]) Index(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.c.Do(ctx, http.MethodGet, r.base(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resource[T]) Show(ctx context.Context, id string) (T, error) {
	var out T
	if id == "" {
		return out, common.ErrMissingID
	}
	err := r.c.Do(ctx, http.MethodGet, r.item(id), nil, &out)
	return out, err
}

func (r *Resource[T]) Create(ctx context.Context, data T) (T, error) {
	var out T
	err := r.c.Do(ctx, http.MethodPost, r.base(), data, &out)
	return out, err
}

// Update sends data to the endpoint derived from data's own identifier.
func (r *Resource[T]) Update(ctx context.Context, data T) (T, error) {
	var out T
	id := data.GetID()
	if id == "" {
		return out, fmt.Errorf("update %s: %w", r.name, common.ErrMissingID)
	}
	err := r.c.Do(ctx, http.MethodPut, r.item(id), data, &out)
	return out, err
}

// Delete removes the record and returns what the server echoed back.
func (r *Resource[T]) Delete(ctx context.Context, id string) (T, error) {
	var out T
	if id == "" {
		return out, fmt.Errorf("delete %s: %w", r.name, common.ErrMissingID)
	}
	err := r.c.Do(ctx, http.MethodDelete, r.item(id), nil, &out)
	return out, err
}

func (r *Resource[T]) comments(parentID string) string { return r.item(parentID) + "/comments" }

func (r *Resource[T]) CreateComment(ctx context.Context, parentID string, data models.Comment) (models.Comment, error) {
	var out models.Comment
	if parentID == "" {
		return out, common.ErrMissingID
	}
	err := r.c.Do(ctx, http.MethodPost, r.comments(parentID), data, &out)
	return out, err
}

func (r *Resource[T]) UpdateComment(ctx context.Context, parentID, commentID string, data models.Comment) (models.Comment, error) {
	var out models.Comment
	if parentID == "" || commentID == "" {
		return out, common.ErrMissingID
	}
	err := r.c.Do(ctx, http.MethodPut, r.comments(parentID)+"/"+url.PathEscape(commentID), data, &out)
	return out, err
}

// DeleteComment removes a comment and returns the parent as the server now has it.
func (r *Resource[T]) DeleteComment(ctx context.Context, parentID, commentID string) (T, error) {
	var out T
	if parentID == "" || commentID == "" {
		return out, common.ErrMissingID
	}
	err := r.c.Do(ctx, http.MethodDelete, r.comments(parentID)+"/"+url.PathEscape(commentID), nil, &out)
	return out, err
}
