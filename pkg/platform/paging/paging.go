// Package paging carries page requests from the HTTP layer to the stores and
// page results back.
package paging

import (
	"net/url"
	"strconv"
	"strings"

	dErrors "govinda/pkg/domain-errors"
)

const (
	DefaultSize = 20
	MaxSize     = 100
)

// Request is a zero-based page request.
type Request struct {
	Page     int
	Size     int
	SortBy   string
	SortDesc bool
}

// Normalize clamps page and size into their allowed range.
func (r Request) Normalize() Request {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.Size <= 0 {
		r.Size = DefaultSize
	}
	if r.Size > MaxSize {
		r.Size = MaxSize
	}
	return r
}

func (r Request) Offset() int {
	return r.Page * r.Size
}

// FromQuery reads page, size, sort_by and sort_dir. sort_by must be one of
// allowedSorts; an empty sort_by selects defaultSort.
func FromQuery(q url.Values, defaultSort string, allowedSorts ...string) (Request, error) {
	req := Request{SortBy: defaultSort}
	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 0 {
			return Request{}, dErrors.New(dErrors.CodeBadRequest, "page must be a non-negative integer")
		}
		req.Page = page
	}
	if v := q.Get("size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 {
			return Request{}, dErrors.New(dErrors.CodeBadRequest, "size must be a positive integer")
		}
		req.Size = size
	}
	if v := strings.TrimSpace(q.Get("sort_by")); v != "" {
		allowed := false
		for _, s := range allowedSorts {
			if s == v {
				allowed = true
				break
			}
		}
		if !allowed {
			return Request{}, dErrors.New(dErrors.CodeBadRequest, "unsupported sort_by: "+v)
		}
		req.SortBy = v
	}
	switch strings.ToLower(q.Get("sort_dir")) {
	case "", "asc":
	case "desc":
		req.SortDesc = true
	default:
		return Request{}, dErrors.New(dErrors.CodeBadRequest, "sort_dir must be asc or desc")
	}
	return req.Normalize(), nil
}

// Page is one slice of a larger result set.
type Page[T any] struct {
	Content       []T
	Page          int
	Size          int
	TotalElements int
}

func NewPage[T any](content []T, req Request, total int) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{Content: content, Page: req.Page, Size: req.Size, TotalElements: total}
}

func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return (p.TotalElements + p.Size - 1) / p.Size
}

func (p Page[T]) First() bool {
	return p.Page == 0
}

func (p Page[T]) Last() bool {
	return p.Page >= p.TotalPages()-1
}

// Map converts the content of a page, keeping its position.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Content))
	for i, v := range p.Content {
		out[i] = fn(v)
	}
	return Page[U]{Content: out, Page: p.Page, Size: p.Size, TotalElements: p.TotalElements}
}

// Slice cuts the requested page out of an already sorted, complete result.
func Slice[T any](all []T, req Request) Page[T] {
	req = req.Normalize()
	start := req.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + req.Size
	if end > len(all) {
		end = len(all)
	}
	return NewPage(append([]T{}, all[start:end]...), req, len(all))
}
