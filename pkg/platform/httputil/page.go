package httputil

import "govinda/pkg/platform/paging"

// PageResponse is the wire shape of every paged listing.
type PageResponse[T any] struct {
	Content       []T  `json:"content"`
	Page          int  `json:"page"`
	Size          int  `json:"size"`
	TotalElements int  `json:"total_elements"`
	TotalPages    int  `json:"total_pages"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
}

func NewPageResponse[T any](p paging.Page[T]) PageResponse[T] {
	return PageResponse[T]{
		Content:       p.Content,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages(),
		First:         p.First(),
		Last:          p.Last(),
	}
}
