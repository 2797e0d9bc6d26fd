package response

import "yamdb/pkg/utils"

type PaginatedResponse[T any] struct {
	Results    []T            `json:"results"`
	Pagination PaginationMeta `json:"pagination"`
}

type PaginationMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Count      int   `json:"count"`
	TotalPages int   `json:"total_pages"`
}

func NewPaginatedResponse[T any](results []T, page, count int, total int64) *PaginatedResponse[T] {
	if results == nil {
		results = []T{}
	}

	return &PaginatedResponse[T]{
		Results: results,
		Pagination: PaginationMeta{
			Page:       page,
			Count:      count,
			Total:      total,
			TotalPages: utils.TotalPages(total, count),
		},
	}
}
