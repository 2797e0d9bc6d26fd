package request

import "yamdb/pkg/utils"

const (
	DefaultPageSize = 5
	MaxPageSize     = 1000
)

// PaginatedRequest is read from ?page= and ?count=.
type PaginatedRequest struct {
	Page  int `json:"page"`
	Count int `json:"count"`
}

func NewPaginatedRequest(page, count string) PaginatedRequest {
	return PaginatedRequest{
		Page:  utils.ParseInt(page, 1),
		Count: utils.ParseInt(count, DefaultPageSize),
	}
}

func (p PaginatedRequest) Offset() int {
	return utils.Offset(p.Page, p.Limit())
}

func (p PaginatedRequest) Limit() int {
	if p.Count < 1 {
		return DefaultPageSize
	}
	if p.Count > MaxPageSize {
		return MaxPageSize
	}
	return p.Count
}

func (p PaginatedRequest) PageNumber() int {
	if p.Page < 1 {
		return 1
	}
	return p.Page
}
