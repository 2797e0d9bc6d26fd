package utils

import "math"

// TotalPages is the number of pages of size pageSize needed for total rows.
func TotalPages(total int64, pageSize int) int {
	if pageSize < 1 || total < 1 {
		return 0
	}
	pages := (total-1)/int64(pageSize) + 1
	if pages > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(pages)
}

// Offset of the first row of a 1-based page. Pages before the first map to 0
// and an offset that would overflow is clamped.
func Offset(page, pageSize int) int {
	if page < 2 || pageSize < 1 {
		return 0
	}
	if page-1 > math.MaxInt32/pageSize {
		return math.MaxInt32
	}
	return (page - 1) * pageSize
}
