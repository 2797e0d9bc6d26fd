package utils

import (
	"math"
	"testing"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total    int64
		pageSize int
		want     int
	}{
		{0, 5, 0},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{1000, 1000, 1},
		{10, 0, 0},
	}

	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.pageSize); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.pageSize, got, tt.want)
		}
	}
}

func TestOffset(t *testing.T) {
	tests := []struct {
		page, pageSize, want int
	}{
		{1, 5, 0},
		{0, 5, 0},
		{-3, 5, 0},
		{2, 5, 5},
		{4, 1000, 3000},
		{math.MaxInt32, 1000, math.MaxInt32},
	}

	for _, tt := range tests {
		if got := Offset(tt.page, tt.pageSize); got != tt.want {
			t.Errorf("Offset(%d, %d) = %d, want %d", tt.page, tt.pageSize, got, tt.want)
		}
	}
}
