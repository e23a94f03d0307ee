package biz

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationPagesSmallTotals(t *testing.T) {
	for total := 0; total <= 7; total++ {
		for current := 1; current <= max(total, 1); current++ {
			want := make([]int, 0, total)
			for i := 1; i <= total; i++ {
				want = append(want, i)
			}
			assert.Equal(t, want, PaginationPages(current, total), "current=%d total=%d", current, total)
			assert.NotContains(t, PaginationPages(current, total), Ellipsis)
		}
	}
}

func TestPaginationPagesWindows(t *testing.T) {
	tests := []struct {
		current, total int
		want           []int
	}{
		{1, 10, []int{1, 2, 3, 4, 5, -1, 10}},
		{4, 10, []int{1, 2, 3, 4, 5, -1, 10}},
		{5, 10, []int{1, -1, 4, 5, 6, -1, 10}},
		{6, 10, []int{1, -1, 5, 6, 7, -1, 10}},
		{7, 10, []int{1, -1, 6, 7, 8, 9, 10}},
		{10, 10, []int{1, -1, 6, 7, 8, 9, 10}},
		{1, 8, []int{1, 2, 3, 4, 5, -1, 8}},
		{5, 8, []int{1, -1, 4, 5, 6, 7, 8}},
		{250, 500, []int{1, -1, 249, 250, 251, -1, 500}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_of_%d", tt.current, tt.total), func(t *testing.T) {
			assert.Equal(t, tt.want, PaginationPages(tt.current, tt.total))
		})
	}
}

func TestIsValidPageChange(t *testing.T) {
	tests := []struct {
		name                   string
		target, current, total int
		want                   bool
	}{
		{"zero", 0, 1, 10, false},
		{"negative", -1, 1, 10, false},
		{"beyond total", 11, 1, 10, false},
		{"same page", 3, 3, 10, false},
		{"next", 2, 1, 10, true},
		{"last", 10, 1, 10, true},
		{"first", 1, 5, 10, true},
		{"no pages", 1, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPageChange(tt.target, tt.current, tt.total))
		})
	}
}
