// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nvtphong/fabula/pkg/pagination"
)

/*
TestFromRequestWithLimit covers query-string parsing and clamping rules.
*/
func TestFromRequestWithLimit(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		defaultLimit int
		wantPage     int
		wantLimit    int
	}{
		{"defaults", "/books", 16, 1, 16},
		{"explicit_page", "/books?page=3", 8, 3, 8},
		{"explicit_limit", "/books?limit=10", 16, 1, 10},
		{"negative_page", "/books?page=-2", 16, 1, 16},
		{"zero_limit", "/books?limit=0", 8, 1, 8},
		{"excessive_limit", "/books?limit=9999", 16, 1, 16},
		{"garbage_values", "/books?page=abc&limit=xyz", 8, 1, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			p := pagination.FromRequestWithLimit(r, tt.defaultLimit)

			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}
}

/*
TestOffset verifies the SQL OFFSET derivation.
*/
func TestOffset(t *testing.T) {
	tests := []struct {
		name string
		p    pagination.Params
		want int
	}{
		{"first_page", pagination.Params{Page: 1, Limit: 8}, 0},
		{"second_page", pagination.Params{Page: 2, Limit: 8}, 8},
		{"fifth_page_catalog", pagination.Params{Page: 5, Limit: 16}, 64},
		{"zero_page_clamps", pagination.Params{Page: 0, Limit: 8}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Offset())
		})
	}
}

/*
TestNewMeta verifies total page math, including the out-of-range page case
which must surface correct totals rather than an error.
*/
func TestNewMeta(t *testing.T) {
	tests := []struct {
		name           string
		page           int
		limit          int
		total          int
		wantTotalPages int
	}{
		{"exact_division", 1, 8, 16, 2},
		{"ceiling", 1, 8, 17, 3},
		{"empty_result", 1, 8, 0, 0},
		{"page_beyond_range", 99, 8, 17, 3},
		{"single_item", 1, 16, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := pagination.NewMeta(tt.page, tt.limit, tt.total)

			assert.Equal(t, tt.wantTotalPages, m.TotalPages)
			assert.Equal(t, tt.total, m.Total)
			assert.Equal(t, tt.page, m.Page)
		})
	}
}
