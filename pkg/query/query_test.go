// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nvtphong/fabula/pkg/query"
)

/*
TestStringSlice covers the comma-separated tags parameter parsing.
*/
func TestStringSlice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "Fantasy", []string{"Fantasy"}},
		{"multiple", "Fantasy,Action", []string{"Fantasy", "Action"}},
		{"whitespace_trimmed", " Fantasy , Action ", []string{"Fantasy", "Action"}},
		{"empty_segments_dropped", "Fantasy,,Action,", []string{"Fantasy", "Action"}},
		{"only_commas", ",,,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, query.StringSlice(tt.input))
		})
	}
}

/*
TestIntSlice verifies lenient integer list parsing.
*/
func TestIntSlice(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []int
	}{
		{"nil", nil, nil},
		{"valid", []string{"1", "2", "3"}, []int{1, 2, 3}},
		{"invalid_skipped", []string{"1", "x", "3"}, []int{1, 3}},
		{"all_invalid", []string{"a", "b"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, query.IntSlice(tt.input))
		})
	}
}
