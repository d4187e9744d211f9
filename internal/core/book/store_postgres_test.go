// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestCountListQuery_MirrorsListBranches verifies that the fallback count
statement carries the same filters as the paged listing, so an empty page
past the last row still reports the true total.
*/
func TestCountListQuery_MirrorsListBranches(t *testing.T) {
	t.Run("default mode with id set and status", func(t *testing.T) {
		filter := ListFilter{
			IDs:    []string{"b1", "b2"},
			Status: StatusOngoing,
		}

		query, args := countListQuery(filter)

		assert.Contains(t, query, "SELECT COUNT(*) FROM books b")
		assert.Contains(t, query, "AND b.id = ANY($1)")
		assert.Contains(t, query, "AND b.status = $2")
		require.Len(t, args, 2)
		assert.Equal(t, []string{"b1", "b2"}, args[0])
		assert.Equal(t, StatusOngoing, args[1])
	})

	t.Run("default mode without filters", func(t *testing.T) {
		query, args := countListQuery(ListFilter{})

		assert.Contains(t, query, "SELECT COUNT(*) FROM books b")
		assert.NotContains(t, query, "ANY")
		assert.Empty(t, args)
	})

	t.Run("completed mode counts by status", func(t *testing.T) {
		query, args := countListQuery(ListFilter{Mode: ModeCompleted})

		assert.Contains(t, query, "b.status = 'completed'")
		assert.Empty(t, args)
	})

	t.Run("new mode counts books with chapters", func(t *testing.T) {
		query, args := countListQuery(ListFilter{Mode: ModeNew})

		assert.Contains(t, query, "COUNT(DISTINCT book_id)")
		assert.Contains(t, query, "FROM chapters")
		assert.Empty(t, args)
	})
}

/*
TestCountSearchQuery_MatchesSearchFilter verifies the search count statement
applies the same title/author match as the paged search.
*/
func TestCountSearchQuery_MatchesSearchFilter(t *testing.T) {
	query := countSearchQuery()

	assert.Contains(t, query, "SELECT COUNT(*) FROM books b")
	assert.Contains(t, query, "b.title ILIKE $1")
	assert.Contains(t, query, "b.author ILIKE $1")
}
