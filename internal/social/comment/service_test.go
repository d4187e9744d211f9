// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package comment

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvtphong/fabula/internal/platform/apperr"
)

type fakeRepository struct {
	books    map[string]bool
	chapters map[string]string // chapter id -> owning book id
	comments []*Comment
	clock    time.Time
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		books:    make(map[string]bool),
		chapters: make(map[string]string),
		clock:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeRepository) Insert(_ context.Context, comment *Comment) error {
	f.clock = f.clock.Add(time.Minute)
	comment.CreatedAt = f.clock
	f.comments = append(f.comments, comment)
	return nil
}

func (f *fakeRepository) ListByBook(_ context.Context, bookID string, chapterID *string) ([]*Comment, error) {
	result := make([]*Comment, 0)
	for _, c := range f.comments {
		if c.BookID != bookID {
			continue
		}
		if chapterID != nil && (c.ChapterID == nil || *c.ChapterID != *chapterID) {
			continue
		}
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (f *fakeRepository) BookExists(_ context.Context, bookID string) (bool, error) {
	return f.books[bookID], nil
}

func (f *fakeRepository) ChapterBelongsToBook(_ context.Context, chapterID, bookID string) (bool, error) {
	return f.chapters[chapterID] == bookID, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

func TestPost_UnknownBook(t *testing.T) {
	service := NewService(newFakeRepository(), testLogger())

	_, err := service.Post(context.Background(), "u1", PostInput{
		BookID:  "b404",
		Content: "great read",
	})

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestPost_ChapterMustBelongToBook verifies that a chapter id from another
book is rejected before any write.
*/
func TestPost_ChapterMustBelongToBook(t *testing.T) {
	repo := newFakeRepository()
	repo.books["b1"] = true
	repo.books["b2"] = true
	repo.chapters["c1"] = "b2"
	service := NewService(repo, testLogger())

	_, err := service.Post(context.Background(), "u1", PostInput{
		BookID:    "b1",
		ChapterID: strPtr("c1"),
		Content:   "wrong thread",
	})

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	assert.Empty(t, repo.comments)
}

func TestPost_RejectsBlankContent(t *testing.T) {
	repo := newFakeRepository()
	repo.books["b1"] = true
	service := NewService(repo, testLogger())

	_, err := service.Post(context.Background(), "u1", PostInput{
		BookID:  "b1",
		Content: "   \n\t ",
	})

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestPost_TrimsAndStores(t *testing.T) {
	repo := newFakeRepository()
	repo.books["b1"] = true
	repo.chapters["c1"] = "b1"
	service := NewService(repo, testLogger())

	comment, err := service.Post(context.Background(), "u7", PostInput{
		BookID:    "b1",
		ChapterID: strPtr("c1"),
		Content:   "  loved the twist  ",
	})

	require.NoError(t, err)
	assert.Equal(t, "loved the twist", comment.Body)
	assert.Equal(t, "u7", comment.UserID)
	assert.NotEmpty(t, comment.ID)
	require.Len(t, repo.comments, 1)
}

/*
TestList_NewestFirstAndChapterFilter verifies the ordering and the optional
chapter narrowing.
*/
func TestList_NewestFirstAndChapterFilter(t *testing.T) {
	repo := newFakeRepository()
	repo.books["b1"] = true
	repo.chapters["c1"] = "b1"
	service := NewService(repo, testLogger())

	_, err := service.Post(context.Background(), "u1", PostInput{BookID: "b1", Content: "first"})
	require.NoError(t, err)
	_, err = service.Post(context.Background(), "u2", PostInput{BookID: "b1", ChapterID: strPtr("c1"), Content: "second"})
	require.NoError(t, err)
	_, err = service.Post(context.Background(), "u3", PostInput{BookID: "b1", Content: "third"})
	require.NoError(t, err)

	all, err := service.List(context.Background(), "b1", nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Body)
	assert.Equal(t, "first", all[2].Body)

	scoped, err := service.List(context.Background(), "b1", strPtr("c1"))
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "second", scoped[0].Body)
}

func TestList_ValidatesScope(t *testing.T) {
	repo := newFakeRepository()
	repo.books["b1"] = true
	service := NewService(repo, testLogger())

	_, err := service.List(context.Background(), "b404", nil)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = service.List(context.Background(), "b1", strPtr("c404"))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}
