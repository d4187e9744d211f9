// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package chapter

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvtphong/fabula/internal/platform/apperr"
)

// fakeRepository keeps chapters in memory and resolves neighbours by order
// comparison, mirroring the SQL contract.
type fakeRepository struct {
	chapters map[string]*Chapter
}

func newFakeRepository(chapters ...*Chapter) *fakeRepository {
	f := &fakeRepository{chapters: make(map[string]*Chapter)}
	for _, c := range chapters {
		f.chapters[c.ID] = c
	}
	return f
}

func (f *fakeRepository) byBook(bookID string) []*Chapter {
	var result []*Chapter
	for _, c := range f.chapters {
		if c.BookID == bookID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ChapterOrder < result[j].ChapterOrder
	})
	return result
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*Chapter, error) {
	if c, ok := f.chapters[id]; ok {
		return c, nil
	}
	return nil, apperr.NotFound("Chapter")
}

func (f *fakeRepository) FindFirst(_ context.Context, bookID string) (*Chapter, error) {
	ordered := f.byBook(bookID)
	if len(ordered) == 0 {
		return nil, apperr.NotFound("Chapter")
	}
	return ordered[0], nil
}

func (f *fakeRepository) FindLatest(_ context.Context, bookID string) (*Chapter, error) {
	ordered := f.byBook(bookID)
	if len(ordered) == 0 {
		return nil, apperr.NotFound("Chapter")
	}
	return ordered[len(ordered)-1], nil
}

func (f *fakeRepository) FindPrevID(_ context.Context, bookID string, order int) (*string, error) {
	var best *Chapter
	for _, c := range f.byBook(bookID) {
		if c.ChapterOrder < order && (best == nil || c.ChapterOrder > best.ChapterOrder) {
			best = c
		}
	}
	if best == nil {
		return nil, nil
	}
	return &best.ID, nil
}

func (f *fakeRepository) FindNextID(_ context.Context, bookID string, order int) (*string, error) {
	var best *Chapter
	for _, c := range f.byBook(bookID) {
		if c.ChapterOrder > order && (best == nil || c.ChapterOrder < best.ChapterOrder) {
			best = c
		}
	}
	if best == nil {
		return nil, nil
	}
	return &best.ID, nil
}

func (f *fakeRepository) ListRefs(_ context.Context, bookID string) ([]Ref, error) {
	refs := make([]Ref, 0)
	for _, c := range f.byBook(bookID) {
		refs = append(refs, Ref{ID: c.ID, Title: c.Title, ChapterOrder: c.ChapterOrder})
	}
	return refs, nil
}

func (f *fakeRepository) Create(_ context.Context, chapter *Chapter) error {
	for _, c := range f.chapters {
		if c.BookID == chapter.BookID && c.ChapterOrder == chapter.ChapterOrder {
			return apperr.Conflict("Cannot create chapter: resource already exists")
		}
	}
	f.chapters[chapter.ID] = chapter
	return nil
}

func (f *fakeRepository) Update(_ context.Context, chapter *Chapter) error {
	if _, ok := f.chapters[chapter.ID]; !ok {
		return apperr.NotFound("Chapter")
	}
	f.chapters[chapter.ID] = chapter
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.chapters[id]; !ok {
		return apperr.NotFound("Chapter")
	}
	delete(f.chapters, id)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// gappedBook builds a book whose orders are deliberately non-contiguous.
func gappedBook() *fakeRepository {
	return newFakeRepository(
		&Chapter{ID: "c10", BookID: "b1", Title: "Prologue", ChapterOrder: 1},
		&Chapter{ID: "c20", BookID: "b1", Title: "The Road", ChapterOrder: 2},
		&Chapter{ID: "c30", BookID: "b1", Title: "The Gate", ChapterOrder: 5},
	)
}

/*
TestResolve_ExplicitChapter verifies prev/next resolution for an explicit id
with gapped orders.
*/
func TestResolve_ExplicitChapter(t *testing.T) {
	service := NewService(gappedBook(), testLogger())

	reading, err := service.ResolveByID(context.Background(), "c20")
	require.NoError(t, err)

	require.NotNil(t, reading.PrevChapterID)
	require.NotNil(t, reading.NextChapterID)
	assert.Equal(t, "c10", *reading.PrevChapterID)
	assert.Equal(t, "c30", *reading.NextChapterID)

	require.Len(t, reading.AllChapters, 3)
	assert.Equal(t, []int{1, 2, 5}, []int{
		reading.AllChapters[0].ChapterOrder,
		reading.AllChapters[1].ChapterOrder,
		reading.AllChapters[2].ChapterOrder,
	})
}

/*
TestResolve_Sentinels verifies the first/latest boundary links.
*/
func TestResolve_Sentinels(t *testing.T) {
	service := NewService(gappedBook(), testLogger())

	first, err := service.ResolveFirst(context.Background(), "b1")
	require.NoError(t, err)
	assert.Nil(t, first.PrevChapterID)
	require.NotNil(t, first.NextChapterID)
	assert.Equal(t, "c20", *first.NextChapterID)

	latest, err := service.ResolveLatest(context.Background(), "b1")
	require.NoError(t, err)
	assert.Nil(t, latest.NextChapterID)
	require.NotNil(t, latest.PrevChapterID)
	assert.Equal(t, "c20", *latest.PrevChapterID)
}

/*
TestResolve_WalkFromFirstReachesLatest verifies that following next-links
from the first chapter N-1 times lands on the latest chapter.
*/
func TestResolve_WalkFromFirstReachesLatest(t *testing.T) {
	service := NewService(gappedBook(), testLogger())

	reading, err := service.ResolveFirst(context.Background(), "b1")
	require.NoError(t, err)

	steps := len(reading.AllChapters) - 1
	for i := 0; i < steps; i++ {
		require.NotNil(t, reading.NextChapterID, "walk ended early at step %d", i)
		reading, err = service.ResolveByID(context.Background(), *reading.NextChapterID)
		require.NoError(t, err)
	}

	latest, err := service.ResolveLatest(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, latest.ID, reading.ID)
	assert.Nil(t, reading.NextChapterID)
}

/*
TestResolve_EmptyBook verifies that sentinel selectors on a chapterless book
fail with NotFound instead of fabricating a synthetic chapter.
*/
func TestResolve_EmptyBook(t *testing.T) {
	service := NewService(newFakeRepository(), testLogger())

	_, err := service.ResolveFirst(context.Background(), "b404")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = service.ResolveLatest(context.Background(), "b404")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestCreateChapter_Validation verifies the admin write rules.
*/
func TestCreateChapter_Validation(t *testing.T) {
	service := NewService(newFakeRepository(), testLogger())

	_, err := service.CreateChapter(context.Background(), "b1", WriteInput{
		Title:        "",
		ChapterOrder: 0,
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Len(t, ae.Details, 2)
}

/*
TestCreateChapter_DuplicateOrder verifies the unique (book, order) contract.
*/
func TestCreateChapter_DuplicateOrder(t *testing.T) {
	service := NewService(gappedBook(), testLogger())

	_, err := service.CreateChapter(context.Background(), "b1", WriteInput{
		Title:        "Retold",
		ChapterOrder: 2,
	})

	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}
