// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package book

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvtphong/fabula/internal/platform/apperr"
)

// fakeRepository is an in-memory Repository used to exercise the service's
// composition logic without a database.
type fakeRepository struct {
	books      map[string]*Book
	tagsByBook map[string][]string

	idsByTags   []string
	listCalled  bool
	createError error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		books:      make(map[string]*Book),
		tagsByBook: make(map[string][]string),
	}
}

func (f *fakeRepository) List(_ context.Context, filter ListFilter, limit, offset int) ([]*Book, int, error) {
	f.listCalled = true

	qualified := make([]*Book, 0)
	for _, book := range f.books {
		if filter.IDs != nil && !contains(filter.IDs, book.ID) {
			continue
		}
		if filter.Status != "" && book.Status != filter.Status {
			continue
		}
		qualified = append(qualified, book)
	}

	total := len(qualified)
	if offset >= total {
		return []*Book{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return qualified[offset:end], total, nil
}

func (f *fakeRepository) FindIDsByTags(_ context.Context, tagSlugs []string) ([]string, error) {
	return f.idsByTags, nil
}

func (f *fakeRepository) TagsForBooks(_ context.Context, bookIDs []string) (map[string][]string, error) {
	result := make(map[string][]string)
	for _, id := range bookIDs {
		if tags, ok := f.tagsByBook[id]; ok {
			result[id] = tags
		}
	}
	return result, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*Book, error) {
	book, ok := f.books[id]
	if !ok {
		return nil, apperr.NotFound("Book")
	}
	copied := *book
	return &copied, nil
}

func (f *fakeRepository) Search(_ context.Context, _ string, _, _ int) ([]*Book, int, error) {
	return []*Book{}, 0, nil
}

func (f *fakeRepository) IncrementViews(_ context.Context, id string) error {
	if book, ok := f.books[id]; ok {
		book.Views++
	}
	return nil
}

func (f *fakeRepository) Create(_ context.Context, book *Book, tagNames []string) error {
	if f.createError != nil {
		return f.createError
	}
	f.books[book.ID] = book
	return nil
}

func (f *fakeRepository) Update(_ context.Context, book *Book, tagNames []string) error {
	if _, ok := f.books[book.ID]; !ok {
		return apperr.NotFound("Book")
	}
	f.books[book.ID] = book
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.books[id]; !ok {
		return apperr.NotFound("Book")
	}
	delete(f.books, id)
	return nil
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// fakeCoverRemover records cleanup calls.
type fakeCoverRemover struct {
	removed []string
}

func (f *fakeCoverRemover) Remove(_ context.Context, coverURL string) error {
	f.removed = append(f.removed, coverURL)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestListCatalog_TagShortCircuit verifies that a tag filter matching no books
returns an empty page without ever issuing the listing query.
*/
func TestListCatalog_TagShortCircuit(t *testing.T) {
	repo := newFakeRepository()
	repo.idsByTags = []string{}
	service := NewService(repo, nil, testLogger())

	page, err := service.ListCatalog(context.Background(), CatalogParams{
		Tags:  []string{"Fantasy", "Action"},
		Page:  1,
		Limit: 16,
	})

	require.NoError(t, err)
	assert.Empty(t, page.Books)
	assert.Equal(t, 0, page.TotalBooks)
	assert.Equal(t, 0, page.TotalPages)
	assert.False(t, repo.listCalled, "listing query must be skipped on empty tag match")
}

/*
TestListCatalog_TagIntersection verifies AND semantics: only books in the
qualified id set are listed, each carrying its complete tag list.
*/
func TestListCatalog_TagIntersection(t *testing.T) {
	repo := newFakeRepository()
	repo.books["b1"] = &Book{ID: "b1", Title: "Sword of Dawn", Status: StatusOngoing}
	repo.books["b2"] = &Book{ID: "b2", Title: "Quiet Garden", Status: StatusOngoing}
	repo.tagsByBook["b1"] = []string{"Action", "Drama", "Fantasy"}
	repo.tagsByBook["b2"] = []string{"Fantasy"}

	// Only b1 carries both requested tags.
	repo.idsByTags = []string{"b1"}
	service := NewService(repo, nil, testLogger())

	page, err := service.ListCatalog(context.Background(), CatalogParams{
		Tags:  []string{"Fantasy", "Action"},
		Page:  1,
		Limit: 16,
	})

	require.NoError(t, err)
	require.Len(t, page.Books, 1)
	assert.Equal(t, "b1", page.Books[0].ID)

	// The attached list is the complete tag set, not just the filter tags.
	assert.ElementsMatch(t, []string{"Action", "Drama", "Fantasy"}, page.Books[0].Tags)
	for _, requested := range []string{"Fantasy", "Action"} {
		assert.Contains(t, page.Books[0].Tags, requested)
	}
}

/*
TestListCatalog_OutOfRangePage verifies that a page beyond the last returns
an empty book list with correct totals, never an error.
*/
func TestListCatalog_OutOfRangePage(t *testing.T) {
	repo := newFakeRepository()
	repo.books["b1"] = &Book{ID: "b1", Status: StatusOngoing}
	repo.books["b2"] = &Book{ID: "b2", Status: StatusOngoing}
	service := NewService(repo, nil, testLogger())

	page, err := service.ListCatalog(context.Background(), CatalogParams{Page: 9, Limit: 16})

	require.NoError(t, err)
	assert.Empty(t, page.Books)
	assert.Equal(t, 2, page.TotalBooks)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 9, page.Page)
}

/*
TestListCatalog_RejectsUnknownFilterValues verifies enum validation for
mode, status, and sort.
*/
func TestListCatalog_RejectsUnknownFilterValues(t *testing.T) {
	tests := []struct {
		name   string
		params CatalogParams
	}{
		{"bad_mode", CatalogParams{Mode: "trending", Page: 1, Limit: 16}},
		{"bad_status", CatalogParams{Status: "archived", Page: 1, Limit: 16}},
		{"bad_sort", CatalogParams{Sort: "hot", Page: 1, Limit: 16}},
	}

	service := NewService(newFakeRepository(), nil, testLogger())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ListCatalog(context.Background(), tt.params)
			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

/*
TestGetBook_IncrementsViews verifies the detail lookup side-effect.
*/
func TestGetBook_IncrementsViews(t *testing.T) {
	repo := newFakeRepository()
	repo.books["b1"] = &Book{ID: "b1", Views: 7}
	service := NewService(repo, nil, testLogger())

	book, err := service.GetBook(context.Background(), "b1")

	require.NoError(t, err)
	assert.Equal(t, int64(8), book.Views)
	assert.Equal(t, int64(8), repo.books["b1"].Views)
}

/*
TestCreateBook_CoverCleanupOnFailure verifies that an uploaded cover is
removed when the owning transaction fails.
*/
func TestCreateBook_CoverCleanupOnFailure(t *testing.T) {
	repo := newFakeRepository()
	repo.createError = errors.New("connection reset")
	remover := &fakeCoverRemover{}
	service := NewService(repo, remover, testLogger())

	_, err := service.CreateBook(context.Background(), WriteInput{
		Title:    "Sword of Dawn",
		Author:   "L. Tran",
		Status:   StatusOngoing,
		CoverURL: "/uploads/covers/sword-of-dawn.jpg",
	})

	require.Error(t, err)
	assert.Equal(t, []string{"/uploads/covers/sword-of-dawn.jpg"}, remover.removed)
}

/*
TestCreateBook_RequiresTitleAndStatus verifies the admin write rules.
*/
func TestCreateBook_RequiresTitleAndStatus(t *testing.T) {
	service := NewService(newFakeRepository(), nil, testLogger())

	_, err := service.CreateBook(context.Background(), WriteInput{
		Author: "L. Tran",
		Status: "archived",
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Len(t, ae.Details, 2)
}
