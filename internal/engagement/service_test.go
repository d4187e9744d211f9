// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package engagement

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvtphong/fabula/internal/platform/apperr"
)

type pair struct{ userID, bookID string }

// fakeRepository keeps the ledgers in memory and recomputes aggregates per
// book on every mutation, mirroring the transactional store contract.
type fakeRepository struct {
	books     map[string]bool
	likes     map[pair]bool
	favorites map[pair]time.Time
	ratings   map[pair]int
}

func newFakeRepository(bookIDs ...string) *fakeRepository {
	f := &fakeRepository{
		books:     make(map[string]bool),
		likes:     make(map[pair]bool),
		favorites: make(map[pair]time.Time),
		ratings:   make(map[pair]int),
	}
	for _, id := range bookIDs {
		f.books[id] = true
	}
	return f
}

func (f *fakeRepository) likeCount(bookID string) int {
	count := 0
	for p := range f.likes {
		if p.bookID == bookID {
			count++
		}
	}
	return count
}

func (f *fakeRepository) ratingSummary(bookID string) *RatingSummary {
	sum, count := 0, 0
	for p, score := range f.ratings {
		if p.bookID == bookID {
			sum += score
			count++
		}
	}
	summary := &RatingSummary{RatingCount: count}
	if count > 0 {
		summary.AverageRating = float64(sum) / float64(count)
	}
	return summary
}

func (f *fakeRepository) ToggleLike(_ context.Context, userID, bookID string) (bool, error) {
	if !f.books[bookID] {
		return false, apperr.NotFound("Book")
	}
	key := pair{userID, bookID}
	if f.likes[key] {
		delete(f.likes, key)
		return false, nil
	}
	f.likes[key] = true
	return true, nil
}

func (f *fakeRepository) AddFavorite(_ context.Context, userID, bookID string) error {
	if !f.books[bookID] {
		return apperr.NotFound("Book")
	}
	key := pair{userID, bookID}
	if _, exists := f.favorites[key]; exists {
		return apperr.DuplicateState("Book already exists in favorites")
	}
	f.favorites[key] = time.Now()
	return nil
}

func (f *fakeRepository) RemoveFavorite(_ context.Context, userID, bookID string) error {
	delete(f.favorites, pair{userID, bookID})
	return nil
}

func (f *fakeRepository) ListFavorites(_ context.Context, userID string) ([]*FavoriteBook, error) {
	result := make([]*FavoriteBook, 0)
	for p, at := range f.favorites {
		if p.userID == userID {
			result = append(result, &FavoriteBook{BookID: p.bookID, FavoritedAt: at})
		}
	}
	return result, nil
}

func (f *fakeRepository) UpsertRating(_ context.Context, userID, bookID string, score int) (*RatingSummary, error) {
	if !f.books[bookID] {
		return nil, apperr.NotFound("Book")
	}
	f.ratings[pair{userID, bookID}] = score
	return f.ratingSummary(bookID), nil
}

func (f *fakeRepository) GetState(_ context.Context, userID, bookID string) (*State, error) {
	key := pair{userID, bookID}
	state := &State{Liked: f.likes[key]}
	_, state.Favorited = f.favorites[key]
	if score, ok := f.ratings[key]; ok {
		state.Rating = &score
	}
	return state, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestToggleLike_DoubleToggleRestoresState verifies the toggle round-trip:
two toggles return to the original state and counter.
*/
func TestToggleLike_DoubleToggleRestoresState(t *testing.T) {
	repo := newFakeRepository("b1")
	service := NewService(repo, testLogger())

	liked, err := service.ToggleLike(context.Background(), "u1", "b1")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, repo.likeCount("b1"))

	liked, err = service.ToggleLike(context.Background(), "u1", "b1")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, repo.likeCount("b1"))
}

func TestToggleLike_UnknownBook(t *testing.T) {
	service := NewService(newFakeRepository(), testLogger())

	_, err := service.ToggleLike(context.Background(), "u1", "b404")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestRateBook_UnknownBook verifies that rating a nonexistent book is a 404,
not a validation failure, and leaves the ledger untouched.
*/
func TestRateBook_UnknownBook(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo, testLogger())

	_, err := service.RateBook(context.Background(), "u1", "b404", 4)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	assert.Empty(t, repo.ratings)
}

/*
TestAddFavorite_UnknownBook verifies that favoriting a nonexistent book is a
404 rather than the duplicate-favorite conflict or a validation failure.
*/
func TestAddFavorite_UnknownBook(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo, testLogger())

	err := service.AddFavorite(context.Background(), "u1", "b404")
	require.Error(t, err)

	appError := apperr.As(err)
	assert.Equal(t, "NOT_FOUND", appError.Code)
	assert.Equal(t, 404, appError.HTTPStatus)
	assert.Empty(t, repo.favorites)
}

/*
TestRateBook_RepeatReplacesScore verifies that rating 5 then 3 by the same
user yields one ledger row averaging 3, not two rows averaging 4.
*/
func TestRateBook_RepeatReplacesScore(t *testing.T) {
	repo := newFakeRepository("b1")
	service := NewService(repo, testLogger())

	summary, err := service.RateBook(context.Background(), "u1", "b1", 5)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.RatingCount)
	assert.InDelta(t, 5.0, summary.AverageRating, 0.001)

	summary, err = service.RateBook(context.Background(), "u1", "b1", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.RatingCount)
	assert.InDelta(t, 3.0, summary.AverageRating, 0.001)
}

/*
TestRateBook_AggregatesAcrossUsers verifies the recomputed mean over
multiple raters.
*/
func TestRateBook_AggregatesAcrossUsers(t *testing.T) {
	repo := newFakeRepository("b1")
	service := NewService(repo, testLogger())

	_, err := service.RateBook(context.Background(), "u1", "b1", 4)
	require.NoError(t, err)

	summary, err := service.RateBook(context.Background(), "u2", "b1", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.RatingCount)
	assert.InDelta(t, 3.0, summary.AverageRating, 0.001)
}

func TestRateBook_RejectsOutOfRange(t *testing.T) {
	repo := newFakeRepository("b1")
	service := NewService(repo, testLogger())

	for _, score := range []int{0, 6, -1} {
		_, err := service.RateBook(context.Background(), "u1", "b1", score)
		require.Error(t, err, "score %d", score)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	}

	// The rejected scores never reached the ledger.
	assert.Empty(t, repo.ratings)
}

/*
TestFavorite_DuplicateAndIdempotentRemove verifies the asymmetric favorite
contract: duplicate adds fail loudly, absent removes succeed quietly.
*/
func TestFavorite_DuplicateAndIdempotentRemove(t *testing.T) {
	repo := newFakeRepository("b1")
	service := NewService(repo, testLogger())

	require.NoError(t, service.AddFavorite(context.Background(), "u1", "b1"))

	err := service.AddFavorite(context.Background(), "u1", "b1")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.Equal(t, 400, ae.HTTPStatus)

	require.NoError(t, service.RemoveFavorite(context.Background(), "u1", "b1"))
	require.NoError(t, service.RemoveFavorite(context.Background(), "u1", "b1"))
	assert.Empty(t, repo.favorites)
}

func TestGetState_ReflectsLedgers(t *testing.T) {
	repo := newFakeRepository("b1")
	service := NewService(repo, testLogger())

	_, err := service.ToggleLike(context.Background(), "u1", "b1")
	require.NoError(t, err)
	_, err = service.RateBook(context.Background(), "u1", "b1", 4)
	require.NoError(t, err)

	state, err := service.GetState(context.Background(), "u1", "b1")
	require.NoError(t, err)
	assert.True(t, state.Liked)
	assert.False(t, state.Favorited)
	require.NotNil(t, state.Rating)
	assert.Equal(t, 4, *state.Rating)
}
