// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package engagement

import (
	"context"
	"log/slog"

	"github.com/nvtphong/fabula/internal/platform/validate"
)

const (
	// FieldRating is the payload field carrying the 1-5 score.
	FieldRating = "rating"

	minScore = 1
	maxScore = 5
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
ToggleLike flips the caller's like for a book and returns the resulting
liked state.
*/
func (service *Service) ToggleLike(context context.Context, userID, bookID string) (bool, error) {
	liked, err := service.repo.ToggleLike(context, userID, bookID)
	if err != nil {
		return false, err
	}

	service.logger.Info("like_toggled",
		slog.String("user_id", userID),
		slog.String("book_id", bookID),
		slog.Bool("liked", liked))

	return liked, nil
}

/*
RateBook validates the score and upserts the caller's rating. A repeat
rating by the same user replaces the previous score rather than adding a
second ledger row.
*/
func (service *Service) RateBook(context context.Context, userID, bookID string, score int) (*RatingSummary, error) {

	// ── 1. Validation ──
	validator := &validate.Validator{}
	validator.Range(FieldRating, score, minScore, maxScore)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 2. Upsert + aggregate recompute ──
	summary, err := service.repo.UpsertRating(context, userID, bookID, score)
	if err != nil {
		return nil, err
	}

	service.logger.Info("book_rated",
		slog.String("user_id", userID),
		slog.String("book_id", bookID),
		slog.Int("score", score),
		slog.Int("rating_count", summary.RatingCount))

	return summary, nil
}

/*
AddFavorite records a favorite. Favoriting a book twice is reported as a
duplicate-state error so the client can reconcile its toggle UI.
*/
func (service *Service) AddFavorite(context context.Context, userID, bookID string) error {
	if err := service.repo.AddFavorite(context, userID, bookID); err != nil {
		return err
	}

	service.logger.Info("favorite_added",
		slog.String("user_id", userID),
		slog.String("book_id", bookID))

	return nil
}

// RemoveFavorite drops a favorite. Removing an absent one succeeds quietly.
func (service *Service) RemoveFavorite(context context.Context, userID, bookID string) error {
	if err := service.repo.RemoveFavorite(context, userID, bookID); err != nil {
		return err
	}

	service.logger.Info("favorite_removed",
		slog.String("user_id", userID),
		slog.String("book_id", bookID))

	return nil
}

func (service *Service) ListFavorites(context context.Context, userID string) ([]*FavoriteBook, error) {
	return service.repo.ListFavorites(context, userID)
}

func (service *Service) GetState(context context.Context, userID, bookID string) (*State, error) {
	return service.repo.GetState(context, userID, bookID)
}
