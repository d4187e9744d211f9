// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package admin

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nvtphong/fabula/internal/platform/apperr"
	"github.com/nvtphong/fabula/internal/platform/sec"
	"github.com/nvtphong/fabula/internal/platform/validate"
	"github.com/nvtphong/fabula/pkg/pagination"
	"github.com/nvtphong/fabula/pkg/uuidv7"
)

// Field names used in validation messages.
const (
	FieldSubject = "subject"
	FieldBody    = "body"

	maxFeedbackSubject = 200
	maxFeedbackBody    = 4000
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// GetStats returns the dashboard counters.
func (service *Service) GetStats(context context.Context) (*Stats, error) {
	return service.repo.CollectStats(context)
}

// ListAccounts returns one page of the moderation list.
func (service *Service) ListAccounts(context context.Context, params pagination.Params) (*AccountPage, error) {

	accounts, total, err := service.repo.ListAccounts(context, params.Limit, params.Offset())
	if err != nil {
		return nil, err
	}

	meta := pagination.NewMeta(params.Page, params.Limit, total)
	return &AccountPage{
		Accounts:    accounts,
		TotalUsers:  total,
		TotalPages:  meta.TotalPages,
		CurrentPage: params.Page,
	}, nil
}

/*
BanAccount locks a user out. The ban is enforced at the token boundary:
already-issued tokens carry the old status until they expire, after which
every refresh re-reads the stored status.
*/
func (service *Service) BanAccount(context context.Context, actorID, userID string) error {

	if actorID == userID {
		return apperr.ValidationError("Cannot ban your own account")
	}

	if err := service.repo.SetAccountStatus(context, userID, sec.StatusBanned); err != nil {
		return err
	}

	service.logger.Warn("account_banned",
		slog.String("user_id", userID),
		slog.String("actor_id", actorID))

	return nil
}

// UnbanAccount restores a locked account.
func (service *Service) UnbanAccount(context context.Context, actorID, userID string) error {

	if err := service.repo.SetAccountStatus(context, userID, sec.StatusActive); err != nil {
		return err
	}

	service.logger.Info("account_unbanned",
		slog.String("user_id", userID),
		slog.String("actor_id", actorID))

	return nil
}

// FeedbackInput carries a reader submission.
type FeedbackInput struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SubmitFeedback records a reader report or suggestion.
func (service *Service) SubmitFeedback(context context.Context, userID string, input FeedbackInput) (*Feedback, error) {

	subject := strings.TrimSpace(input.Subject)
	body := strings.TrimSpace(input.Body)

	validator := &validate.Validator{}
	validator.Required(FieldSubject, subject)
	validator.MaxLen(FieldSubject, subject, maxFeedbackSubject)
	validator.Required(FieldBody, body)
	validator.MaxLen(FieldBody, body, maxFeedbackBody)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	feedback := &Feedback{
		ID:      uuidv7.New(),
		UserID:  userID,
		Subject: subject,
		Body:    body,
	}

	if err := service.repo.InsertFeedback(context, feedback); err != nil {
		return nil, err
	}

	service.logger.Info("feedback_submitted",
		slog.String("feedback_id", feedback.ID),
		slog.String("user_id", userID))

	return feedback, nil
}

// ListFeedback returns submissions for triage, newest first.
func (service *Service) ListFeedback(context context.Context, params pagination.Params) ([]*Feedback, pagination.Meta, error) {

	items, total, err := service.repo.ListFeedback(context, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return items, pagination.NewMeta(params.Page, params.Limit, total), nil
}
