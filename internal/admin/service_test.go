// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package admin

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvtphong/fabula/internal/platform/apperr"
	"github.com/nvtphong/fabula/internal/platform/sec"
	"github.com/nvtphong/fabula/pkg/pagination"
)

type fakeRepository struct {
	accounts map[string]*Account
	feedback []*Feedback
	stats    Stats
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{accounts: make(map[string]*Account)}
}

func (f *fakeRepository) CollectStats(_ context.Context) (*Stats, error) {
	stats := f.stats
	return &stats, nil
}

func (f *fakeRepository) ListAccounts(_ context.Context, limit, offset int) ([]*Account, int, error) {
	all := make([]*Account, 0, len(f.accounts))
	for _, account := range f.accounts {
		all = append(all, account)
	}
	total := len(all)
	if offset >= total {
		return []*Account{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (f *fakeRepository) SetAccountStatus(_ context.Context, userID string, status sec.AccountStatus) error {
	account, ok := f.accounts[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	account.Status = status
	return nil
}

func (f *fakeRepository) InsertFeedback(_ context.Context, feedback *Feedback) error {
	feedback.CreatedAt = time.Now()
	f.feedback = append(f.feedback, feedback)
	return nil
}

func (f *fakeRepository) ListFeedback(_ context.Context, limit, offset int) ([]*Feedback, int, error) {
	total := len(f.feedback)
	if offset >= total {
		return []*Feedback{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return f.feedback[offset:end], total, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBanAccount_FlipsStatus(t *testing.T) {
	repo := newFakeRepository()
	repo.accounts["u1"] = &Account{ID: "u1", Status: sec.StatusActive}
	service := NewService(repo, testLogger())

	require.NoError(t, service.BanAccount(context.Background(), "admin-1", "u1"))
	assert.Equal(t, sec.StatusBanned, repo.accounts["u1"].Status)

	require.NoError(t, service.UnbanAccount(context.Background(), "admin-1", "u1"))
	assert.Equal(t, sec.StatusActive, repo.accounts["u1"].Status)
}

func TestBanAccount_SelfBanRejected(t *testing.T) {
	repo := newFakeRepository()
	repo.accounts["admin-1"] = &Account{ID: "admin-1", Status: sec.StatusActive}
	service := NewService(repo, testLogger())

	err := service.BanAccount(context.Background(), "admin-1", "admin-1")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	assert.Equal(t, sec.StatusActive, repo.accounts["admin-1"].Status)
}

func TestBanAccount_UnknownUser(t *testing.T) {
	service := NewService(newFakeRepository(), testLogger())

	err := service.BanAccount(context.Background(), "admin-1", "u404")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestSubmitFeedback_Validation(t *testing.T) {
	service := NewService(newFakeRepository(), testLogger())

	_, err := service.SubmitFeedback(context.Background(), "u1", FeedbackInput{
		Subject: "  ",
		Body:    "",
	})
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

func TestSubmitFeedback_TrimsAndStores(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo, testLogger())

	feedback, err := service.SubmitFeedback(context.Background(), "u1", FeedbackInput{
		Subject: "  Broken chapter  ",
		Body:    "Chapter 4 renders blank.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Broken chapter", feedback.Subject)
	assert.NotEmpty(t, feedback.ID)
	require.Len(t, repo.feedback, 1)
}

func TestListAccounts_Pagination(t *testing.T) {
	repo := newFakeRepository()
	for _, id := range []string{"u1", "u2", "u3"} {
		repo.accounts[id] = &Account{ID: id, Status: sec.StatusActive}
	}
	service := NewService(repo, testLogger())

	page, err := service.ListAccounts(context.Background(), pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Accounts, 2)
	assert.Equal(t, 3, page.TotalUsers)
	assert.Equal(t, 2, page.TotalPages)

	beyond, err := service.ListAccounts(context.Background(), pagination.Params{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, beyond.Accounts)
	assert.Equal(t, 3, beyond.TotalUsers)
}
