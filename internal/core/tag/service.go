// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package tag

import (
	"context"
	"log/slog"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListTags(context context.Context) ([]*Tag, error) {
	return service.repo.ListTags(context)
}

func (service *Service) GetTagBySlug(context context.Context, slug string) (*Tag, error) {
	return service.repo.GetTagBySlug(context, slug)
}
