// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package ads

import (
	"context"
	"log/slog"

	"github.com/nvtphong/fabula/internal/platform/validate"
	"github.com/nvtphong/fabula/pkg/uuidv7"
)

// Field names used in validation messages.
const (
	FieldTitle     = "title"
	FieldImageURL  = "image_url"
	FieldPlacement = "placement"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
ListActive returns the public ad feed. An unknown placement is rejected
rather than silently returning everything.
*/
func (service *Service) ListActive(context context.Context, placement string) ([]*Ad, error) {

	var filter *Placement
	if placement != "" {
		validator := &validate.Validator{}
		validator.OneOf(FieldPlacement, placement, Placements()...)
		if err := validator.Err(); err != nil {
			return nil, err
		}
		p := Placement(placement)
		filter = &p
	}

	return service.repo.ListActive(context, filter)
}

func (service *Service) ListAll(context context.Context) ([]*Ad, error) {
	return service.repo.ListAll(context)
}

func (service *Service) GetAd(context context.Context, id string) (*Ad, error) {
	return service.repo.FindByID(context, id)
}

// WriteInput carries admin create/update payloads.
type WriteInput struct {
	Title     string `json:"title"`
	ImageURL  string `json:"image_url"`
	TargetURL string `json:"target_url"`
	Placement string `json:"placement"`
	IsActive  bool   `json:"is_active"`
}

func (input WriteInput) validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title)
	validator.Required(FieldImageURL, input.ImageURL)
	validator.OneOf(FieldPlacement, input.Placement, Placements()...)
	return validator.Err()
}

func (service *Service) CreateAd(context context.Context, input WriteInput) (*Ad, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	ad := &Ad{
		ID:        uuidv7.New(),
		Title:     input.Title,
		ImageURL:  input.ImageURL,
		TargetURL: input.TargetURL,
		Placement: Placement(input.Placement),
		IsActive:  input.IsActive,
	}

	if err := service.repo.Create(context, ad); err != nil {
		return nil, err
	}

	service.logger.Info("ad_created",
		slog.String("ad_id", ad.ID),
		slog.String("placement", string(ad.Placement)))

	return ad, nil
}

func (service *Service) UpdateAd(context context.Context, id string, input WriteInput) (*Ad, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	ad, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	ad.Title = input.Title
	ad.ImageURL = input.ImageURL
	ad.TargetURL = input.TargetURL
	ad.Placement = Placement(input.Placement)
	ad.IsActive = input.IsActive

	if err := service.repo.Update(context, ad); err != nil {
		return nil, err
	}

	return ad, nil
}

func (service *Service) DeleteAd(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("ad_deleted", slog.String("ad_id", id))
	return nil
}
