// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package ads

import "context"

type Repository interface {
	/*
		ListActive returns active ads, optionally narrowed to a
		placement, newest first.
	*/
	ListActive(context context.Context, placement *Placement) ([]*Ad, error)

	// ListAll returns the full inventory for the admin console.
	ListAll(context context.Context) ([]*Ad, error)

	/*
		FindByID loads one ad.

		Returns:
		  - error: apperr.NotFound if absent
	*/
	FindByID(context context.Context, id string) (*Ad, error)

	// Create inserts a new ad.
	Create(context context.Context, ad *Ad) error

	/*
		Update persists changes to an ad.

		Returns:
		  - error: apperr.NotFound if absent
	*/
	Update(context context.Context, ad *Ad) error

	/*
		Delete removes an ad.

		Returns:
		  - error: apperr.NotFound if absent
	*/
	Delete(context context.Context, id string) error
}
