// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

/*
Package ads manages promotional placements shown around the reading
experience. Admins own the inventory; the public surface only ever sees
active ads filtered by placement.
*/
package ads

import "time"

// Placement identifies where on the site an ad slot renders.
type Placement string

const (
	PlacementHome    Placement = "home"
	PlacementCatalog Placement = "catalog"
	PlacementReading Placement = "reading"
)

// Placements lists every valid placement for validation.
func Placements() []string {
	return []string{
		string(PlacementHome),
		string(PlacementCatalog),
		string(PlacementReading),
	}
}

// Ad is one promotional creative.
type Ad struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url"`
	TargetURL string    `json:"target_url"`
	Placement Placement `json:"placement"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
