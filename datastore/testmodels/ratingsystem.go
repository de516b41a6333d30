/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package testmodels holds models shared by the datastore tests.
package testmodels

import (
	"github.com/go-openapi/strfmt"
	"github.com/suparena/apibind/registry"
	"github.com/suparena/apibind/validation"
)

type RatingSystem struct {

	// Timestamp when the rating system was created.
	// Required: true
	// Format: date-time
	CreatedAt *strfmt.DateTime `api:"createdAt,auto" validate:"required"`

	// A description of the rating system.
	Description *string `api:"description,auto"`

	// Unique identifier for the rating system.
	// Required: true
	ID *string `api:"id,auto" validate:"required"`

	// Name of the rating system.
	// Required: true
	Name *string `api:"name,auto" validate:"required,minlen=3"`

	// site Url
	SiteURL string `api:"siteUrl,auto" validate:"format=uri"`

	// Timestamp when the rating system was last updated.
	// Format: date-time
	UpdatedAt *strfmt.DateTime `api:"updatedAt,auto"`
}

// RatingRecord is a player's rating within a RatingSystem.
type RatingRecord struct {
	SystemID string  `api:"systemId,auto"`
	PlayerID string  `api:"playerId,auto"`
	Rating   float64 `api:"rating,auto" validate:"min=0"`
	Games    int     `api:"games,auto"`
}

func init() {
	registry.RegisterTags[RatingSystem]()
	registry.RegisterModelType[RatingSystem]("RatingSystem")
	registry.RegisterIndexMap[RatingSystem](map[string]string{
		"PK": "RS#{id}",
		"SK": "RS#{id}",
	})
	registry.Configure[RatingSystem](registry.AutoDeserialize(), registry.AutoValidate(validation.Tags()))

	registry.RegisterTags[RatingRecord]()
	registry.RegisterModelType[RatingRecord]("RatingRecord")
	registry.RegisterIndexMap[RatingRecord](map[string]string{
		"PK":  "RS#{systemId}",
		"SK":  "PLAYER#{playerId}",
		"PK1": "PLAYER#{playerId}",
		"SK1": "RS#{systemId}",
	})
	registry.Configure[RatingRecord](registry.AutoValidate(validation.Tags()))
}
