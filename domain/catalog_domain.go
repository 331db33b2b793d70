package domain

import (
	"errors"
)

var (
	MessageSuccessGetTags        = "success get tags"
	MessageSuccessGetIngredients = "success get ingredients"
	MessageSuccessCreateTag      = "tag created successfully"
	MessageSuccessCreateIngred   = "ingredient created successfully"
	MessageFailedGetTags         = "failed to get tags"
	MessageFailedGetIngredients  = "failed to get ingredients"
	MessageFailedCreateTag       = "failed to create tag"
	MessageFailedCreateIngred    = "failed to create ingredient"

	ErrTagNotFound        = errors.New("tag not found")
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrTagExists          = errors.New("tag already exists")
	ErrIngredientExists   = errors.New("ingredient already exists")
)

type (
	CreateTagRequest struct {
		Name string `json:"name" validate:"required,max=32"`
		Slug string `json:"slug" validate:"required,max=32"`
	}

	CreateIngredientRequest struct {
		Name            string `json:"name" validate:"required,max=128"`
		MeasurementUnit string `json:"measurement_unit" validate:"required,max=64"`
	}

	TagResponse struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Slug string `json:"slug"`
	}

	IngredientResponse struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}
)
