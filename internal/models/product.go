package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64              `bson:"price" json:"price"`
	CategoryIDs []primitive.ObjectID `bson:"categoryIds" json:"categoryIds"`
	ImageURL    string               `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`

	// Populated by the service layer, never stored.
	Categories []Category `bson:"-" json:"categories,omitempty"`
}

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price" validate:"gte=0"`
	CategoryIDs []string `json:"categoryIds,omitempty" validate:"omitempty,dive,required"`
	ImageURL    string   `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

type UpdateProductRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	CategoryIDs *[]string `json:"categoryIds,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty" validate:"omitempty,url"`
}
