package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Order struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Date       time.Time            `bson:"date" json:"date"`
	ProductIDs []primitive.ObjectID `bson:"productIds" json:"productIds"`
	Total      float64              `bson:"total" json:"total"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt" json:"updatedAt"`

	// Populated by the service layer, never stored. Products whose ids no
	// longer resolve are dropped from this slice.
	Products []Product `bson:"-" json:"products,omitempty"`
}

type CreateOrderRequest struct {
	Date       *time.Time `json:"date,omitempty"`
	ProductIDs []string   `json:"productIds" validate:"required,min=1"`
	Total      float64    `json:"total" validate:"gte=0"`
}

type UpdateOrderRequest struct {
	Date       *time.Time `json:"date,omitempty"`
	ProductIDs *[]string  `json:"productIds,omitempty"`
	Total      *float64   `json:"total,omitempty" validate:"omitempty,gte=0"`
}
