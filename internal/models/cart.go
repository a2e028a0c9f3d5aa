package models

import "time"

type CartItem struct {
	ProductID string `json:"product_id" bson:"product_id" binding:"required" validate:"required"`
	Quantity  int    `json:"quantity" bson:"quantity" binding:"required,min=1" validate:"min=1"`
	Size      string `json:"size" bson:"size"`
	Color     string `json:"color" bson:"color"`
}

// SameLine reports whether two items collapse into one cart line.
func (i CartItem) SameLine(other CartItem) bool {
	return i.ProductID == other.ProductID && i.Size == other.Size && i.Color == other.Color
}

type Cart struct {
	ID        string     `json:"id" bson:"id" validate:"required,uuid"`
	UserID    string     `json:"user_id" bson:"user_id" validate:"required"`
	Items     []CartItem `json:"items" bson:"items" validate:"dive"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
