package models

import "time"

// Product is a catalog entry. Stock is decremented when a paid checkout is
// finalized and must never drop below zero.
type Product struct {
	ID          string    `json:"id" bson:"id" validate:"required,uuid"`
	Name        string    `json:"name" bson:"name" validate:"required"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price" validate:"gte=0"`
	Category    string    `json:"category" bson:"category"`
	Size        string    `json:"size" bson:"size"`
	Color       string    `json:"color" bson:"color"`
	Stock       int       `json:"stock" bson:"stock" validate:"gte=0"`
	ImageURL    string    `json:"image_url" bson:"image_url"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// ProductInput is the writable part of a product, shared by create and
// full-record update.
type ProductInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"gte=0"`
	Category    string  `json:"category" binding:"required"`
	Size        string  `json:"size"`
	Color       string  `json:"color"`
	Stock       int     `json:"stock" binding:"gte=0"`
	ImageURL    string  `json:"image_url"`
}

type ImageUploadRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

type ImageUploadResponse struct {
	UploadURL string            `json:"upload_url"`
	Headers   map[string]string `json:"headers,omitempty"`
	Key       string            `json:"key"`
	ImageURL  string            `json:"image_url"`
}
