package models

import "time"

const OrderStatusConfirmed = "confirmed"

// OrderItem is the priced snapshot taken at checkout time.
type OrderItem struct {
	ProductID string  `json:"product_id" bson:"product_id" validate:"required"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" bson:"quantity" validate:"min=1"`
	Size      string  `json:"size" bson:"size"`
	Color     string  `json:"color" bson:"color"`
}

type Order struct {
	ID            string      `json:"id" bson:"id" validate:"required,uuid"`
	UserID        string      `json:"user_id,omitempty" bson:"user_id,omitempty"`
	UserEmail     string      `json:"user_email" bson:"user_email"`
	UserName      string      `json:"user_name" bson:"user_name"`
	Items         []OrderItem `json:"items" bson:"items" validate:"dive"`
	TotalAmount   float64     `json:"total_amount" bson:"total_amount" validate:"gte=0"`
	Status        string      `json:"status" bson:"status" validate:"required"`
	PaymentStatus string      `json:"payment_status" bson:"payment_status" validate:"required"`
	SessionID     string      `json:"session_id,omitempty" bson:"session_id,omitempty"`
	CreatedAt     time.Time   `json:"created_at" bson:"created_at"`
}

type DashboardStats struct {
	TotalProducts int64   `json:"total_products"`
	TotalOrders   int64   `json:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
	RecentOrders  []Order `json:"recent_orders"`
}
