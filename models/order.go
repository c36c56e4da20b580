package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentMode string

const (
	PaymentModeCOD      PaymentMode = "COD"
	PaymentModeTransfer PaymentMode = "TRANSFER"
)

const (
	OrderStatusPending   = "PENDING"
	OrderStatusCompleted = "COMPLETED"
)

type Order struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          string    `gorm:"index;not null" json:"user_id"`
	CustomerName    string    `gorm:"not null" json:"customer_name"`
	CustomerAddress string    `gorm:"not null" json:"customer_address"`
	TotalAmount     int       `gorm:"not null" json:"total_amount"`
	PaymentMode     string    `gorm:"type:varchar(20);not null" json:"payment_mode"`
	PaymentRef      string    `json:"payment_ref,omitempty"`
	Status          string    `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	CompletedAt     *time.Time
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"-"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	Items           []OrderItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ProductID string    `gorm:"not null" json:"product_id"`
	Title     string    `json:"title"`
	Price     int       `gorm:"not null" json:"price"`
	Quantity  int       `gorm:"not null" json:"quantity"`
}

// OrderEvent is published to Kafka once an order is finalized.
type OrderEvent struct {
	Event       string    `json:"event"` // "order.finalized" | "order.completed"
	OrderID     string    `json:"order_id"`
	UserID      string    `json:"user_id"`
	TotalAmount int       `json:"total_amount"`
	PaymentMode string    `json:"payment_mode"`
	Timestamp   time.Time `json:"timestamp"`
}
