package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order.Status: false = not yet delivered, true = delivered.
// DeliveryCrewID stays nil until a manager assigns someone.
type Order struct {
	gorm.Model
	UserID uint `gorm:"index" json:"userId"`
	User   User `json:"-"`

	DeliveryCrewID *uint `gorm:"index" json:"deliveryCrewId"`
	DeliveryCrew   *User `gorm:"foreignKey:DeliveryCrewID" json:"-"`

	Status bool            `gorm:"index" json:"status"`
	Total  decimal.Decimal `gorm:"type:decimal(6,2)" json:"total"`
	Date   string          `gorm:"type:date;index" json:"date"`

	Items []OrderItem `json:"items,omitempty"`
}
