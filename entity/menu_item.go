package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Title    string          `gorm:"index" json:"title"`
	Price    decimal.Decimal `gorm:"type:decimal(6,2);index" json:"price"`
	Featured bool            `gorm:"index" json:"featured"`

	CategoryID uint     `json:"categoryId"`
	Category   Category `json:"category"`
}
