package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one (user, menu item) entry in a cart. UnitPrice is a
// snapshot of the menu price at add time; later catalog edits must not
// change it.
//
// No soft delete here: lines are destroyed for real at checkout/clear so
// the (user, menu item) unique index stays usable for re-adds.
type CartLine struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID uint `gorm:"uniqueIndex:idx_cart_user_item" json:"userId"`
	User   User `json:"-"`

	MenuItemID uint     `gorm:"uniqueIndex:idx_cart_user_item" json:"menuItemId"`
	MenuItem   MenuItem `json:"menuItem"`

	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(6,2)" json:"unitPrice"`
	LinePrice decimal.Decimal `gorm:"type:decimal(6,2)" json:"linePrice"`
}
