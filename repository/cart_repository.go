package repository

import (
	"errors"

	"littlelemon/entity"

	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

func (r *CartRepository) ListByUser(userID uint) ([]entity.CartLine, error) {
	var lines []entity.CartLine
	err := r.DB.Preload("MenuItem").Preload("MenuItem.Category").
		Where("user_id = ?", userID).
		Find(&lines).Error
	return lines, err
}

// Upsert writes the line for (user, menu item). An existing line gets its
// quantity replaced and the price snapshot refreshed rather than erroring
// on the unique index.
func (r *CartRepository) Upsert(tx *gorm.DB, line *entity.CartLine) error {
	var exist entity.CartLine
	err := tx.Where("user_id = ? AND menu_item_id = ?", line.UserID, line.MenuItemID).
		First(&exist).Error
	if err == nil {
		exist.Quantity = line.Quantity
		exist.UnitPrice = line.UnitPrice
		exist.LinePrice = line.LinePrice
		return tx.Save(&exist).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return tx.Create(line).Error
}

// Clear is idempotent: deleting an already-empty cart succeeds.
func (r *CartRepository) Clear(tx *gorm.DB, userID uint) error {
	return tx.Where("user_id = ?", userID).Delete(&entity.CartLine{}).Error
}

// ClearLines deletes exactly the given lines and reports how many rows
// actually went away. A caller that read the lines earlier in the same
// transaction can compare the count to detect a concurrent consumer: on
// postgres a racing transaction's delete re-evaluates after the winner
// commits and comes back short.
func (r *CartRepository) ClearLines(tx *gorm.DB, userID uint, lineIDs []uint) (int64, error) {
	if len(lineIDs) == 0 {
		return 0, nil
	}
	res := tx.Where("user_id = ? AND id IN ?", userID, lineIDs).Delete(&entity.CartLine{})
	return res.RowsAffected, res.Error
}
