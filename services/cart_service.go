package services

import (
	"errors"

	"littlelemon/entity"
	"littlelemon/pkg/apperr"
	"littlelemon/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartService struct {
	DB       *gorm.DB
	Repo     *repository.CartRepository
	MenuRepo *repository.MenuRepository
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, mr *repository.MenuRepository) *CartService {
	return &CartService{DB: db, Repo: cr, MenuRepo: mr}
}

type AddToCartIn struct {
	MenuItemID uint `json:"menuItemId" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required"`
}

func (s *CartService) List(userID uint, role entity.Role) ([]entity.CartLine, decimal.Decimal, error) {
	if err := Decide(role, ActionCartUse, true); err != nil {
		return nil, decimal.Zero, err
	}
	lines, err := s.Repo.ListByUser(userID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LinePrice)
	}
	return lines, subtotal, nil
}

// Add snapshots the current menu price into the line. A line already in
// the cart for the same item gets its quantity replaced and the snapshot
// refreshed (documented upsert choice).
func (s *CartService) Add(userID uint, role entity.Role, in *AddToCartIn) (*entity.CartLine, error) {
	if err := Decide(role, ActionCartUse, true); err != nil {
		return nil, err
	}
	if in.Quantity <= 0 {
		return nil, apperr.Validationf("quantity must be a positive integer, got %d", in.Quantity)
	}

	item, err := s.MenuRepo.FindByID(in.MenuItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("menu item %d", in.MenuItemID)
		}
		return nil, err
	}

	line := &entity.CartLine{
		UserID:     userID,
		MenuItemID: item.ID,
		Quantity:   in.Quantity,
		UnitPrice:  item.Price,
		LinePrice:  item.Price.Mul(decimal.NewFromInt(int64(in.Quantity))),
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.Upsert(tx, line)
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

func (s *CartService) Clear(userID uint, role entity.Role) error {
	if err := Decide(role, ActionCartUse, true); err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.Clear(tx, userID)
	})
}
