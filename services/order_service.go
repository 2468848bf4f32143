package services

import (
	"errors"
	"time"

	"littlelemon/entity"
	"littlelemon/pkg/apperr"
	"littlelemon/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	CartRepo *repository.CartRepository
	UserRepo *repository.UserRepository
}

func NewOrderService(db *gorm.DB, or *repository.OrderRepository, cr *repository.CartRepository, ur *repository.UserRepository) *OrderService {
	return &OrderService{DB: db, Repo: or, CartRepo: cr, UserRepo: ur}
}

type CheckoutIn struct {
	Date string `json:"date" binding:"required"`
}

// UpdateOrderIn is the full (PUT) update: both fields mandatory.
type UpdateOrderIn struct {
	DeliveryCrewID uint  `json:"deliveryCrewId" binding:"required"`
	Status         *bool `json:"status" binding:"required"`
}

// PatchOrderIn carries only the fields present in the request.
type PatchOrderIn struct {
	DeliveryCrewID *uint `json:"deliveryCrewId"`
	Status         *bool `json:"status"`
}

// Checkout converts the caller's cart into an order. Creating the order,
// copying every cart line into an order item and deleting the lines all
// happen in one transaction; a failure partway leaves no trace. An empty
// cart still yields a zero-item order.
func (s *OrderService) Checkout(userID uint, role entity.Role, in *CheckoutIn) (*entity.Order, error) {
	if err := Decide(role, ActionOrderCreate, true); err != nil {
		return nil, err
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return nil, apperr.Validationf("date must be a valid YYYY-MM-DD date, got %q", in.Date)
	}

	var orderID uint
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order := entity.Order{
			UserID: userID,
			Status: false,
			Total:  decimal.Zero,
			Date:   in.Date,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		var lines []entity.CartLine
		if err := tx.Where("user_id = ?", userID).Find(&lines).Error; err != nil {
			return err
		}

		total := decimal.Zero
		lineIDs := make([]uint, 0, len(lines))
		for _, line := range lines {
			lineIDs = append(lineIDs, line.ID)
			// the referenced menu item may have been deleted since add-to-cart
			var item entity.MenuItem
			if err := tx.First(&item, line.MenuItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.Txf("menu item %d vanished during checkout", line.MenuItemID)
				}
				return err
			}

			oi := entity.OrderItem{
				OrderID:    order.ID,
				MenuItemID: line.MenuItemID,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				LinePrice:  line.LinePrice,
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
			total = total.Add(line.LinePrice)
		}

		order.Total = total
		if err := s.Repo.SaveOrder(tx, &order); err != nil {
			return err
		}

		// delete by explicit IDs and insist on the count so a concurrent
		// checkout of the same cart loses instead of double-spending lines
		removed, err := s.CartRepo.ClearLines(tx, userID, lineIDs)
		if err != nil {
			return err
		}
		if removed != int64(len(lines)) {
			return apperr.Txf("cart changed during checkout: expected %d lines, removed %d", len(lines), removed)
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.FindByIDWithItems(orderID)
}

// List is role-filtered: managers see everything, delivery crew the orders
// assigned to them, customers their own.
func (s *OrderService) List(actorID uint, role entity.Role, f repository.OrderFilter) ([]entity.Order, error) {
	if err := Decide(role, ActionOrderList, true); err != nil {
		return nil, err
	}
	switch role {
	case entity.RoleManager:
		return s.Repo.ListAll(f)
	case entity.RoleDeliveryCrew:
		return s.Repo.ListByCrew(actorID, f)
	default:
		return s.Repo.ListByUser(actorID, f)
	}
}

func (s *OrderService) Get(actorID uint, role entity.Role, orderID uint) (*entity.Order, error) {
	// managers and crew are rejected before any lookup
	if err := Decide(role, ActionOrderView, true); err != nil {
		return nil, err
	}
	order, err := s.Repo.FindByIDWithItems(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("order %d", orderID)
		}
		return nil, err
	}
	if err := Decide(role, ActionOrderView, order.UserID == actorID); err != nil {
		return nil, err
	}
	return order, nil
}

// Update is the manager-only full update: assign the crew and set the
// status in one shot.
func (s *OrderService) Update(role entity.Role, orderID uint, in *UpdateOrderIn) (*entity.Order, error) {
	if err := Decide(role, ActionOrderUpdate, false); err != nil {
		return nil, err
	}
	order, err := s.Repo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("order %d", orderID)
		}
		return nil, err
	}
	if err := s.checkCrew(in.DeliveryCrewID); err != nil {
		return nil, err
	}

	crewID := in.DeliveryCrewID
	order.DeliveryCrewID = &crewID
	order.Status = *in.Status
	if err := s.save(order); err != nil {
		return nil, err
	}
	return s.Repo.FindByIDWithItems(orderID)
}

// Patch applies a partial update. Managers may touch either field; the
// assigned delivery crew may flip the status and nothing else; customers
// have no transition rights.
func (s *OrderService) Patch(actorID uint, role entity.Role, orderID uint, in *PatchOrderIn) (*entity.Order, error) {
	// customers are denied outright, before any lookup can reveal
	// whether the order exists
	if role != entity.RoleManager && role != entity.RoleDeliveryCrew {
		return nil, Decide(role, ActionOrderUpdateStatus, false)
	}

	order, err := s.Repo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("order %d", orderID)
		}
		return nil, err
	}

	switch role {
	case entity.RoleManager:
		if in.DeliveryCrewID != nil {
			if err := s.checkCrew(*in.DeliveryCrewID); err != nil {
				return nil, err
			}
			order.DeliveryCrewID = in.DeliveryCrewID
		}
		if in.Status != nil {
			order.Status = *in.Status
		}
	case entity.RoleDeliveryCrew:
		if in.DeliveryCrewID != nil {
			return nil, apperr.Forbiddenf("delivery crew may not reassign orders")
		}
		owned := order.DeliveryCrewID != nil && *order.DeliveryCrewID == actorID
		if err := Decide(role, ActionOrderUpdateStatus, owned); err != nil {
			return nil, err
		}
		if in.Status != nil {
			order.Status = *in.Status
		}
	}

	// delivered with nobody assigned is a nonsense state; refuse it
	if order.Status && order.DeliveryCrewID == nil {
		return nil, apperr.Validationf("order %d cannot be delivered without an assigned delivery crew", orderID)
	}

	if err := s.save(order); err != nil {
		return nil, err
	}
	return s.Repo.FindByIDWithItems(orderID)
}

func (s *OrderService) Delete(role entity.Role, orderID uint) error {
	if err := Decide(role, ActionOrderDelete, false); err != nil {
		return err
	}
	if _, err := s.Repo.FindByID(orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("order %d", orderID)
		}
		return err
	}
	return s.Repo.Delete(orderID)
}

func (s *OrderService) save(order *entity.Order) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.SaveOrder(tx, order)
	})
}

// checkCrew verifies the assignee exists and actually holds the
// delivery crew role.
func (s *OrderService) checkCrew(crewID uint) error {
	crew, err := s.UserRepo.FindByID(crewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("user %d", crewID)
		}
		return err
	}
	if crew.Role != entity.RoleDeliveryCrew {
		return apperr.Validationf("user %d is not delivery crew", crewID)
	}
	return nil
}
