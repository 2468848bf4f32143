package repository

import (
	"littlelemon/entity"

	"gorm.io/gorm"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

// OrderFilter mirrors the list endpoint's query params.
type OrderFilter struct {
	Status   *bool
	Ordering string // "date" or "total"
}

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) SaveOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Save(o).Error
}

func (r *OrderRepository) FindByID(id uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) FindByIDWithItems(id uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Preload("Items").First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) ListAll(f OrderFilter) ([]entity.Order, error) {
	return r.list(r.DB, f)
}

func (r *OrderRepository) ListByUser(userID uint, f OrderFilter) ([]entity.Order, error) {
	return r.list(r.DB.Where("user_id = ?", userID), f)
}

func (r *OrderRepository) ListByCrew(crewID uint, f OrderFilter) ([]entity.Order, error) {
	return r.list(r.DB.Where("delivery_crew_id = ?", crewID), f)
}

func (r *OrderRepository) list(q *gorm.DB, f OrderFilter) ([]entity.Order, error) {
	q = q.Preload("Items")
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	switch f.Ordering {
	case "date":
		q = q.Order("date")
	case "total":
		q = q.Order("total")
	}

	var orders []entity.Order
	err := q.Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) GetItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Where("order_id = ?", orderID).Find(&items).Error
	return items, err
}

// Delete removes the order and its items together.
func (r *OrderRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&entity.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Order{}, id).Error
	})
}
