package repository

import (
	"littlelemon/entity"

	"gorm.io/gorm"
)

type MenuRepository struct{ DB *gorm.DB }

func NewMenuRepository(db *gorm.DB) *MenuRepository { return &MenuRepository{DB: db} }

// MenuFilter mirrors the list endpoint's query params.
type MenuFilter struct {
	CategorySlug string
	Featured     *bool
	Search       string
	Ordering     string // "price" or "title"
}

func (r *MenuRepository) List(f MenuFilter) ([]entity.MenuItem, error) {
	q := r.DB.Preload("Category")
	if f.CategorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = menu_items.category_id").
			Where("categories.slug = ?", f.CategorySlug)
	}
	if f.Featured != nil {
		q = q.Where("featured = ?", *f.Featured)
	}
	if f.Search != "" {
		q = q.Where("menu_items.title LIKE ?", "%"+f.Search+"%")
	}
	switch f.Ordering {
	case "price":
		q = q.Order("price")
	case "title":
		q = q.Order("menu_items.title")
	}

	var items []entity.MenuItem
	err := q.Find(&items).Error
	return items, err
}

func (r *MenuRepository) FindByID(id uint) (*entity.MenuItem, error) {
	var item entity.MenuItem
	if err := r.DB.Preload("Category").First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *MenuRepository) Create(item *entity.MenuItem) error {
	return r.DB.Create(item).Error
}

func (r *MenuRepository) Update(item *entity.MenuItem) error {
	return r.DB.Save(item).Error
}

func (r *MenuRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.MenuItem{}, id).Error
}
