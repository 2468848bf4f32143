package services

import (
	"errors"

	"littlelemon/entity"
	"littlelemon/pkg/apperr"
	"littlelemon/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuService struct {
	Repo    *repository.MenuRepository
	CatRepo *repository.CategoryRepository
}

func NewMenuService(mr *repository.MenuRepository, cr *repository.CategoryRepository) *MenuService {
	return &MenuService{Repo: mr, CatRepo: cr}
}

type MenuItemIn struct {
	Title      string          `json:"title" binding:"required"`
	Price      decimal.Decimal `json:"price"`
	Featured   bool            `json:"featured"`
	CategoryID uint            `json:"categoryId" binding:"required"`
}

// MenuItemPatch carries only the fields present in the request.
type MenuItemPatch struct {
	Title      *string          `json:"title"`
	Price      *decimal.Decimal `json:"price"`
	Featured   *bool            `json:"featured"`
	CategoryID *uint            `json:"categoryId"`
}

type CategoryIn struct {
	Slug  string `json:"slug" binding:"required"`
	Title string `json:"title" binding:"required"`
}

func (s *MenuService) List(role entity.Role, f repository.MenuFilter) ([]entity.MenuItem, error) {
	if err := Decide(role, ActionMenuView, false); err != nil {
		return nil, err
	}
	return s.Repo.List(f)
}

func (s *MenuService) Get(role entity.Role, id uint) (*entity.MenuItem, error) {
	if err := Decide(role, ActionMenuView, false); err != nil {
		return nil, err
	}
	item, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("menu item %d", id)
	}
	return item, err
}

func (s *MenuService) Create(role entity.Role, in *MenuItemIn) (*entity.MenuItem, error) {
	if err := Decide(role, ActionMenuManage, false); err != nil {
		return nil, err
	}
	if err := validatePrice(in.Price); err != nil {
		return nil, err
	}
	if _, err := s.CatRepo.FindByID(in.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("category %d", in.CategoryID)
		}
		return nil, err
	}

	item := &entity.MenuItem{
		Title:      in.Title,
		Price:      in.Price,
		Featured:   in.Featured,
		CategoryID: in.CategoryID,
	}
	if err := s.Repo.Create(item); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(item.ID)
}

func (s *MenuService) Update(role entity.Role, id uint, in *MenuItemIn) (*entity.MenuItem, error) {
	if err := Decide(role, ActionMenuManage, false); err != nil {
		return nil, err
	}
	if err := validatePrice(in.Price); err != nil {
		return nil, err
	}
	item, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("menu item %d", id)
		}
		return nil, err
	}
	if _, err := s.CatRepo.FindByID(in.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("category %d", in.CategoryID)
		}
		return nil, err
	}

	item.Title = in.Title
	item.Price = in.Price
	item.Featured = in.Featured
	item.CategoryID = in.CategoryID
	item.Category = entity.Category{}
	if err := s.Repo.Update(item); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(id)
}

func (s *MenuService) Patch(role entity.Role, id uint, in *MenuItemPatch) (*entity.MenuItem, error) {
	if err := Decide(role, ActionMenuManage, false); err != nil {
		return nil, err
	}
	item, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("menu item %d", id)
		}
		return nil, err
	}

	if in.Title != nil {
		item.Title = *in.Title
	}
	if in.Price != nil {
		if err := validatePrice(*in.Price); err != nil {
			return nil, err
		}
		item.Price = *in.Price
	}
	if in.Featured != nil {
		item.Featured = *in.Featured
	}
	if in.CategoryID != nil {
		if _, err := s.CatRepo.FindByID(*in.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFoundf("category %d", *in.CategoryID)
			}
			return nil, err
		}
		item.CategoryID = *in.CategoryID
	}
	item.Category = entity.Category{}
	if err := s.Repo.Update(item); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(id)
}

func (s *MenuService) Delete(role entity.Role, id uint) error {
	if err := Decide(role, ActionMenuManage, false); err != nil {
		return err
	}
	if _, err := s.Repo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("menu item %d", id)
		}
		return err
	}
	return s.Repo.Delete(id)
}

func (s *MenuService) ListCategories(role entity.Role) ([]entity.Category, error) {
	if err := Decide(role, ActionMenuView, false); err != nil {
		return nil, err
	}
	return s.CatRepo.List()
}

func (s *MenuService) CreateCategory(role entity.Role, in *CategoryIn) (*entity.Category, error) {
	if err := Decide(role, ActionMenuManage, false); err != nil {
		return nil, err
	}
	if _, err := s.CatRepo.FindBySlug(in.Slug); err == nil {
		return nil, apperr.Conflictf("category slug %q already exists", in.Slug)
	}
	cat := &entity.Category{Slug: in.Slug, Title: in.Title}
	if err := s.CatRepo.Create(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// DeleteCategory refuses to delete a category still referenced by menu
// items (referential protection, not cascading delete).
func (s *MenuService) DeleteCategory(role entity.Role, id uint) error {
	if err := Decide(role, ActionMenuManage, false); err != nil {
		return err
	}
	if _, err := s.CatRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("category %d", id)
		}
		return err
	}
	count, err := s.CatRepo.CountMenuItems(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflictf("category %d still referenced by %d menu items", id, count)
	}
	return s.CatRepo.Delete(id)
}

func validatePrice(p decimal.Decimal) error {
	if p.IsNegative() {
		return apperr.Validationf("price must not be negative, got %s", p)
	}
	if p.Exponent() < -2 {
		return apperr.Validationf("price must have at most 2 decimal places, got %s", p)
	}
	return nil
}
