package services

import (
	"errors"

	"littlelemon/entity"
	"littlelemon/pkg/apperr"
	"littlelemon/repository"

	"gorm.io/gorm"
)

// GroupService manages Manager/DeliveryCrew membership. A user holds one
// role; removal from a group reverts them to customer.
type GroupService struct {
	Repo *repository.UserRepository
}

func NewGroupService(repo *repository.UserRepository) *GroupService {
	return &GroupService{Repo: repo}
}

func (s *GroupService) List(actorRole, group entity.Role) ([]entity.User, error) {
	if err := Decide(actorRole, ActionGroupManage, false); err != nil {
		return nil, err
	}
	if err := checkGroup(group); err != nil {
		return nil, err
	}
	return s.Repo.ListByRole(group)
}

func (s *GroupService) Add(actorRole, group entity.Role, email string) (*entity.User, error) {
	if err := Decide(actorRole, ActionGroupManage, false); err != nil {
		return nil, err
	}
	if err := checkGroup(group); err != nil {
		return nil, err
	}
	user, err := s.Repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("user %s", email)
		}
		return nil, err
	}
	if err := s.Repo.UpdateRole(user.ID, group); err != nil {
		return nil, err
	}
	user.Role = group
	return user, nil
}

func (s *GroupService) Remove(actorRole, group entity.Role, userID uint) error {
	if err := Decide(actorRole, ActionGroupManage, false); err != nil {
		return err
	}
	if err := checkGroup(group); err != nil {
		return err
	}
	user, err := s.Repo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("user %d", userID)
		}
		return err
	}
	if user.Role != group {
		return apperr.NotFoundf("user %d is not in group %s", userID, group)
	}
	return s.Repo.UpdateRole(userID, entity.RoleCustomer)
}

func checkGroup(group entity.Role) error {
	if group != entity.RoleManager && group != entity.RoleDeliveryCrew {
		return apperr.Validationf("unknown group %s", group)
	}
	return nil
}
