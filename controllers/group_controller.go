package controllers

import (
	"littlelemon/entity"
	"littlelemon/pkg/resp"
	"littlelemon/services"
	"littlelemon/utils"

	"github.com/gin-gonic/gin"
)

type GroupController struct{ Svc *services.GroupService }

func NewGroupController(s *services.GroupService) *GroupController {
	return &GroupController{Svc: s}
}

type addGroupMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// GET /api/groups/{manager|delivery-crew}/users
func (h *GroupController) List(group entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := h.Svc.List(utils.CurrentRole(c), group)
		if err != nil {
			resp.Error(c, err)
			return
		}
		out := make([]gin.H, 0, len(users))
		for _, u := range users {
			out = append(out, gin.H{"id": u.ID, "email": u.Email, "firstName": u.FirstName, "lastName": u.LastName})
		}
		resp.OK(c, out)
	}
}

// POST /api/groups/{manager|delivery-crew}/users
func (h *GroupController) Add(group entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addGroupMemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			resp.BadRequest(c, err.Error())
			return
		}
		user, err := h.Svc.Add(utils.CurrentRole(c), group, req.Email)
		if err != nil {
			resp.Error(c, err)
			return
		}
		resp.Created(c, gin.H{"id": user.ID, "email": user.Email, "role": user.Role})
	}
}

// DELETE /api/groups/{manager|delivery-crew}/users/:id
func (h *GroupController) Remove(group entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := h.Svc.Remove(utils.CurrentRole(c), group, id); err != nil {
			resp.Error(c, err)
			return
		}
		resp.OK(c, gin.H{"removed": id})
	}
}
