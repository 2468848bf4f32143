package controllers

import (
	"strconv"

	"littlelemon/pkg/resp"
	"littlelemon/repository"
	"littlelemon/services"
	"littlelemon/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController {
	return &OrderController{Svc: s}
}

// GET /api/orders?status=&ordering=
func (h *OrderController) List(c *gin.Context) {
	f := repository.OrderFilter{Ordering: c.Query("ordering")}
	if v := c.Query("status"); v != "" {
		status, err := strconv.ParseBool(v)
		if err != nil {
			resp.BadRequest(c, "status must be true or false")
			return
		}
		f.Status = &status
	}

	orders, err := h.Svc.List(utils.CurrentUserID(c), utils.CurrentRole(c), f)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, orders)
}

// POST /api/orders — checkout the caller's cart
func (h *OrderController) Create(c *gin.Context) {
	var req services.CheckoutIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := h.Svc.Checkout(utils.CurrentUserID(c), utils.CurrentRole(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, order)
}

// GET /api/orders/:id
func (h *OrderController) Detail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.Svc.Get(utils.CurrentUserID(c), utils.CurrentRole(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

// PUT /api/orders/:id
func (h *OrderController) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req services.UpdateOrderIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := h.Svc.Update(utils.CurrentRole(c), id, &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

// PATCH /api/orders/:id
func (h *OrderController) Patch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req services.PatchOrderIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := h.Svc.Patch(utils.CurrentUserID(c), utils.CurrentRole(c), id, &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

// DELETE /api/orders/:id
func (h *OrderController) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(utils.CurrentRole(c), id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}
