package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AYATON2/shoes-sub000/models"
	"github.com/AYATON2/shoes-sub000/services"
)

type OrderController struct {
	orderService *services.OrderService
}

func NewOrderController(orderService *services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// PlaceOrder handles POST /orders.
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req services.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, svcErr := oc.orderService.PlaceOrder(c.Request.Context(), actor, &req)
	if svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GetOrders handles GET /orders (role-filtered listing).
func (oc *OrderController) GetOrders(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	resp, svcErr := oc.orderService.GetOrders(c.Request.Context(), actor, page, limit)
	if svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetOrder handles GET /orders/:id.
func (oc *OrderController) GetOrder(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	order, svcErr := oc.orderService.GetOrder(c.Request.Context(), actor, orderID)
	if svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateStatus handles PUT /orders/:id.
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, svcErr := oc.orderService.UpdateStatus(c.Request.Context(), actor, orderID, req.Status)
	if svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Invoice handles GET /orders/:id/invoice.
func (oc *OrderController) Invoice(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	invoice, svcErr := oc.orderService.Invoice(c.Request.Context(), actor, orderID)
	if svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, invoice)
}
