package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AYATON2/shoes-sub000/services"
)

type CartController struct {
	cartService *services.CartService
}

func NewCartController(cartService *services.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// Get handles GET /cart.
func (cc *CartController) Get(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	cart, svcErr := cc.cartService.Get(c.Request.Context(), actor)
	if svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// PutItem handles PUT /cart/items.
func (cc *CartController) PutItem(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req struct {
		SKUID    uuid.UUID `json:"sku_id" binding:"required"`
		Quantity int       `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	cart, svcErr := cc.cartService.PutItem(c.Request.Context(), actor, req.SKUID, req.Quantity)
	if svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// RemoveItem handles DELETE /cart/items/:id.
func (cc *CartController) RemoveItem(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	skuID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	cart, svcErr := cc.cartService.RemoveItem(c.Request.Context(), actor, skuID)
	if svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// Clear handles DELETE /cart.
func (cc *CartController) Clear(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	if svcErr := cc.cartService.Clear(c.Request.Context(), actor); svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
