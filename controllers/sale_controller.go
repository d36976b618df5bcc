package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AYATON2/shoes-sub000/services"
)

type SaleController struct {
	saleService *services.SaleService
}

func NewSaleController(saleService *services.SaleService) *SaleController {
	return &SaleController{saleService: saleService}
}

// Create handles POST /sales.
func (sc *SaleController) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req services.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	sale, svcErr := sc.saleService.Create(c.Request.Context(), actor, &req)
	if svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// ListForProduct handles GET /products/:id/sales (public).
func (sc *SaleController) ListForProduct(c *gin.Context) {
	productID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	sales, svcErr := sc.saleService.ListForProduct(c.Request.Context(), productID)
	if svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales": sales})
}

// Activate handles PUT /sales/:id/activate.
func (sc *SaleController) Activate(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	saleID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	sale, svcErr := sc.saleService.Activate(c.Request.Context(), actor, saleID)
	if svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, sale)
}

// Deactivate handles PUT /sales/:id/deactivate.
func (sc *SaleController) Deactivate(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	saleID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	sale, svcErr := sc.saleService.Deactivate(c.Request.Context(), actor, saleID)
	if svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, sale)
}

// Delete handles DELETE /sales/:id.
func (sc *SaleController) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	saleID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if svcErr := sc.saleService.Delete(c.Request.Context(), actor, saleID); svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sale deleted"})
}
