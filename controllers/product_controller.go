package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AYATON2/shoes-sub000/services"
)

type ProductController struct {
	productService *services.ProductService
}

func NewProductController(productService *services.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// List handles GET /products (public).
func (pc *ProductController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	category := c.Query("category")

	resp, svcErr := pc.productService.List(c.Request.Context(), category, page, limit)
	if svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /products/:id (public).
func (pc *ProductController) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	product, svcErr := pc.productService.Get(c.Request.Context(), id)
	if svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, product)
}

// ListMine handles GET /seller/products, the acting seller's own catalog.
func (pc *ProductController) ListMine(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	resp, svcErr := pc.productService.ListBySeller(c.Request.Context(), actor.ID, page, limit)
	if svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create handles POST /products.
func (pc *ProductController) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	product, svcErr := pc.productService.Create(c.Request.Context(), actor, &req)
	if svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// Update handles PUT /products/:id.
func (pc *ProductController) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	product, svcErr := pc.productService.Update(c.Request.Context(), actor, id, &req)
	if svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /products/:id.
func (pc *ProductController) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if svcErr := pc.productService.Delete(c.Request.Context(), actor, id); svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// CreateSKU handles POST /products/:id/skus.
func (pc *ProductController) CreateSKU(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	productID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.CreateSKURequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	sku, svcErr := pc.productService.CreateSKU(c.Request.Context(), actor, productID, &req)
	if svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, sku)
}

// SetSKUStock handles PUT /skus/:id/stock.
func (pc *ProductController) SetSKUStock(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	skuID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Stock *int `json:"stock" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	sku, svcErr := pc.productService.SetSKUStock(c.Request.Context(), actor, skuID, *req.Stock)
	if svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, sku)
}

// DeleteSKU handles DELETE /skus/:id.
func (pc *ProductController) DeleteSKU(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	skuID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if svcErr := pc.productService.DeleteSKU(c.Request.Context(), actor, skuID); svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "SKU deleted"})
}
