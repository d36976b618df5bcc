package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AYATON2/shoes-sub000/services"
)

type AddressController struct {
	addressService *services.AddressService
}

func NewAddressController(addressService *services.AddressService) *AddressController {
	return &AddressController{addressService: addressService}
}

// Create handles POST /addresses.
func (ac *AddressController) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req services.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	address, svcErr := ac.addressService.Create(c.Request.Context(), actor, &req)
	if svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, address)
}

// List handles GET /addresses.
func (ac *AddressController) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	addresses, svcErr := ac.addressService.List(c.Request.Context(), actor)
	if svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

// Update handles PUT /addresses/:id.
func (ac *AddressController) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	address, svcErr := ac.addressService.Update(c.Request.Context(), actor, id, &req)
	if svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, address)
}

// Delete handles DELETE /addresses/:id.
func (ac *AddressController) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if svcErr := ac.addressService.Delete(c.Request.Context(), actor, id); svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}
