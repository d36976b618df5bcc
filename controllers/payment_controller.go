package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AYATON2/shoes-sub000/services"
)

type PaymentController struct {
	paymentService *services.PaymentService
}

func NewPaymentController(paymentService *services.PaymentService) *PaymentController {
	return &PaymentController{paymentService: paymentService}
}

// Verify handles PUT /payments/:id/verify.
func (pc *PaymentController) Verify(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	paymentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	payment, svcErr := pc.paymentService.Verify(c.Request.Context(), actor, paymentID, req.Status)
	if svcErr != nil {
		abortServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, payment)
}
