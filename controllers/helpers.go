package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AYATON2/shoes-sub000/middleware"
	"github.com/AYATON2/shoes-sub000/services"
)

// currentActor builds the explicit actor passed into every service call from
// the identity the auth middleware stored in the context.
func currentActor(c *gin.Context) (services.Actor, bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return services.Actor{}, false
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return services.Actor{}, false
	}
	return services.Actor{ID: id, Role: middleware.GetRole(c)}, true
}

// pathUUID parses a UUID path parameter, responding 422 on garbage.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// abortServiceError maps a ServiceError onto the HTTP response.
func abortServiceError(c *gin.Context, err *services.ServiceError) {
	c.JSON(err.StatusCode, gin.H{"error": err.Message})
}
