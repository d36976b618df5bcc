package services

import (
	"github.com/google/uuid"
)

// ServiceError represents a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// Actor is the authenticated caller, passed explicitly into every service
// operation. No ambient auth state below the controller layer.
type Actor struct {
	ID   uuid.UUID
	Role string
}
