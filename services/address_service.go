package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AYATON2/shoes-sub000/models"
	"github.com/AYATON2/shoes-sub000/repository"
)

// AddressRequest is the payload for creating or updating an address.
type AddressRequest struct {
	Label      string `json:"label" binding:"omitempty,oneof=shipping billing"`
	Street     string `json:"street" binding:"required"`
	Barangay   string `json:"barangay"`
	City       string `json:"city" binding:"required"`
	Province   string `json:"province" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// AddressService manages a user's address book. Every operation is scoped
// to the acting user.
type AddressService struct {
	addressRepo repository.AddressRepository
	logger      *zap.Logger
}

func NewAddressService(addressRepo repository.AddressRepository, logger *zap.Logger) *AddressService {
	return &AddressService{
		addressRepo: addressRepo,
		logger:      logger,
	}
}

func (s *AddressService) Create(ctx context.Context, actor Actor, req *AddressRequest) (*models.Address, *ServiceError) {
	address := &models.Address{
		UserID:     actor.ID,
		Label:      req.Label,
		Street:     req.Street,
		Barangay:   req.Barangay,
		City:       req.City,
		Province:   req.Province,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		Phone:      req.Phone,
	}
	if address.Label == "" {
		address.Label = "shipping"
	}
	if address.Country == "" {
		address.Country = "PH"
	}

	if err := s.addressRepo.Create(ctx, address); err != nil {
		s.logger.Error("Failed to create address", zap.String("user_id", actor.ID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create address"}
	}
	return address, nil
}

func (s *AddressService) List(ctx context.Context, actor Actor) ([]models.Address, *ServiceError) {
	addresses, err := s.addressRepo.FindByUserID(ctx, actor.ID)
	if err != nil {
		s.logger.Error("Failed to list addresses", zap.String("user_id", actor.ID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch addresses"}
	}
	return addresses, nil
}

func (s *AddressService) Update(ctx context.Context, actor Actor, id uuid.UUID, req *AddressRequest) (*models.Address, *ServiceError) {
	address, err := s.addressRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Address not found"}
		}
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update address"}
	}
	if address.UserID != actor.ID {
		return nil, &ServiceError{StatusCode: 403, Message: "Unauthorized"}
	}

	address.Street = req.Street
	address.Barangay = req.Barangay
	address.City = req.City
	address.Province = req.Province
	address.PostalCode = req.PostalCode
	if req.Label != "" {
		address.Label = req.Label
	}
	if req.Country != "" {
		address.Country = req.Country
	}
	address.Phone = req.Phone

	if err := s.addressRepo.Update(ctx, address); err != nil {
		s.logger.Error("Failed to update address", zap.String("address_id", id.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update address"}
	}
	return address, nil
}

func (s *AddressService) Delete(ctx context.Context, actor Actor, id uuid.UUID) *ServiceError {
	affected, err := s.addressRepo.Delete(ctx, id, actor.ID)
	if err != nil {
		return &ServiceError{StatusCode: 500, Message: "Failed to delete address"}
	}
	if affected == 0 {
		return &ServiceError{StatusCode: 404, Message: "Address not found"}
	}
	return nil
}
