package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AYATON2/shoes-sub000/models"
	"github.com/AYATON2/shoes-sub000/repository"
)

// UserListResponse is a paginated user listing.
type UserListResponse struct {
	Users []models.User `json:"users"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// UserService covers the admin user-management surface. Registration and
// session issuance live in the identity provider, not here.
type UserService struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateUserRequest is the admin user-provisioning payload.
type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Name      string `json:"name" binding:"required"`
	StoreName string `json:"store_name"`
	Role      string `json:"role" binding:"required"`
}

// Create provisions a user with a bcrypt-hashed password.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*models.User, *ServiceError) {
	if !models.ValidRole(req.Role) {
		return nil, &ServiceError{StatusCode: 422, Message: "Invalid role"}
	}

	user := &models.User{
		Email:     req.Email,
		Name:      req.Name,
		StoreName: req.StoreName,
		Role:      req.Role,
	}
	if err := user.SetPassword(req.Password); err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create user"}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.String("email", req.Email), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create user"}
	}

	s.logger.Info("User created", zap.String("user_id", user.ID.String()), zap.String("role", user.Role))
	return user, nil
}

func (s *UserService) List(ctx context.Context, page, limit int) (*UserListResponse, *ServiceError) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := s.userRepo.FindAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch users"}
	}
	return &UserListResponse{Users: users, Total: total, Page: page, Limit: limit}, nil
}

// UpdateRole changes a user's role.
func (s *UserService) UpdateRole(ctx context.Context, id uuid.UUID, role string) *ServiceError {
	if !models.ValidRole(role) {
		return &ServiceError{StatusCode: 422, Message: "Invalid role"}
	}

	affected, err := s.userRepo.UpdateRole(ctx, id, role)
	if err != nil {
		s.logger.Error("Failed to update role", zap.String("user_id", id.String()), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to update role"}
	}
	if affected == 0 {
		return &ServiceError{StatusCode: 404, Message: "User not found"}
	}

	s.logger.Info("User role updated", zap.String("user_id", id.String()), zap.String("role", role))
	return nil
}
