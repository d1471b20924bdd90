package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/M0steK/taxifleet-manager/internal/model"
	"github.com/M0steK/taxifleet-manager/internal/repository"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// PasswordHasher is the external credential collaborator; this service never
// sees how hashes are produced or verified.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type UserService struct {
	userRepo *repository.UserRepository
	hasher   PasswordHasher
}

func NewUserService(userRepo *repository.UserRepository, hasher PasswordHasher) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

type CreateUserInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	PhoneNumber *string
	Role        string
}

func (s *UserService) Create(ctx context.Context, principal model.Principal, input CreateUserInput) (*model.User, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	if input.FirstName == "" || input.LastName == "" || input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: missing required fields", ErrInvalidInput)
	}
	if !emailPattern.MatchString(input.Email) {
		return nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if len(input.Password) < 7 {
		return nil, fmt.Errorf("%w: password must be at least 7 characters", ErrInvalidInput)
	}
	role := model.UserRole(input.Role)
	if role != model.UserRoleAdmin && role != model.UserRoleDriver {
		return nil, fmt.Errorf("%w: unknown role", ErrInvalidInput)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		CompanyID:    principal.CompanyID,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
		PhoneNumber:  input.PhoneNumber,
		Role:         role,
		Status:       model.UserStatusActive,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: user with this email already exists", ErrConflict)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, principal model.Principal) ([]model.User, error) {
	return s.userRepo.ListByCompany(ctx, principal.CompanyID)
}

func (s *UserService) Get(ctx context.Context, principal model.Principal, id string) (*model.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.GetInCompany(ctx, userID, principal.CompanyID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}
	return user, nil
}

type UpdateUserInput struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Role        *string
	Status      *string
}

func (s *UserService) Update(ctx context.Context, principal model.Principal, id string, input UpdateUserInput) (*model.User, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	user, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = input.PhoneNumber
	}
	if input.Role != nil {
		role := model.UserRole(*input.Role)
		if role != model.UserRoleAdmin && role != model.UserRoleDriver {
			return nil, fmt.Errorf("%w: unknown role", ErrInvalidInput)
		}
		user.Role = role
	}
	if input.Status != nil {
		status := model.UserStatus(*input.Status)
		switch status {
		case model.UserStatusPending, model.UserStatusActive, model.UserStatusRejected:
			user.Status = status
		default:
			return nil, fmt.Errorf("%w: unknown status", ErrInvalidInput)
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, principal model.Principal, id string) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}

	user, err := s.Get(ctx, principal, id)
	if err != nil {
		return err
	}

	affected, err := s.userRepo.Delete(ctx, user.ID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: user not found", ErrNotFound)
	}
	return nil
}
