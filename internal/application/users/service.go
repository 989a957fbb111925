package users

import (
	"context"
	"errors"

	"wealthwise-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound   = errors.New("User not found")
	ErrDuplicateEmail = errors.New("Email already exists")
)

type Service struct {
	DB *gorm.DB
}

// Create inserts a user. PasswordHash may be empty: such users exist but
// cannot authenticate until a credential is attached via registration.
func (s *Service) Create(ctx context.Context, name, email, passwordHash string) (*domain.User, error) {
	var existing domain.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrDuplicateEmail
	}

	u := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	var u domain.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail includes the credential; for authentication use only.
func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
