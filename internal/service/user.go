package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mkotelnikov/webstore/internal/hash"
	"github.com/mkotelnikov/webstore/internal/models"
	"github.com/mkotelnikov/webstore/internal/repo"
)

type UserService struct {
	Repo *repo.GormRepo
}

func (s *UserService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}
	return user, err
}

type ProfileUpdate struct {
	Name    *string
	Phone   *string
	Address *string
}

// UpdateProfile is a partial merge. Role, email and password are never
// touched here.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in ProfileUpdate) (*models.User, error) {
	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Phone != nil {
		fields["phone"] = *in.Phone
	}
	if in.Address != nil {
		fields["address"] = *in.Address
	}
	user, err := s.Repo.UpdateUserFields(ctx, userID, fields)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}
	return user, err
}

func (s *UserService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user", ErrNotFound)
		}
		return err
	}
	if !hash.CheckPassword(user.PasswordHash, current) {
		return fmt.Errorf("%w: current password is incorrect", ErrValidation)
	}
	pwHash, err := hash.HashPassword(next)
	if err != nil {
		return err
	}
	return s.Repo.UpdatePasswordHash(ctx, userID, pwHash)
}
