package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mkotelnikov/webstore/internal/auth"
	"github.com/mkotelnikov/webstore/internal/events"
	"github.com/mkotelnikov/webstore/internal/hash"
	"github.com/mkotelnikov/webstore/internal/logging"
	"github.com/mkotelnikov/webstore/internal/models"
	"github.com/mkotelnikov/webstore/internal/repo"
)

type AuthService struct {
	Repo     *repo.GormRepo
	Tokens   *auth.Manager
	Producer events.Producer
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
}

type Session struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	taken, err := s.Repo.EmailTaken(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		l.Warn("register_rejected", "reason", "duplicate email")
		return nil, fmt.Errorf("%w: email is already registered", ErrConflict)
	}

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: pwHash,
		Role:         models.RoleUser,
		Phone:        in.Phone,
		Address:      in.Address,
		IsActive:     true,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	token, exp, err := s.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	event := map[string]any{
		"type":    "user_registered",
		"user_id": user.ID,
		"email":   user.Email,
	}
	if err := s.Producer.Publish(ctx, events.TopicUserEvents, fmt.Sprint(user.ID), event); err != nil {
		l.Error("event_publish_failed", "error", err)
	}

	l.Info("user_registered", "user_id", user.ID)
	return &Session{User: user, Token: token, ExpiresAt: exp}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// same answer as a wrong password, no enumeration signal
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		l.Warn("login_rejected", "reason", "account disabled", "user_id", user.ID)
		return nil, ErrAccountDisabled
	}

	now := time.Now()
	if err := s.Repo.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	token, exp, err := s.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	event := map[string]any{
		"type":    "user_logged_in",
		"user_id": user.ID,
	}
	if err := s.Producer.Publish(ctx, events.TopicUserEvents, fmt.Sprint(user.ID), event); err != nil {
		l.Error("event_publish_failed", "error", err)
	}

	l.Info("user_logged_in", "user_id", user.ID)
	return &Session{User: user, Token: token, ExpiresAt: exp}, nil
}
