package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/justsurfingit/trackjob/internal/auth"
	"github.com/justsurfingit/trackjob/internal/dtos"
	"github.com/justsurfingit/trackjob/internal/models"
	"gorm.io/gorm"
)

type UserService struct {
	DB     *gorm.DB
	Tokens *auth.TokenIssuer
}

func NewUserService(db *gorm.DB, tokens *auth.TokenIssuer) *UserService {
	return &UserService{DB: db, Tokens: tokens}
}

func (s *UserService) Register(ctx context.Context, req *dtos.RegisterRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)
	taken, err := s.emailTaken(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Name: strings.TrimSpace(req.Name), Email: email, PasswordHash: hash}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login checks the credentials and issues a bearer token.
func (s *UserService) Login(ctx context.Context, req *dtos.LoginRequest) (*dtos.LoginResponse, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", normalizeEmail(req.Email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &dtos.LoginResponse{Token: token, User: user}, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile changes name and email, and the password when a new one is
// given together with the current one.
func (s *UserService) UpdateProfile(ctx context.Context, id uint, req *dtos.UpdateProfileRequest) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	if email != user.Email {
		taken, err := s.emailTaken(ctx, email, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}

	updates := map[string]interface{}{
		"name":  strings.TrimSpace(req.Name),
		"email": email,
	}
	if req.NewPassword != "" {
		if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
			return nil, ErrWrongPassword
		}
		hash, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = hash
	}

	if err := s.DB.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *UserService) emailTaken(ctx context.Context, email string, except uint) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("email = ? AND id <> ?", email, except).
		Count(&count).Error
	return count > 0, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
