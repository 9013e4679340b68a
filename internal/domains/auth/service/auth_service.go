package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"artstore-backend/internal/config"
	"artstore-backend/internal/domains/auth/model"
	"artstore-backend/pkg/jwt"
	"artstore-backend/pkg/logger"
)

const adminRole = "admin"

type ServiceInterface interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
}

// authService signs in the single back-office account configured through the
// environment. There is no user table; the storefront is anonymous.
type authService struct {
	admin      config.AdminConfig
	jwtManager *jwt.Manager
}

func NewAuthService(admin config.AdminConfig, jwtManager *jwt.Manager) ServiceInterface {
	return &authService{
		admin:      admin,
		jwtManager: jwtManager,
	}
}

func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Run the hash comparison even on an email mismatch so both failure
	// paths take comparable time.
	hash := s.admin.PasswordHash
	emailMatches := strings.EqualFold(req.Email, s.admin.Email)
	if !emailMatches || hash == "" {
		hash = "$2a$10$invalidinvalidinvalidinvalidinvalidinvalidinvalidinvali"
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password))
	if err != nil || !emailMatches {
		logger.Info("Rejected admin login", map[string]interface{}{
			"email": req.Email,
		})
		return nil, model.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(adminRole, s.admin.Email, adminRole)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(adminRole)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Role:         adminRole,
	}, nil
}
