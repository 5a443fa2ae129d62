// Package service implements the application's business rules on top of the
// repository layer.
package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Token issuer/audience validated by the auth middleware.
const (
	TokenIssuer   = "quill-api"
	TokenAudience = "quill-client"
)

type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret string
}

type SignUpInput struct {
	Username string
	Email    string
	Password string
}

type SignInInput struct {
	Email    string
	Password string
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

// SignUp creates a new account with a hashed password. The email must not
// already exist; the role is always USER regardless of the request.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*models.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, models.NewValidationError("Username, email, and password are required")
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashed),
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// SignIn verifies credentials and issues a signed bearer token. An unknown
// email and a wrong password are indistinguishable to the caller.
func (s *AuthService) SignIn(ctx context.Context, in SignInInput) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, models.NewUnauthorizedError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return "", nil, models.NewUnauthorizedError("Invalid credentials")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, models.NewInternalError(err)
	}

	return token, user, nil
}

// generateToken creates a JWT carrying the user's identity claims.
func (s *AuthService) generateToken(user *models.User) (string, error) {
	if s.jwtSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10), // Subject (user ID as string)
		"email":    user.Email,
		"username": user.Username,
		"role":     string(user.Role),
		"iss":      TokenIssuer,
		"aud":      TokenAudience,
		"exp":      now.Add(time.Hour * 24 * 7).Unix(), // Expiration (7 days)
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
