package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pasofino/store-backend/internal/config"
	"github.com/pasofino/store-backend/internal/dto"
	"github.com/pasofino/store-backend/internal/models"
	"github.com/pasofino/store-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetTokenPurpose = "password_reset"

type AuthService struct {
	repo *repository.Repository
	cfg  *config.Config
}

func NewAuthService(repo *repository.Repository, cfg *config.Config) *AuthService {
	return &AuthService{repo: repo, cfg: cfg}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}
	if req.Password != req.PasswordConfirmation {
		return nil, ErrPasswordMismatch
	}

	if taken, err := s.repo.Users.ExistsByEmail(ctx, req.Email); err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	} else if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:         uuid.New(),
		Username:   strings.TrimSpace(req.Username),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Password:   string(hash),
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		IsActive:   true,
		DateJoined: time.Now().UTC(),
	}

	if err := s.repo.Users.Create(ctx, user); err != nil {
		// The unique index wins concurrent registrations with the same email.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.getOrCreateToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{Token: token.Key, User: mapUserToResponse(user)}, nil
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.repo.Users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.getOrCreateToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{Token: token.Key, User: mapUserToResponse(user)}, nil
}

// Logout invalidates the account's token; the next login mints a fresh one.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.repo.Tokens.DeleteByUserID(ctx, userID)
}

func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.repo.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	resp := mapUserToResponse(user)
	return &resp, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.repo.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	fields := map[string]any{}
	if req.Username != nil {
		name := strings.TrimSpace(*req.Username)
		if name == "" {
			return nil, invalidField("username", "must not be empty")
		}
		fields["username"] = name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		if !strings.EqualFold(email, user.Email) {
			if taken, err := s.repo.Users.ExistsByEmail(ctx, email); err != nil {
				return nil, fmt.Errorf("check email: %w", err)
			} else if taken {
				return nil, ErrEmailTaken
			}
		}
		fields["email"] = email
	}
	if req.FirstName != nil {
		fields["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		fields["last_name"] = strings.TrimSpace(*req.LastName)
	}

	if err := s.repo.Users.UpdateFields(ctx, userID, fields); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	updated, err := s.repo.Users.GetByID(ctx, userID)
	if err != nil || updated == nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}
	resp := mapUserToResponse(updated)
	return &resp, nil
}

// RequestPasswordReset returns a short-lived signed token for the account, or
// an empty string when the email is unknown or inactive. Both cases look the
// same to the caller.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.repo.Users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}
	if user == nil || !user.IsActive {
		return "", nil
	}

	claims := jwt.MapClaims{
		"sub":     user.ID.String(),
		"purpose": resetTokenPurpose,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(s.cfg.ResetTokenExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.ResetTokenSecret))
	if err != nil {
		return "", fmt.Errorf("sign reset token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) ConfirmPasswordReset(ctx context.Context, req *dto.PasswordResetConfirmRequest) error {
	if err := validatePassword(req.Password); err != nil {
		return err
	}
	if req.Password != req.PasswordConfirmation {
		return ErrPasswordMismatch
	}

	parsed, err := jwt.Parse(req.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.ResetTokenSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return ErrInvalidResetToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidResetToken
	}
	if purpose, _ := claims["purpose"].(string); purpose != resetTokenPurpose {
		return ErrInvalidResetToken
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ErrInvalidResetToken
	}

	user, err := s.repo.Users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if user == nil || !user.IsActive {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.repo.Users.UpdatePassword(ctx, userID, string(hash))
}

func (s *AuthService) getOrCreateToken(ctx context.Context, userID uuid.UUID) (*models.AuthToken, error) {
	token, err := s.repo.Tokens.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup token: %w", err)
	}
	if token != nil {
		return token, nil
	}

	key, err := generateTokenKey()
	if err != nil {
		return nil, err
	}
	token = &models.AuthToken{Key: key, UserID: userID}
	if err := s.repo.Tokens.Create(ctx, token); err != nil {
		// Concurrent login already created one; reuse it.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.repo.Tokens.GetByUserID(ctx, userID)
		}
		return nil, fmt.Errorf("store token: %w", err)
	}
	return token, nil
}

func generateTokenKey() (string, error) {
	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate token key: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

func validateRegistration(req *dto.RegisterRequest) error {
	if strings.TrimSpace(req.Username) == "" {
		return invalidField("username", "is required")
	}
	if err := validateEmail(strings.TrimSpace(req.Email)); err != nil {
		return err
	}
	return validatePassword(req.Password)
}

func validateEmail(email string) error {
	if email == "" {
		return invalidField("email", "is required")
	}
	if len(email) > 255 {
		return invalidField("email", "must be at most 255 characters")
	}
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return invalidField("email", "is not a valid email address")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return invalidField("password", "must be at least 8 characters")
	}
	return nil
}

func mapUserToResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		IsActive:   u.IsActive,
		IsStaff:    u.IsStaff,
		DateJoined: u.DateJoined,
	}
}
