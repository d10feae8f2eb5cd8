package services

import (
	"context"
	"strings"

	"abchotels/constants"
	"abchotels/dto"
	apperrors "abchotels/errors"
	"abchotels/models"
	"abchotels/repository"
	"abchotels/services/logger"
	"abchotels/validator"

	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
)

// GoogleVerifier checks a Google ID token and returns the email it was issued to
type GoogleVerifier func(ctx context.Context, idToken string) (string, error)

// NewGoogleVerifier validates ID tokens against the configured OAuth client id
func NewGoogleVerifier(clientID string) GoogleVerifier {
	return func(ctx context.Context, idToken string) (string, error) {
		payload, err := idtoken.Validate(ctx, idToken, clientID)
		if err != nil {
			return "", err
		}
		email, _ := payload.Claims["email"].(string)
		return email, nil
	}
}

type AuthService struct {
	users  repository.UserRepository
	tokens *TokenService
	google GoogleVerifier
	log    logger.Logger
}

func NewAuthService(users repository.UserRepository, tokens *TokenService, google GoogleVerifier, log logger.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, google: google, log: log}
}

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// Login checks email and password and issues an access token
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeDBNotFound) {
			return nil, invalidCredentials()
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, invalidCredentials()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, invalidCredentials()
	}
	return s.issue(user)
}

// GoogleLogin signs in an existing staff account by its Google identity
func (s *AuthService) GoogleLogin(ctx context.Context, idToken string) (*dto.LoginResponse, error) {
	if s.google == nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeUnauthorized, "Google sign-in is not configured", nil)
	}
	email, err := s.google(ctx, idToken)
	if err != nil || email == "" {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Invalid Google ID token", err)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeDBNotFound) {
			return nil, invalidCredentials()
		}
		return nil, err
	}
	if !user.IsActive || user.Role < constants.RoleStaff {
		return nil, invalidCredentials()
	}
	return s.issue(user)
}

// CreateStaff registers a staff or admin account
func (s *AuthService) CreateStaff(ctx context.Context, in dto.CreateStaffInput) (*models.User, error) {
	if in.Role != constants.RoleStaff && in.Role != constants.RoleAdmin {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidRole, "Role must be staff (1) or admin (2)", nil)
	}
	if err := validator.ValidateEmail(strings.TrimSpace(in.Email)); err != nil {
		return nil, err
	}
	if err := validator.ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	user := &models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
		Password: hashed,
		Role:     in.Role,
		IsActive: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info("staff account %s created with role %d", user.Email, user.Role)
	return user, nil
}

func (s *AuthService) issue(user *models.User) (*dto.LoginResponse, error) {
	token, err := s.tokens.GenerateToken(UserInfo{UserId: user.ID, Role: user.Role})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &dto.LoginResponse{AccessToken: token, User: *user}, nil
}

func invalidCredentials() error {
	return apperrors.NewAppError(apperrors.ErrCodeInvalidCredentials, "Invalid email or password", nil)
}
