package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anusasana/portal/internal/dto"
	"github.com/anusasana/portal/internal/entity"
	"github.com/anusasana/portal/internal/repository"
	"github.com/anusasana/portal/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput) (*entity.User, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	// LookupByUniqueID resolves a human-entered ID like "STU-0001" to a user.
	// Role is part of the lookup key, never an afterthought: a teacher sharing
	// the numeric suffix must not match a student query.
	LookupByUniqueID(ctx context.Context, uniqueID, role string) (*entity.User, error)
	ListByRole(ctx context.Context, role string) ([]entity.PublicUser, error)
}

type authService struct {
	repo     repository.UserRepository
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(repo repository.UserRepository, secret string, tokenTTL time.Duration) AuthService {
	if secret == "" {
		secret = "change-me"
	}
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}

	return &authService{
		repo:     repo,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (*entity.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.College = strings.TrimSpace(input.College)

	if input.Name == "" || input.Email == "" || input.Password == "" || input.Role == "" || input.College == "" {
		return nil, apperror.New(http.StatusBadRequest, "all fields are required", apperror.ErrInvalidInput)
	}
	if _, ok := entity.RolePrefixes[input.Role]; !ok {
		return nil, apperror.New(http.StatusBadRequest, "role must be student or teacher", apperror.ErrInvalidInput)
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperror.New(http.StatusBadRequest, "user with this email already exists", apperror.ErrConflict)
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	uniqueID := strings.TrimSpace(input.UniqueID)
	if uniqueID == "" {
		uniqueID = generateUniqueID(input.Role)
	}

	user := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
		College:      input.College,
		UniqueID:     uniqueID,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			// Lost the race to a concurrent registration with the same email.
			return nil, apperror.New(http.StatusBadRequest, "user with this email already exists", apperror.ErrConflict)
		}
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: expiresAt,
		User:      user.Public(),
	}, nil
}

func (s *authService) LookupByUniqueID(ctx context.Context, uniqueID, role string) (*entity.User, error) {
	user, err := s.repo.FindByUniqueID(ctx, uniqueID, role)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.New(http.StatusNotFound, role+" not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	return user, nil
}

func (s *authService) ListByRole(ctx context.Context, role string) ([]entity.PublicUser, error) {
	users, err := s.repo.FindByRole(ctx, role)
	if err != nil {
		return nil, err
	}

	out := make([]entity.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

func (s *authService) generateToken(user *entity.User) (string, int64, error) {
	expiresAt := time.Now().Add(s.tokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.Hex(),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", 0, err
	}

	return signed, expiresAt.Unix(), nil
}

// generateUniqueID builds the human-facing ID, e.g. "STU-0415". The suffix is
// derived from a fresh uuid rather than the clock so simultaneous
// registrations don't collide on the same second.
func generateUniqueID(role string) string {
	suffix := uuid.New().ID() % 10000
	return fmt.Sprintf("%s-%04d", entity.RolePrefixes[role], suffix)
}
