package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"rezoom/feedback-api/internal/models"
	"rezoom/feedback-api/internal/repositories"
)

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type AuthService interface {
	Signup(req *models.SignupRequest) (*models.User, error)
	Login(req *models.LoginRequest) (*models.User, error)
	Profile(email string) (*models.User, error)
	UpdateProfile(email string, req *models.ProfileRequest) error
}

type authService struct {
	userRepo repositories.UserRepository
	cost     int
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{
		userRepo: userRepo,
		cost:     bcrypt.DefaultCost,
	}
}

func (s *authService) Signup(req *models.SignupRequest) (*models.User, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}
	if req.Password != req.Confirm {
		return nil, ErrPasswordMismatch
	}

	_, err := s.userRepo.FindByEmail(email)
	switch {
	case err == nil:
		return nil, ErrEmailTaken
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Nickname:     req.Nickname,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login does not say which of email or password was wrong.
func (s *authService) Login(req *models.LoginRequest) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *authService) Profile(email string) (*models.User, error) {
	return s.userRepo.FindByEmail(email)
}

func (s *authService) UpdateProfile(email string, req *models.ProfileRequest) error {
	return s.userRepo.UpdateProfile(email, req)
}
