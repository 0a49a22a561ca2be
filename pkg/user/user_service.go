package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/birrflow/birrflow/internal/auth"
	"github.com/birrflow/birrflow/internal/utils"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAlreadyExists      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service interface {
	Register(ctx context.Context, phone, email, password string) (User, string, error)
	Login(ctx context.Context, identifier, password string) (User, string, error)
	Profile(ctx context.Context) (User, error)
	UpdateProfile(ctx context.Context, phone, email, username string) (User, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	GetByID(ctx context.Context, id int64) (User, error)
}

type ServiceImpl struct {
	repo       Repo
	tokens     *auth.TokenIssuer
	bcryptCost int
	clock      utils.Clock
}

func NewService(repo Repo, tokens *auth.TokenIssuer, bcryptCost int) *ServiceImpl {
	return &ServiceImpl{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		clock:      utils.SystemClock{},
	}
}

func (s *ServiceImpl) Register(ctx context.Context, phone, email, password string) (User, string, error) {
	if phone == "" && email == "" {
		return User{}, "", fmt.Errorf("phone or email is required")
	}
	if password == "" {
		return User{}, "", fmt.Errorf("password is required")
	}

	identifier := phone
	if identifier == "" {
		identifier = email
	}
	if _, err := s.repo.FindByIdentifier(ctx, identifier); err == nil {
		return User{}, "", ErrAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return User{}, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return User{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := s.repo.Store(ctx, User{Phone: phone, Email: email, PasswordHash: string(hash)})
	if err != nil {
		return User{}, "", err
	}

	created, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return User{}, "", err
	}

	token, err := s.tokens.Issue(id)
	if err != nil {
		return User{}, "", err
	}
	log.Infof("user registered: %d", id)
	return created, token, nil
}

func (s *ServiceImpl) Login(ctx context.Context, identifier, password string) (User, string, error) {
	if identifier == "" || password == "" {
		return User{}, "", fmt.Errorf("identifier and password are required")
	}

	u, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, "", ErrInvalidCredentials
	}

	if err := s.repo.UpdateLastLogin(ctx, u.ID, s.clock.Now()); err != nil {
		log.Warnf("failed to record last login for user %d: %v", u.ID, err)
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return User{}, "", err
	}
	return u, token, nil
}

func (s *ServiceImpl) Profile(ctx context.Context) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.FindByID(ctx, userId)
}

func (s *ServiceImpl) UpdateProfile(ctx context.Context, phone, email, username string) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}

	if phone != "" || email != "" {
		identifier := phone
		if identifier == "" {
			identifier = email
		}
		if existing, err := s.repo.FindByIdentifier(ctx, identifier); err == nil && existing.ID != userId {
			return User{}, ErrAlreadyExists
		}
	}

	if err := s.repo.UpdateProfile(ctx, User{ID: userId, Phone: phone, Email: email, Username: username}); err != nil {
		return User{}, err
	}
	return s.repo.FindByID(ctx, userId)
}

func (s *ServiceImpl) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	userId, err := CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	u, err := s.repo.FindByID(ctx, userId)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.repo.UpdatePasswordHash(ctx, userId, string(hash))
}

func (s *ServiceImpl) GetByID(ctx context.Context, id int64) (User, error) {
	return s.repo.FindByID(ctx, id)
}
