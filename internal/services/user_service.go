package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stwalsh4118/rentdesk/internal/auth"
	"github.com/stwalsh4118/rentdesk/internal/logger"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"github.com/stwalsh4118/rentdesk/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInactiveAccount    = fmt.Errorf("%w: account is disabled", ErrForbidden)
	ErrWeakPassword       = fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// Registration is a tenant signing up on their own.
type Registration struct {
	Username    string
	Email       string
	PhoneNumber string
	Password    string
	FirstName   string
	LastName    string
	TenantType  models.TenantType
	NationalID  string
	CompanyName string
	Address     string
}

// Session is an issued access token.
type Session struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// UserService manages accounts and sign-in.
type UserService interface {
	// Register creates a tenant account and its tenant record atomically.
	Register(ctx context.Context, r Registration) (*models.User, *models.Tenant, error)

	// Login checks the credentials and issues a token.
	Login(ctx context.Context, username, password string) (*Session, error)

	// Logout revokes the token with the given claims.
	Logout(ctx context.Context, claims *auth.Claims) error

	Me(ctx context.Context, actor Actor) (*models.User, error)

	List(ctx context.Context, p repository.Pagination) (repository.Page[models.User], error)
	Get(ctx context.Context, id uint) (*models.User, error)

	// Create adds an account with the given password.
	Create(ctx context.Context, actor Actor, u *models.User, password string) error

	// Update saves u. The stored password is kept unless password is set.
	Update(ctx context.Context, actor Actor, u *models.User, password string) error

	Delete(ctx context.Context, actor Actor, id uint) error

	// CreateSuperuser adds an active superuser account.
	CreateSuperuser(ctx context.Context, username, email, phone, password string) (*models.User, error)
}

type userService struct {
	repo   repository.UserRepository
	tokens *auth.TokenManager
	store  auth.TokenStore
	audit  Recorder
	log    *logger.Logger
	now    func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(
	repo repository.UserRepository,
	tokens *auth.TokenManager,
	store auth.TokenStore,
	audit Recorder,
	log *logger.Logger,
) UserService {
	return &userService{repo: repo, tokens: tokens, store: store, audit: audit, log: log, now: time.Now}
}

func validateUser(u *models.User) error {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.TrimSpace(u.Email)
	switch {
	case u.Username == "":
		return invalid("username is required")
	case u.Email == "":
		return invalid("email is required")
	case strings.TrimSpace(u.PhoneNumber) == "":
		return invalid("phone number is required")
	}
	return nil
}

func (s *userService) setPassword(u *models.User, password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (s *userService) Register(ctx context.Context, r Registration) (*models.User, *models.Tenant, error) {
	u := &models.User{
		Username:    r.Username,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		IsActive:    true,
		IsTenant:    true,
	}
	if err := validateUser(u); err != nil {
		return nil, nil, err
	}

	t := &models.Tenant{
		TenantType:  r.TenantType,
		NationalID:  r.NationalID,
		CompanyName: r.CompanyName,
		Address:     r.Address,
	}
	if t.TenantType == "" {
		t.TenantType = models.TenantIndividual
	}
	if err := validateTenantDetails(t); err != nil {
		return nil, nil, err
	}
	if err := s.setPassword(u, r.Password); err != nil {
		return nil, nil, err
	}

	if err := s.repo.CreateTenant(ctx, u, t); err != nil {
		return nil, nil, repoError("user", err)
	}

	s.log.Info("Tenant registered", map[string]interface{}{
		"user_id":   u.ID,
		"tenant_id": t.ID,
		"username":  u.Username,
	})
	s.audit.Record(ctx, Actor{UserID: u.ID, IsTenant: true}, "Registered", map[string]interface{}{"tenant_id": t.ID})
	return u, t, nil
}

func (s *userService) Login(ctx context.Context, username, password string) (*Session, error) {
	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, repoError("user", err)
	}

	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.log.Warn("Failed login attempt", map[string]interface{}{"username": u.Username})
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrInactiveAccount
	}

	token, claims, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}

	at := s.now()
	if err := s.repo.TouchLastLogin(ctx, u.ID, at); err != nil {
		s.log.Warn("Failed to record last login", map[string]interface{}{"user_id": u.ID, "error": err.Error()})
	} else {
		u.LastLogin = &at
	}

	s.log.Info("User logged in", map[string]interface{}{"user_id": u.ID})
	return &Session{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: claims.ExpiresAt.Time,
		User:      u,
	}, nil
}

func (s *userService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return auth.ErrInvalidToken
	}
	expiresAt := s.now().Add(s.tokens.TTL())
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := s.store.Revoke(ctx, claims.ID, expiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	s.log.Info("User logged out", map[string]interface{}{"user_id": claims.UserID})
	return nil
}

func (s *userService) Me(ctx context.Context, actor Actor) (*models.User, error) {
	return s.Get(ctx, actor.UserID)
}

func (s *userService) List(ctx context.Context, p repository.Pagination) (repository.Page[models.User], error) {
	page, err := s.repo.List(ctx, p)
	return page, repoError("user", err)
}

func (s *userService) Get(ctx context.Context, id uint) (*models.User, error) {
	u, err := s.repo.Get(ctx, id)
	return u, repoError("user", err)
}

func (s *userService) Create(ctx context.Context, actor Actor, u *models.User, password string) error {
	if err := validateUser(u); err != nil {
		return err
	}
	if err := s.setPassword(u, password); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return repoError("user", err)
	}

	s.log.Info("User created", map[string]interface{}{"user_id": u.ID, "username": u.Username})
	s.audit.Record(ctx, actor, "Created user", map[string]interface{}{"user_id": u.ID, "username": u.Username})
	return nil
}

func (s *userService) Update(ctx context.Context, actor Actor, u *models.User, password string) error {
	if err := validateUser(u); err != nil {
		return err
	}
	existing, err := s.repo.Get(ctx, u.ID)
	if err != nil {
		return repoError("user", err)
	}

	u.PasswordHash = existing.PasswordHash
	u.LastLogin = existing.LastLogin
	u.CreatedAt = existing.CreatedAt
	if password != "" {
		if err := s.setPassword(u, password); err != nil {
			return err
		}
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return repoError("user", err)
	}
	s.audit.Record(ctx, actor, "Updated user", map[string]interface{}{
		"user_id":          u.ID,
		"password_changed": password != "",
	})
	return nil
}

func (s *userService) Delete(ctx context.Context, actor Actor, id uint) error {
	if id == actor.UserID {
		return invalid("cannot delete your own account")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError("user", err)
	}
	s.audit.Record(ctx, actor, "Deleted user", map[string]interface{}{"user_id": id})
	return nil
}

func (s *userService) CreateSuperuser(ctx context.Context, username, email, phone, password string) (*models.User, error) {
	u := &models.User{
		Username:    username,
		Email:       email,
		PhoneNumber: phone,
		IsSuperuser: true,
		IsStaff:     true,
		IsActive:    true,
	}
	if err := s.Create(ctx, SystemActor, u, password); err != nil {
		return nil, err
	}
	return u, nil
}
