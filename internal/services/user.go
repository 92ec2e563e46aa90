package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"TRAVELBUDDY_BACK-END/internal/models"
	"TRAVELBUDDY_BACK-END/internal/repository"
)

// GoogleProfile is the identity returned by Google sign-in
type GoogleProfile struct {
	Email   string
	Name    string
	Picture string
}

// ProfileInput carries optional profile changes; nil fields are kept
type ProfileInput struct {
	Name      *string
	AvatarURL *string
	Bio       *string
}

// UserService manages accounts and credentials
type UserService struct {
	store    repository.Store
	clock    Clock
	hashCost int
	admins   map[string]bool
}

// NewUserService creates a new UserService. hashCost <= 0 selects
// bcrypt.DefaultCost.
func NewUserService(store repository.Store, clock Clock, hashCost int) *UserService {
	if hashCost <= 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &UserService{store: store, clock: clock, hashCost: hashCost, admins: map[string]bool{}}
}

// WithAdminEmails makes accounts created for these emails admins
func (s *UserService) WithAdminEmails(emails []string) *UserService {
	for _, e := range emails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			s.admins[e] = true
		}
	}
	return s
}

// Register creates an ACTIVE user with the USER role
func (s *UserService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return nil, newError(KindInvalidInput, "Name, email, and password are required")
	}
	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, newError(KindConflict, "Email already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, internal("failed to look up user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, internal("failed to hash password", err)
	}
	return s.create(ctx, email, string(hash), name, nil)
}

func (s *UserService) create(ctx context.Context, email, hash, name string, avatar *string) (*models.User, error) {
	now := s.clock.Now()
	u := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		AvatarURL:    avatar,
		Role:         models.RoleUser,
		Status:       models.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if s.admins[email] {
		u.Role = models.RoleAdmin
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, newError(KindConflict, "Email already registered")
		}
		return nil, internal("failed to create user", err)
	}
	return u, nil
}

// Login verifies credentials. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(KindUnauthenticated, "Email or password is incorrect")
	}
	if err != nil {
		return nil, internal("failed to look up user", err)
	}
	if u.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, newError(KindUnauthenticated, "Email or password is incorrect")
	}
	if u.Status == models.UserStatusBanned {
		return nil, newError(KindForbidden, "This account has been banned")
	}
	return u, nil
}

// LoginWithGoogle finds the user by email or creates one without a password
func (s *UserService) LoginWithGoogle(ctx context.Context, p GoogleProfile) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(p.Email))
	if email == "" {
		return nil, newError(KindInvalidInput, "Google account has no email address")
	}
	u, err := s.store.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		name := strings.TrimSpace(p.Name)
		if name == "" {
			name = email
		}
		var avatar *string
		if p.Picture != "" {
			avatar = &p.Picture
		}
		return s.create(ctx, email, "", name, avatar)
	case err != nil:
		return nil, internal("failed to look up user", err)
	}
	if u.Status == models.UserStatusBanned {
		return nil, newError(KindForbidden, "This account has been banned")
	}
	return u, nil
}

// GetProfile returns the caller's account
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	u, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fromStore(err, "User not found")
	}
	return u, nil
}

// UpdateProfile applies the non-nil fields of in
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (*models.User, error) {
	u, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fromStore(err, "User not found")
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, newError(KindInvalidInput, "name cannot be empty")
		}
		u.Name = name
	}
	if in.AvatarURL != nil {
		u.AvatarURL = emptyToNil(*in.AvatarURL)
	}
	if in.Bio != nil {
		u.Bio = emptyToNil(*in.Bio)
	}
	u.UpdatedAt = s.clock.Now()
	if err := s.store.UpdateUserProfile(ctx, u); err != nil {
		return nil, fromStore(err, "User not found")
	}
	return u, nil
}

func emptyToNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// SetUserStatus bans or reactivates a user (admin only)
func (s *UserService) SetUserStatus(ctx context.Context, adminID, userID uuid.UUID, status models.UserStatus) (*models.User, error) {
	if status != models.UserStatusActive && status != models.UserStatusBanned {
		return nil, newError(KindInvalidInput, "status must be ACTIVE or BANNED")
	}
	admin, err := s.store.GetUserByID(ctx, adminID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, internal("failed to load user", err)
	}
	if admin == nil || !admin.IsAdmin() {
		return nil, newError(KindForbidden, "Admin access required")
	}
	if adminID == userID {
		return nil, newError(KindInvalidInput, "You cannot change your own status")
	}
	now := s.clock.Now()
	if err := s.store.UpdateUserStatus(ctx, userID, status, now); err != nil {
		return nil, fromStore(err, "User not found")
	}
	return s.GetProfile(ctx, userID)
}
