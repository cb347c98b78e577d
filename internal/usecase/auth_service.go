package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cnfl/fantasy-cricket/internal/domain/user"
	idgen "github.com/cnfl/fantasy-cricket/internal/platform/id"
	"github.com/cnfl/fantasy-cricket/internal/platform/logging"
	"github.com/cnfl/fantasy-cricket/internal/store"
)

// LoginInput carries the credentials of a login attempt.
type LoginInput struct {
	Email    string
	Password string
}

// RegisterInput is the incoming payload for participant self-registration.
type RegisterInput struct {
	FullName    string
	Email       string
	Password    string
	ProfileLink string
}

// Session is an issued bearer token bound to one account.
type Session struct {
	Token  string
	UserID string
}

// AuthService covers login, registration and account administration.
// Credentials compare as plain text and sessions live in process memory;
// both disappear on restart together with the rest of the live state.
type AuthService struct {
	store  *store.Store
	idGen  idgen.Generator
	logger *logging.Logger

	mu       sync.RWMutex
	sessions map[string]string // token -> user id
}

func NewAuthService(st *store.Store, idGen idgen.Generator, logger *logging.Logger) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AuthService{
		store:    st,
		idGen:    idGen,
		logger:   logger,
		sessions: make(map[string]string),
	}
}

// Login checks credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (Session, user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "AuthService.Login")
	defer span.End()

	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Email == "" || input.Password == "" {
		return Session{}, user.User{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	account, ok := s.store.Snapshot().UserByEmail(input.Email)
	if !ok || account.Password != input.Password {
		s.logger.WarnContext(ctx, "login rejected", "email", input.Email)
		return Session{}, user.User{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	token, err := s.idGen.NewID()
	if err != nil {
		return Session{}, user.User{}, fmt.Errorf("generate session token: %w", err)
	}

	s.mu.Lock()
	s.sessions[token] = account.ID
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "login accepted", "user_id", account.ID, "role", account.Role)
	return Session{Token: token, UserID: account.ID}, account, nil
}

// Logout invalidates a session token. Unknown tokens are ignored.
func (s *AuthService) Logout(_ context.Context, token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Resolve maps a session token to its authenticated principal.
func (s *AuthService) Resolve(_ context.Context, token string) (user.Principal, bool) {
	s.mu.RLock()
	userID, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return user.Principal{}, false
	}

	account, ok := s.store.Snapshot().UserByID(userID)
	if !ok {
		return user.Principal{}, false
	}

	return user.Principal{UserID: account.ID, FullName: account.FullName, Role: account.Role}, true
}

// Register creates a participant account. Emails are unique across accounts.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "AuthService.Register")
	defer span.End()

	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.ProfileLink = strings.TrimSpace(input.ProfileLink)

	if input.FullName == "" {
		return user.User{}, fmt.Errorf("%w: full name is required", ErrInvalidInput)
	}
	if input.Email == "" {
		return user.User{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if input.Password == "" {
		return user.User{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	if _, exists := s.store.Snapshot().UserByEmail(input.Email); exists {
		return user.User{}, fmt.Errorf("%w: email already registered", ErrInvalidInput)
	}

	userID, err := s.idGen.NewID()
	if err != nil {
		return user.User{}, fmt.Errorf("generate user id: %w", err)
	}

	account := user.User{
		ID:          userID,
		FullName:    input.FullName,
		Email:       input.Email,
		Password:    input.Password,
		ProfileLink: input.ProfileLink,
		Role:        user.RoleParticipant,
	}
	if err := account.Validate(); err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.store.Dispatch(store.AddUser{User: account})
	s.logger.InfoContext(ctx, "participant registered", "user_id", account.ID)
	return account, nil
}

// GetUser looks up a single account by id.
func (s *AuthService) GetUser(ctx context.Context, userID string) (user.User, error) {
	_, span := startUsecaseSpan(ctx, "AuthService.GetUser")
	defer span.End()

	account, ok := s.store.Snapshot().UserByID(userID)
	if !ok {
		return user.User{}, fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}
	return account, nil
}

// ListUsers returns every account, admin use only at the route level.
func (s *AuthService) ListUsers(ctx context.Context) ([]user.User, error) {
	_, span := startUsecaseSpan(ctx, "AuthService.ListUsers")
	defer span.End()

	snapshot := s.store.Snapshot()
	out := make([]user.User, len(snapshot.Users))
	copy(out, snapshot.Users)
	return out, nil
}

// UpdatePassword sets a new password for the given account.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	ctx, span := startUsecaseSpan(ctx, "AuthService.UpdatePassword")
	defer span.End()

	if strings.TrimSpace(newPassword) == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	account, ok := s.store.Snapshot().UserByID(userID)
	if !ok {
		return fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}

	account.Password = newPassword
	s.store.Dispatch(store.UpdateUser{User: account})
	s.logger.InfoContext(ctx, "password updated", "user_id", userID)
	return nil
}

// UpdateProfile changes an account's display fields.
func (s *AuthService) UpdateProfile(ctx context.Context, userID, fullName, profileLink string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "AuthService.UpdateProfile")
	defer span.End()

	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return user.User{}, fmt.Errorf("%w: full name is required", ErrInvalidInput)
	}

	account, ok := s.store.Snapshot().UserByID(userID)
	if !ok {
		return user.User{}, fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}

	account.FullName = fullName
	account.ProfileLink = strings.TrimSpace(profileLink)
	s.store.Dispatch(store.UpdateUser{User: account})
	return account, nil
}

// ChangeRole promotes or demotes an account. The acting admin cannot demote
// themselves, which guarantees at least one admin always remains.
func (s *AuthService) ChangeRole(ctx context.Context, actor user.Principal, userID string, role user.Role) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "AuthService.ChangeRole")
	defer span.End()

	if role != user.RoleAdmin && role != user.RoleParticipant {
		return user.User{}, fmt.Errorf("%w: invalid role %s", ErrInvalidInput, role)
	}
	if actor.UserID == userID && role != user.RoleAdmin {
		return user.User{}, fmt.Errorf("%w: cannot demote own account", ErrInvalidInput)
	}

	account, ok := s.store.Snapshot().UserByID(userID)
	if !ok {
		return user.User{}, fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}

	account.Role = role
	s.store.Dispatch(store.UpdateUser{User: account})
	s.logger.InfoContext(ctx, "role changed", "user_id", userID, "role", role, "actor", actor.UserID)
	return account, nil
}
