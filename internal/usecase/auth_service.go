package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"golang.org/x/crypto/bcrypt"

	"cfb-catalog/internal/domain/user"
	idgen "cfb-catalog/internal/platform/id"
)

const (
	bcryptCost        = 12
	minPasswordLength = 8
)

// AuthService manages accounts and opaque bearer tokens. Sessions are
// held in process memory behind a mutex; restarting the service logs
// everyone out.
type AuthService struct {
	users user.Repository
	ids   idgen.Generator

	mu       sync.Mutex
	sessions map[string]user.Principal
}

func NewAuthService(users user.Repository, ids idgen.Generator) *AuthService {
	return &AuthService{
		users:    users,
		ids:      ids,
		sessions: make(map[string]user.Principal),
	}
}

// Session pairs a freshly issued token with its principal.
type Session struct {
	Token     string
	Principal user.Principal
}

func (s *AuthService) Signup(ctx context.Context, email, password string) (Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Signup")
	defer span.End()

	email = normalizeEmail(email)
	if !strings.Contains(email, "@") {
		return Session{}, fmt.Errorf("%w: email is invalid", ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return Session{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	if _, exists, err := s.users.GetByEmail(ctx, email); err != nil {
		return Session{}, fmt.Errorf("check existing account: %w", err)
	} else if exists {
		return Session{}, fmt.Errorf("%w: an account with this email already exists", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return Session{}, crerr.Wrap(err, "hash password")
	}

	id, err := s.ids.NewID()
	if err != nil {
		return Session{}, crerr.Wrap(err, "generate account id")
	}

	account := user.User{
		ID:           id,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := account.Validate(); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.users.Create(ctx, account); err != nil {
		return Session{}, fmt.Errorf("create account: %w", err)
	}

	return s.issueSession(user.Principal{UserID: account.ID, Email: account.Email})
}

func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	account, exists, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return Session{}, fmt.Errorf("load account: %w", err)
	}
	if !exists {
		return Session{}, fmt.Errorf("%w: unknown email or password", ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return Session{}, fmt.Errorf("%w: unknown email or password", ErrUnauthorized)
	}

	return s.issueSession(user.Principal{UserID: account.ID, Email: account.Email})
}

// VerifyAccessToken resolves a bearer token to its principal.
func (s *AuthService) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	_, span := startUsecaseSpan(ctx, "usecase.AuthService.VerifyAccessToken")
	defer span.End()

	s.mu.Lock()
	principal, ok := s.sessions[token]
	s.mu.Unlock()
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown or expired token", ErrUnauthorized)
	}

	return principal, nil
}

func (s *AuthService) issueSession(principal user.Principal) (Session, error) {
	token, err := s.ids.NewID()
	if err != nil {
		return Session{}, crerr.Wrap(err, "issue session token")
	}

	s.mu.Lock()
	s.sessions[token] = principal
	s.mu.Unlock()

	return Session{Token: token, Principal: principal}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
