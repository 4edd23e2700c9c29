package usecase

import (
	"context"
	"errors"
	"testing"

	"cfb-catalog/internal/domain/user"
	idgen "cfb-catalog/internal/platform/id"
)

func TestAuthService_Signup_RejectsBadInput(t *testing.T) {
	t.Parallel()

	svc := NewAuthService(&stubUserRepo{}, idgen.NewRandomGenerator())

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"missing at sign", "not-an-email", "longenough"},
		{"short password", "someone@example.com", "short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tc.email, tc.password)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got=%v", err)
			}
		})
	}
}

func TestAuthService_Signup_RejectsDuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := &stubUserRepo{existing: map[string]user.User{
		"taken@example.com": {ID: "u1", Email: "taken@example.com"},
	}}
	svc := NewAuthService(repo, idgen.NewRandomGenerator())

	_, err := svc.Signup(context.Background(), " Taken@Example.COM ", "longenough")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate, got=%v", err)
	}
}

func TestAuthService_SignupThenLoginAndVerify(t *testing.T) {
	t.Parallel()

	repo := &stubUserRepo{existing: map[string]user.User{}}
	svc := NewAuthService(repo, idgen.NewRandomGenerator())

	signup, err := svc.Signup(context.Background(), "someone@example.com", "longenough")
	if err != nil {
		t.Fatalf("Signup error: %v", err)
	}
	if signup.Token == "" {
		t.Fatalf("expected a session token")
	}

	login, err := svc.Login(context.Background(), "SOMEONE@example.com", "longenough")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if login.Principal.Email != "someone@example.com" {
		t.Fatalf("unexpected principal: %+v", login.Principal)
	}

	principal, err := svc.VerifyAccessToken(context.Background(), login.Token)
	if err != nil {
		t.Fatalf("VerifyAccessToken error: %v", err)
	}
	if principal.UserID != login.Principal.UserID {
		t.Fatalf("principal mismatch: %+v vs %+v", principal, login.Principal)
	}
}

func TestAuthService_Login_UniformFailureMessage(t *testing.T) {
	t.Parallel()

	repo := &stubUserRepo{existing: map[string]user.User{}}
	svc := NewAuthService(repo, idgen.NewRandomGenerator())

	if _, err := svc.Signup(context.Background(), "someone@example.com", "longenough"); err != nil {
		t.Fatalf("Signup error: %v", err)
	}

	wrongPassword := func() error {
		_, err := svc.Login(context.Background(), "someone@example.com", "wrong-password")
		return err
	}()
	unknownEmail := func() error {
		_, err := svc.Login(context.Background(), "nobody@example.com", "longenough")
		return err
	}()

	if !errors.Is(wrongPassword, ErrUnauthorized) || !errors.Is(unknownEmail, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for both failures, got=%v / %v", wrongPassword, unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("login failures must not reveal which field was wrong: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestAuthService_VerifyAccessToken_UnknownToken(t *testing.T) {
	t.Parallel()

	svc := NewAuthService(&stubUserRepo{}, idgen.NewRandomGenerator())

	_, err := svc.VerifyAccessToken(context.Background(), "made-up")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got=%v", err)
	}
}

type stubUserRepo struct {
	existing map[string]user.User
	err      error
}

func (s *stubUserRepo) Create(_ context.Context, item user.User) error {
	if s.err != nil {
		return s.err
	}
	if s.existing == nil {
		s.existing = map[string]user.User{}
	}
	s.existing[item.Email] = item
	return nil
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (user.User, bool, error) {
	if s.err != nil {
		return user.User{}, false, s.err
	}
	item, ok := s.existing[email]
	return item, ok, nil
}
