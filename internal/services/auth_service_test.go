package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pasofino/store-backend/internal/config"
	"github.com/pasofino/store-backend/internal/dto"
	"github.com/pasofino/store-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		ResetTokenSecret: "test-secret",
		ResetTokenExpiry: 30 * time.Minute,
	}
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(hash)
}

func TestRegister_Success(t *testing.T) {
	repo, users, tokens, _, _, _ := newMockRepository()
	svc := NewAuthService(repo, testConfig())

	var created *models.User
	users.CreateFunc = func(_ context.Context, u *models.User) error {
		created = u
		return nil
	}
	var storedToken *models.AuthToken
	tokens.CreateFunc = func(_ context.Context, tok *models.AuthToken) error {
		storedToken = tok
		return nil
	}

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username:             "ana",
		Email:                "Ana@Example.COM",
		Password:             "supersecret",
		PasswordConfirmation: "supersecret",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if created == nil {
		t.Fatal("user was not persisted")
	}
	if created.Email != "ana@example.com" {
		t.Fatalf("email not normalized: %q", created.Email)
	}
	if created.Password == "supersecret" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("supersecret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if created.DateJoined.IsZero() {
		t.Fatal("date_joined not set on registration")
	}
	if resp.User.DateJoined.IsZero() {
		t.Fatal("date_joined missing from response")
	}

	if storedToken == nil {
		t.Fatal("token was not persisted")
	}
	if len(resp.Token) != 40 {
		t.Fatalf("token key length = %d, want 40", len(resp.Token))
	}
	if resp.Token != storedToken.Key {
		t.Fatal("response token differs from stored token")
	}
	if resp.User.Email != "ana@example.com" {
		t.Fatalf("response email = %q", resp.User.Email)
	}
}

func TestRegister_PasswordMismatch(t *testing.T) {
	repo, users, _, _, _, _ := newMockRepository()
	svc := NewAuthService(repo, testConfig())

	createCalled := false
	users.CreateFunc = func(_ context.Context, _ *models.User) error {
		createCalled = true
		return nil
	}

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username:             "ana",
		Email:                "ana@example.com",
		Password:             "supersecret",
		PasswordConfirmation: "different1",
	})
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("err = %v, want ErrPasswordMismatch", err)
	}
	if createCalled {
		t.Fatal("user must not be created on mismatch")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo, users, _, _, _, _ := newMockRepository()
	svc := NewAuthService(repo, testConfig())

	users.ExistsByEmailFunc = func(_ context.Context, _ string) (bool, error) {
		return true, nil
	}
	createCalled := false
	users.CreateFunc = func(_ context.Context, _ *models.User) error {
		createCalled = true
		return nil
	}

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username:             "ana",
		Email:                "a@x.com",
		Password:             "supersecret",
		PasswordConfirmation: "supersecret",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
	if createCalled {
		t.Fatal("duplicate registration must not create a second account")
	}
}

func TestRegister_ValidationFailures(t *testing.T) {
	repo, _, _, _, _, _ := newMockRepository()
	svc := NewAuthService(repo, testConfig())

	cases := []struct {
		name  string
		req   dto.RegisterRequest
		field string
	}{
		{"missing username", dto.RegisterRequest{Email: "a@x.com", Password: "supersecret", PasswordConfirmation: "supersecret"}, "username"},
		{"missing email", dto.RegisterRequest{Username: "ana", Password: "supersecret", PasswordConfirmation: "supersecret"}, "email"},
		{"bad email", dto.RegisterRequest{Username: "ana", Email: "nope", Password: "supersecret", PasswordConfirmation: "supersecret"}, "email"},
		{"short password", dto.RegisterRequest{Username: "ana", Email: "a@x.com", Password: "short", PasswordConfirmation: "short"}, "password"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), &tc.req)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if vErr.Field != tc.field {
				t.Fatalf("field = %q, want %q", vErr.Field, tc.field)
			}
		})
	}
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	repo, users, _, _, _, _ := newMockRepository()
	svc := NewAuthService(repo, testConfig())

	active := &models.User{
		ID:       uuid.New(),
		Email:    "a@x.com",
		Password: hashFor(t, "correct-password"),
		IsActive: true,
	}
	inactive := &models.User{
		ID:       uuid.New(),
		Email:    "gone@x.com",
		Password: hashFor(t, "correct-password"),
		IsActive: false,
	}

	users.GetByEmailFunc = func(_ context.Context, email string) (*models.User, error) {
		switch email {
		case "a@x.com":
			return active, nil
		case "gone@x.com":
			return inactive, nil
		}
		return nil, nil
	}

	cases := []struct {
		name  string
		email string
		pass  string
	}{
		{"unknown email", "nobody@x.com", "correct-password"},
		{"wrong password", "a@x.com", "wrong"},
		{"inactive account", "gone@x.com", "correct-password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: tc.email, Password: tc.pass})
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("err = %v, want ErrInvalidCredentials", err)
			}
			if err.Error() != ErrInvalidCredentials.Error() {
				t.Fatalf("error message leaks failure cause: %q", err.Error())
			}
		})
	}
}

func TestLogin_ReusesExistingToken(t *testing.T) {
	repo, users, tokens, _, _, _ := newMockRepository()
	svc := NewAuthService(repo, testConfig())

	user := &models.User{
		ID:       uuid.New(),
		Email:    "a@x.com",
		Password: hashFor(t, "correct-password"),
		IsActive: true,
	}
	users.GetByEmailFunc = func(_ context.Context, _ string) (*models.User, error) {
		return user, nil
	}

	existing := &models.AuthToken{Key: "0123456789abcdef0123456789abcdef01234567", UserID: user.ID}
	tokens.GetByUserIDFunc = func(_ context.Context, _ uuid.UUID) (*models.AuthToken, error) {
		return existing, nil
	}
	tokens.CreateFunc = func(_ context.Context, _ *models.AuthToken) error {
		t.Fatal("a new token must not be minted while one exists")
		return nil
	}

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "a@x.com", Password: "correct-password"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token != existing.Key {
		t.Fatalf("token = %q, want reuse of %q", resp.Token, existing.Key)
	}
}

func TestLogin_TrimsEmail(t *testing.T) {
	repo, users, _, _, _, _ := newMockRepository()
	svc := NewAuthService(repo, testConfig())

	user := &models.User{
		ID:       uuid.New(),
		Email:    "a@x.com",
		Password: hashFor(t, "correct-password"),
		IsActive: true,
	}
	var lookedUp string
	users.GetByEmailFunc = func(_ context.Context, email string) (*models.User, error) {
		lookedUp = email
		if email == user.Email {
			return user, nil
		}
		return nil, nil
	}

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "  a@x.com ", Password: "correct-password"})
	if err != nil {
		t.Fatalf("Login with padded email: %v", err)
	}
	if lookedUp != "a@x.com" {
		t.Fatalf("lookup email = %q, want trimmed", lookedUp)
	}
	if resp.User.Email != "a@x.com" {
		t.Fatalf("response email = %q", resp.User.Email)
	}
}

func TestPasswordReset_RoundTrip(t *testing.T) {
	repo, users, _, _, _, _ := newMockRepository()
	svc := NewAuthService(repo, testConfig())

	user := &models.User{
		ID:       uuid.New(),
		Email:    "a@x.com",
		Password: hashFor(t, "old-password"),
		IsActive: true,
	}
	users.GetByEmailFunc = func(_ context.Context, email string) (*models.User, error) {
		if email == "a@x.com" {
			return user, nil
		}
		return nil, nil
	}
	users.GetByIDFunc = func(_ context.Context, id uuid.UUID) (*models.User, error) {
		if id == user.ID {
			return user, nil
		}
		return nil, nil
	}

	var newHash string
	users.UpdatePasswordFunc = func(_ context.Context, _ uuid.UUID, hash string) error {
		newHash = hash
		return nil
	}

	token, err := svc.RequestPasswordReset(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	if token == "" {
		t.Fatal("expected a reset token for a known account")
	}

	// Unknown email: same nil error, no token.
	unknown, err := svc.RequestPasswordReset(context.Background(), "nobody@x.com")
	if err != nil || unknown != "" {
		t.Fatalf("unknown email must be silent, got token=%q err=%v", unknown, err)
	}

	err = svc.ConfirmPasswordReset(context.Background(), &dto.PasswordResetConfirmRequest{
		Token:                token,
		Password:             "brand-new-pass",
		PasswordConfirmation: "brand-new-pass",
	})
	if err != nil {
		t.Fatalf("ConfirmPasswordReset: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(newHash), []byte("brand-new-pass")); err != nil {
		t.Fatalf("stored hash does not match new password: %v", err)
	}
}

func TestPasswordReset_RejectsBadToken(t *testing.T) {
	repo, _, _, _, _, _ := newMockRepository()
	svc := NewAuthService(repo, testConfig())

	err := svc.ConfirmPasswordReset(context.Background(), &dto.PasswordResetConfirmRequest{
		Token:                "not-a-token",
		Password:             "brand-new-pass",
		PasswordConfirmation: "brand-new-pass",
	})
	if !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("err = %v, want ErrInvalidResetToken", err)
	}
}

func TestLogout_DeletesToken(t *testing.T) {
	repo, _, tokens, _, _, _ := newMockRepository()
	svc := NewAuthService(repo, testConfig())

	userID := uuid.New()
	var deletedFor uuid.UUID
	tokens.DeleteByUserIDFunc = func(_ context.Context, id uuid.UUID) error {
		deletedFor = id
		return nil
	}

	if err := svc.Logout(context.Background(), userID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if deletedFor != userID {
		t.Fatalf("deleted token for %v, want %v", deletedFor, userID)
	}
}
