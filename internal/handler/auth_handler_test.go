package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/homeoremedies/remedy-finder/api/internal/auth"
	"github.com/homeoremedies/remedy-finder/api/internal/dto"
	"github.com/homeoremedies/remedy-finder/api/internal/entity"
	"github.com/homeoremedies/remedy-finder/api/internal/repository"
	"github.com/homeoremedies/remedy-finder/api/internal/service"
)

type memUsersRepo struct {
	users map[string]*entity.User
}

func (m *memUsersRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUsersRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUsersRepo) Create(ctx context.Context, email, passwordHash string) (*entity.User, error) {
	if _, ok := m.users[email]; ok {
		return nil, repository.ErrEmailDuplicate
	}
	user := &entity.User{ID: uuid.New(), Email: email, PasswordHash: passwordHash}
	m.users[email] = user
	return user, nil
}

func newAuthHandler() (*AuthHandler, *memUsersRepo) {
	repo := &memUsersRepo{users: map[string]*entity.User{}}
	svc := service.NewAuthService(repo, auth.NewJWTManager("test-secret", time.Hour))
	return NewAuthHandler(svc), repo
}

func doAuth(t *testing.T, fn echo.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := fn(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestAuthHandler_Register(t *testing.T) {
	h, repo := newAuthHandler()

	rec := doAuth(t, h.Register, "/auth/register", `{"email":"user@example.com","password":"s3cret-pass"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp dto.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected access_token in response")
	}
	if _, ok := repo.users["user@example.com"]; !ok {
		t.Fatal("expected user persisted")
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	h, _ := newAuthHandler()

	if rec := doAuth(t, h.Register, "/auth/register", `{"email":"user@example.com","password":"first"}`); rec.Code != http.StatusCreated {
		t.Fatalf("setup register failed: %d", rec.Code)
	}
	rec := doAuth(t, h.Register, "/auth/register", `{"email":"user@example.com","password":"second"}`)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if resp.Error != "email already exists" {
		t.Errorf("unexpected error message: %q", resp.Error)
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	h, _ := newAuthHandler()

	for name, body := range map[string]string{
		"missing email":    `{"password":"s3cret"}`,
		"missing password": `{"email":"user@example.com"}`,
		"blank email":      `{"email":"   ","password":"s3cret"}`,
	} {
		t.Run(name, func(t *testing.T) {
			if rec := doAuth(t, h.Register, "/auth/register", body); rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	h, repo := newAuthHandler()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	repo.users["user@example.com"] = &entity.User{ID: uuid.New(), Email: "user@example.com", PasswordHash: string(hash)}

	rec := doAuth(t, h.Login, "/auth/login", `{"email":"user@example.com","password":"s3cret-pass"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp dto.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected access_token in response")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h, _ := newAuthHandler()

	rec := doAuth(t, h.Login, "/auth/login", `{"email":"ghost@example.com","password":"whatever"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if resp.Error != "invalid credentials" {
		t.Errorf("unexpected error message: %q", resp.Error)
	}
}
