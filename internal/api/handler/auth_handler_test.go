package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/orgboard/orgboard-api/internal/core/domain"
)

type stubSessionService struct {
	loginFn    func(ctx context.Context, email, password string) (domain.Session, error)
	registerFn func(ctx context.Context, name, email, password string, role domain.Role) (domain.Session, error)
	current    domain.Session
	loading    bool
	logouts    int
}

func (s *stubSessionService) Initialize(context.Context) error { return nil }

func (s *stubSessionService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubSessionService) Register(ctx context.Context, name, email, password string, role domain.Role) (domain.Session, error) {
	return s.registerFn(ctx, name, email, password, role)
}

func (s *stubSessionService) Logout(context.Context)  { s.logouts++ }
func (s *stubSessionService) Current() domain.Session { return s.current }
func (s *stubSessionService) Loading() bool           { return s.loading }

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubSessionService{
		loginFn: func(_ context.Context, email, password string) (domain.Session, error) {
			if email != "alice@example.com" || password != "s3cret-pass" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return domain.Session{
				User:            &domain.User{ID: "u-1", Name: "Alice", Email: email, Role: domain.RoleFinance},
				Token:           "token123",
				IsAuthenticated: true,
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"s3cret-pass"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" || resp["isAuthenticated"] != true {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["id"] != "u-1" || user["role"] != "finance" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
}

func TestAuthHandler_Login_InvalidCredentialsPropagates(t *testing.T) {
	stub := &stubSessionService{
		loginFn: func(context.Context, string, string) (domain.Session, error) {
			return domain.Anonymous(), domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/login", `{"email":"x@y.com","password":"nope"}`)
	err := h.Login(c)
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected error to reach the central handler, got %v", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	stub := &stubSessionService{
		loginFn: func(context.Context, string, string) (domain.Session, error) {
			t.Fatalf("service must not be called")
			return domain.Anonymous(), nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/login", `{"email":"x@y.com"}`)
	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubSessionService{
		registerFn: func(_ context.Context, name, email, password string, role domain.Role) (domain.Session, error) {
			if name != "Bob" || role != domain.RoleWriter {
				t.Fatalf("unexpected args: %s %s", name, role)
			}
			return domain.Session{
				User:            &domain.User{ID: "u-2", Name: name, Email: email, Role: role},
				Token:           "token456",
				IsAuthenticated: true,
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"name":"Bob","email":"bob@example.com","password":"longenough","role":"writer"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_RejectsUnknownRole(t *testing.T) {
	stub := &stubSessionService{
		registerFn: func(context.Context, string, string, string, domain.Role) (domain.Session, error) {
			t.Fatalf("service must not be called")
			return domain.Anonymous(), nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/register",
		`{"name":"Eve","email":"eve@example.com","password":"longenough","role":"superadmin"}`)
	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for undeclared role, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	stub := &stubSessionService{}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if stub.logouts != 1 {
		t.Fatalf("expected one logout call, got %d", stub.logouts)
	}
}

func TestAuthHandler_Session_ReportsLoading(t *testing.T) {
	stub := &stubSessionService{loading: true}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/auth/session", "")
	if err := h.Session(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["loading"] != true || resp["isAuthenticated"] != false {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
