package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orgboard/orgboard-api/internal/api/metrics"
	"github.com/orgboard/orgboard-api/internal/core/domain"
	"github.com/orgboard/orgboard-api/internal/core/ports"
)

type AuthHandler struct {
	sessions ports.SessionService
}

func NewAuthHandler(sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin finance writer user"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	User            *domain.User `json:"user"`
	Token           string       `json:"token,omitempty"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	Loading         bool         `json:"loading,omitempty"`
}

func toSessionResponse(s domain.Session) sessionResponse {
	return sessionResponse{User: s.User, Token: s.Token, IsAuthenticated: s.IsAuthenticated}
}

// Register creates a new identity and returns its authenticated session.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.sessions.Register(c.Request().Context(), req.Name, req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(session.User.Role)).Inc()
	return c.JSON(http.StatusCreated, toSessionResponse(session))
}

// Login authenticates credentials and returns the established session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// Logout destroys the current session.
//
// @Summary      Logout
// @Tags         auth
// @Success      204  "session cleared"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Logout(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

// Session reports the current session state, including whether rehydration is
// still in flight.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	resp := toSessionResponse(h.sessions.Current())
	resp.Loading = h.sessions.Loading()
	return c.JSON(http.StatusOK, resp)
}
