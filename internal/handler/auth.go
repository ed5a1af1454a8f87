package handler

import (
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities
	"time"     // token lifetimes

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/office-management/internal/auth"    // token issuing and password checks
	"github.com/iliyamo/office-management/internal/service" // error kinds for bind failures
)

// AuthHandler issues access tokens for the configured administrator.
type AuthHandler struct {
	Creds  auth.Credentials
	Secret string
	TTL    time.Duration
}

// NewAuthHandler builds an AuthHandler issuing tokens valid for ttl.
func NewAuthHandler(creds auth.Credentials, secret string, ttl time.Duration) *AuthHandler {
	return &AuthHandler{Creds: creds, Secret: secret, TTL: ttl}
}

// ----- DTOs -----

type tokenReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResp struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Role        string    `json:"role"`
}

// Token handles POST /auth/token: check the credentials and return an
// ADMIN access token.
func (h *AuthHandler) Token(c echo.Context) error {
	var req tokenReq
	if err := bindJSON(c, &req); err != nil {
		return c.JSON(statusOf(service.KindOf(err)), echo.Map{"error": err.Error()})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}
	if !h.Creds.Check(req.Username, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	tok, err := auth.NewAccessToken(h.Secret, req.Username, auth.RoleAdmin, h.TTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
	}
	return c.JSON(http.StatusOK, tokenResp{
		AccessToken: tok.Token,
		TokenType:   "Bearer",
		ExpiresAt:   tok.Exp,
		Role:        auth.RoleAdmin,
	})
}
