package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dimitrije/site-admin-api/internal/middleware"
	"github.com/dimitrije/site-admin-api/internal/services"
	"github.com/dimitrije/site-admin-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type AuthHandler struct {
	tokens        TokenIssuerInterface
	secureCookies bool
	logger        *slog.Logger
}

func NewAuthHandler(tokens TokenIssuerInterface, secureCookies bool, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{tokens: tokens, secureCookies: secureCookies, logger: logger}
}

func (h *AuthHandler) Login(c *drift.Context) {
	var req dto.LoginRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		c.BadRequest("username and password are required")
		return
	}

	token, _, err := h.tokens.Issue(req.Username, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		h.logger.WarnContext(c.Request.Context(), "admin login rejected", "username", req.Username)
		c.Unauthorized("invalid credentials")
		return
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	http.SetCookie(c.Response, h.sessionCookie(token, int(h.tokens.TTL().Seconds())))
	h.logger.InfoContext(c.Request.Context(), "admin logged in", "username", req.Username)

	_ = c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// Logout clears the local session cookie. Federated sessions are owned by
// the identity provider and are left alone.
func (h *AuthHandler) Logout(c *drift.Context) {
	http.SetCookie(c.Response, h.sessionCookie("", -1))
	_ = c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

func (h *AuthHandler) Verify(c *drift.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		resp := dto.VerifyResponse{Authenticated: false}
		if status := middleware.GetAuthStatus(c); status == services.AuthProfileMissing {
			resp.Reason = status.String()
		}
		_ = c.JSON(http.StatusUnauthorized, resp)
		return
	}

	_ = c.JSON(http.StatusOK, dto.VerifyResponse{
		Authenticated: true,
		Email:         identity.Email,
		Role:          string(identity.Role),
		DisplayName:   identity.DisplayName,
		Method:        string(identity.Method),
	})
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     services.LocalSessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	}
}
