package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/ornakala-backend/internal/application"
	"github.com/oksasatya/ornakala-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/ornakala-backend/internal/interface/middleware"
	"github.com/oksasatya/ornakala-backend/pkg/helpers"
	"github.com/oksasatya/ornakala-backend/pkg/response"
	"github.com/oksasatya/ornakala-backend/pkg/validation"
)

// AuditRecorder is satisfied by *postgres.AuditLog.
type AuditRecorder interface {
	Record(ctx context.Context, userID uuid.UUID, email, action, ip, userAgent string, metadata map[string]any)
}

type AuthHandler struct {
	SignupSvc *application.SignupService
	LoginSvc  *application.LoginService
	ResetSvc  *application.PasswordResetService
	Gate      *application.AuthGate
	Users     *application.UserService
	Notifier  *application.Notifier
	Audit     AuditRecorder
	Cookies   *helpers.AuthCookies
	Logger    *logrus.Logger
}

func NewAuthHandler(
	signup *application.SignupService,
	login *application.LoginService,
	reset *application.PasswordResetService,
	gate *application.AuthGate,
	users *application.UserService,
	notifier *application.Notifier,
	audit AuditRecorder,
	cookies *helpers.AuthCookies,
	logger *logrus.Logger,
) *AuthHandler {
	return &AuthHandler{
		SignupSvc: signup,
		LoginSvc:  login,
		ResetSvc:  reset,
		Gate:      gate,
		Users:     users,
		Notifier:  notifier,
		Audit:     audit,
		Cookies:   cookies,
		Logger:    logger,
	}
}

func (h *AuthHandler) audit(c *gin.Context, userID uuid.UUID, email, action string, metadata map[string]any) {
	if h.Audit == nil {
		return
	}
	h.Audit.Record(c.Request.Context(), userID, email, action, middleware.ClientIP(c), c.GetHeader("User-Agent"), metadata)
}

type signupRequest struct {
	Email     string  `json:"email" binding:"required"`
	Password  string  `json:"password" binding:"required"`
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ctx := c.Request.Context()
	var opts []application.SignupOption
	if req.FirstName != nil || req.LastName != nil {
		opts = append(opts, application.WithNames(req.FirstName, req.LastName))
	}
	u, err := h.SignupSvc.Register(ctx, req.Email, req.Password, opts...)
	if err != nil {
		writeError(c, h.Logger, "signup", err)
		return
	}
	incr(metricSignup)
	h.audit(c, u.ID, u.Email.String(), postgres.AuditSignup, nil)
	if h.Users != nil {
		h.Users.IndexUser(ctx, u)
	}
	h.Notifier.Welcome(ctx, u)
	response.Success(c, http.StatusCreated, toUserResponse(u), "user registered", nil)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ctx := c.Request.Context()
	u, err := h.LoginSvc.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if isCredentialFailure(err) {
			incr(metricLoginFailed)
			h.audit(c, uuid.Nil, req.Email, postgres.AuditLoginFailed, map[string]any{"error": err.Error()})
		}
		writeError(c, h.Logger, "login", err)
		return
	}
	tok, err := h.LoginSvc.CreateAccessToken(u)
	if err != nil {
		writeError(c, h.Logger, "login", err)
		return
	}
	if err := h.LoginSvc.RecordLogin(ctx, u); err != nil && h.Logger != nil {
		h.Logger.WithError(err).WithField("user_id", u.ID.String()).Warn("record last login failed")
	}
	incr(metricLogin)
	h.audit(c, u.ID, u.Email.String(), postgres.AuditLogin, nil)
	h.Notifier.LoginNotification(ctx, u, middleware.ClientIP(c), c.GetHeader("User-Agent"))
	if h.Cookies != nil {
		h.Cookies.SetAccess(c, tok.Token, tok.ExpiresAt)
	}
	response.Success(c, http.StatusOK, tokenResponse{
		AccessToken: tok.Token,
		TokenType:   "bearer",
		ExpiresIn:   int64(tok.ExpiresIn.Seconds()),
	}, "login successful", map[string]any{"access_expires_at": tok.ExpiresAt})
}

type passwordResetRequest struct {
	Email string `json:"email" binding:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// RequestPasswordReset POST /api/auth/password-reset
// Always answers 200 so callers cannot probe which emails exist.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req passwordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	tok, u, err := h.ResetSvc.RequestReset(c.Request.Context(), req.Email)
	if err != nil {
		writeError(c, h.Logger, "password_reset", err)
		return
	}
	incr(metricResetRequested)
	if u != nil && tok != "" {
		h.audit(c, u.ID, u.Email.String(), postgres.AuditResetRequest, map[string]any{"issued": true})
	} else {
		h.audit(c, uuid.Nil, req.Email, postgres.AuditResetRequest, map[string]any{"issued": false})
	}
	response.Success(c, http.StatusOK, messageResponse{
		Message: "If the email is registered, password reset instructions will follow",
		Success: true,
	}, "password reset requested", nil)
}

type passwordResetConfirmRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ConfirmPasswordReset POST /api/auth/password-reset/confirm
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req passwordResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.ResetSvc.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		writeError(c, h.Logger, "password_reset_confirm", err)
		return
	}
	incr(metricResetConfirmed)
	h.audit(c, uuid.Nil, "", postgres.AuditResetConfirm, map[string]any{"token": "redacted"})
	response.Success(c, http.StatusOK, messageResponse{Message: "Password has been reset", Success: true}, "password updated", nil)
}

// Logout POST /api/auth/logout (auth required)
func (h *AuthHandler) Logout(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if err := h.Gate.Revoke(c.Request.Context(), middleware.AccessToken(c)); err != nil {
		writeError(c, h.Logger, "logout", err)
		return
	}
	if h.Cookies != nil {
		h.Cookies.Clear(c)
	}
	incr(metricLogout)
	if u != nil {
		h.audit(c, u.ID, u.Email.String(), postgres.AuditLogout, nil)
	}
	response.Success(c, http.StatusOK, messageResponse{Message: "Logged out", Success: true}, "logged out", nil)
}

// Me GET /api/auth/me (auth required)
func (h *AuthHandler) Me(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		writeError(c, h.Logger, "me", application.ErrUnauthenticated)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(u), "current user", nil)
}

type sessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *userResponse `json:"user,omitempty"`
}

// Session reports whether the caller holds a usable token; it never answers 401.
func (h *AuthHandler) Session(c *gin.Context) {
	out := sessionResponse{}
	if u := middleware.CurrentUser(c); u != nil {
		ur := toUserResponse(u)
		out = sessionResponse{Authenticated: true, User: &ur}
	}
	response.Success(c, http.StatusOK, out, "session", nil)
}

func isCredentialFailure(err error) bool {
	return errors.Is(err, application.ErrInvalidCredentials) || errors.Is(err, application.ErrInactiveAccount)
}
