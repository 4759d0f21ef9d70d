package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/ornakala-backend/internal/application"
	"github.com/oksasatya/ornakala-backend/internal/domain/entity"
	repo "github.com/oksasatya/ornakala-backend/internal/domain/repository"
	"github.com/oksasatya/ornakala-backend/pkg/response"
)

// writeError maps application errors onto HTTP statuses. Anything unknown is a 500
// and gets logged with the operation name.
func writeError(c *gin.Context, logger *logrus.Logger, op string, err error) {
	var policy *application.PasswordPolicyError
	switch {
	case errors.Is(err, entity.ErrInvalidEmailFormat):
		response.Error[any](c, http.StatusBadRequest, "invalid email format", gin.H{"email": "must be a valid email"})
	case errors.As(err, &policy):
		response.Error[any](c, http.StatusBadRequest, "weak password", gin.H{"reason": policy.Reason})
	case errors.Is(err, application.ErrEmailAlreadyRegistered), errors.Is(err, repo.ErrDuplicateEmail):
		response.Error[any](c, http.StatusConflict, "email already registered", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid email or password", nil)
	case errors.Is(err, application.ErrInactiveAccount):
		response.Error[any](c, http.StatusUnauthorized, "account is deactivated", nil)
	case errors.Is(err, application.ErrInvalidToken):
		response.Error[any](c, http.StatusBadRequest, "invalid or expired token", nil)
	case errors.Is(err, application.ErrUnauthenticated):
		response.Unauthorized(c)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
	case errors.Is(err, application.ErrKYCNotFound):
		response.Error[any](c, http.StatusNotFound, "kyc record not found", nil)
	case errors.Is(err, application.ErrKYCAlreadyExists):
		response.Error[any](c, http.StatusConflict, "kyc record already exists", nil)
	case errors.Is(err, application.ErrInvalidKYCStatus):
		response.Error[any](c, http.StatusBadRequest, "invalid kyc status", nil)
	case errors.Is(err, application.ErrUnsupportedDocumentType):
		response.Error[any](c, http.StatusUnsupportedMediaType, "unsupported document type", gin.H{"file": "must be jpeg, png or pdf"})
	case errors.Is(err, application.ErrStorageNotConfigured):
		response.Error[any](c, http.StatusServiceUnavailable, "document storage unavailable", nil)
	default:
		if logger != nil {
			logger.WithError(err).WithField("op", op).Error("request failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
}
