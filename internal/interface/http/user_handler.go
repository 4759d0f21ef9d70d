package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/ornakala-backend/internal/application"
	"github.com/oksasatya/ornakala-backend/internal/interface/middleware"
	"github.com/oksasatya/ornakala-backend/pkg/response"
	"github.com/oksasatya/ornakala-backend/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateProfileRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		writeError(c, h.Logger, "get_profile", application.ErrUnauthenticated)
		return
	}
	fresh, err := h.Svc.GetProfile(c.Request.Context(), u.ID)
	if err != nil {
		writeError(c, h.Logger, "get_profile", err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(fresh), "profile", nil)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		writeError(c, h.Logger, "update_profile", application.ErrUnauthenticated)
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	updated, err := h.Svc.UpdateProfile(c.Request.Context(), u.ID, application.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeError(c, h.Logger, "update_profile", err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(updated), "profile updated", nil)
}

// Search GET /api/users/search?q=...&size=10
func (h *UserHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", gin.H{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		writeError(c, h.Logger, "search_users", err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}
