package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/ornakala-backend/internal/application"
	handlers "github.com/oksasatya/ornakala-backend/internal/interface/http"
	"github.com/oksasatya/ornakala-backend/internal/interface/middleware"
)

// UserModule wires profile routes. All of them require a valid access token.
type UserModule struct {
	Handler *handlers.UserHandler
	Gate    *application.AuthGate
}

func NewUserModule(h *handlers.UserHandler, gate *application.AuthGate) *UserModule {
	return &UserModule{Handler: h, Gate: gate}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Gate))
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		// Search users via Elasticsearch
		auth.GET("/users/search", m.Handler.Search)
	}
}
