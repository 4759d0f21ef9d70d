package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/ornakala-backend/internal/application"
	handlers "github.com/oksasatya/ornakala-backend/internal/interface/http"
	"github.com/oksasatya/ornakala-backend/internal/interface/middleware"
)

// AuthModule wires the credential lifecycle:
// Public: POST /api/auth/signup, /login, /password-reset, /password-reset/confirm
// Optional auth: GET /api/auth/session
// Protected: POST /api/auth/logout, GET /api/auth/me
type AuthModule struct {
	Handler *handlers.AuthHandler
	Gate    *application.AuthGate
}

func NewAuthModule(h *handlers.AuthHandler, gate *application.AuthGate) *AuthModule {
	return &AuthModule{Handler: h, Gate: gate}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/auth")
	g.POST("/signup", m.Handler.Signup)
	g.POST("/login", m.Handler.Login)
	g.POST("/password-reset", m.Handler.RequestPasswordReset)
	g.POST("/password-reset/confirm", m.Handler.ConfirmPasswordReset)
	g.GET("/session", middleware.OptionalAuth(m.Gate), m.Handler.Session)

	auth := g.Group("/")
	auth.Use(middleware.Auth(m.Gate))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/me", m.Handler.Me)
	}
}
