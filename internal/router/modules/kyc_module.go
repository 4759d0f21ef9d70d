package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/ornakala-backend/internal/application"
	handlers "github.com/oksasatya/ornakala-backend/internal/interface/http"
	"github.com/oksasatya/ornakala-backend/internal/interface/middleware"
)

type KYCModule struct {
	Handler *handlers.KYCHandler
	Gate    *application.AuthGate
}

func NewKYCModule(h *handlers.KYCHandler, gate *application.AuthGate) *KYCModule {
	return &KYCModule{Handler: h, Gate: gate}
}

func (m *KYCModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/kyc")
	g.Use(middleware.Auth(m.Gate))
	{
		g.GET("", m.Handler.Get)
		g.POST("", m.Handler.Create)
		g.PUT("", m.Handler.Update)
		g.DELETE("", m.Handler.Delete)
		g.POST("/document", m.Handler.UploadDocument)
	}
}
