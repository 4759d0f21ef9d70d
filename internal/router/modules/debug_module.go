package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// expvar counters (auth map plus runtime memstats)
	rg.GET("/debug/vars", gin.WrapH(expvar.Handler()))
}
