package controller

import (
	"github.com/schemahub/schemahub/web/service"

	"github.com/gin-gonic/gin"
)

// ServerController exposes the host status snapshot to logged-in users.
type ServerController struct {
	BaseController

	serverService *service.ServerService
}

// NewServerController creates a ServerController and initializes its routes.
func NewServerController(g *gin.RouterGroup, sessionService *service.SessionService, serverService *service.ServerService) *ServerController {
	a := &ServerController{
		BaseController: BaseController{sessionService: sessionService},
		serverService:  serverService,
	}
	a.initRouter(g)
	return a
}

func (a *ServerController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/server")
	g.Use(a.checkLogin)

	g.GET("/status", a.status)
}

func (a *ServerController) status(c *gin.Context) {
	jsonObj(c, a.serverService.GetStatus(), nil)
}
