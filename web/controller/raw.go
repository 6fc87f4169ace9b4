package controller

import (
	"net/http"

	"github.com/schemahub/schemahub/util/json_util"
	"github.com/schemahub/schemahub/web/service"

	"github.com/gin-gonic/gin"
)

// RawController serves the stored schema JSON of a post directly as the
// response body, for tooling that installs components from the registry.
type RawController struct {
	postService *service.PostService
}

// NewRawController creates a RawController and initializes its routes.
func NewRawController(g *gin.RouterGroup, postService *service.PostService) *RawController {
	a := &RawController{postService: postService}
	a.initRouter(g)
	return a
}

func (a *RawController) initRouter(g *gin.RouterGroup) {
	g.GET("/raw", a.rawByQuery)
	g.GET("/raw/:id", a.rawByPath)
}

func (a *RawController) rawByQuery(c *gin.Context) {
	a.serveRaw(c, c.Query("path"))
}

func (a *RawController) rawByPath(c *gin.Context) {
	a.serveRaw(c, c.Param("id"))
}

// serveRaw looks up the post and emits its content verbatim. Content is
// validated as JSON at write time, so it can be passed through as-is.
func (a *RawController) serveRaw(c *gin.Context, id string) {
	if id == "" {
		c.String(http.StatusBadRequest, "Missing path")
		return
	}
	post, err := a.postService.Get(id)
	if err != nil {
		jsonMsg(c, "Failed to load post", err)
		return
	}
	if post == nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, json_util.RawMessage(post.Content))
}
