package controller

import (
	"net/http"

	"github.com/schemahub/schemahub/web/service"
	"github.com/schemahub/schemahub/web/session"

	"github.com/gin-gonic/gin"
)

// PostForm represents a create or update submission.
type PostForm struct {
	Title   string `json:"title" form:"title"`
	Content string `json:"content" form:"content"`
}

// PostController handles the post lifecycle. Reads of published content are
// public; every mutation sits behind checkLogin.
type PostController struct {
	BaseController

	postService *service.PostService
}

// NewPostController creates a PostController and initializes its routes.
func NewPostController(g *gin.RouterGroup, sessionService *service.SessionService, postService *service.PostService) *PostController {
	a := &PostController{
		BaseController: BaseController{sessionService: sessionService},
		postService:    postService,
	}
	a.initRouter(g)
	return a
}

func (a *PostController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/post")

	g.GET("/list", a.getAllPublished)
	g.GET("/get/:id", a.getPost)
	g.GET("/likes/:id", a.getLikes)

	auth := g.Group("")
	auth.Use(a.checkLogin)
	auth.GET("/mine", a.getOwnPosts)
	auth.POST("/add", a.addPost)
	auth.POST("/update/:id", a.updatePost)
	auth.POST("/del/:id", a.delPost)
	auth.POST("/publish/:id", a.publishPost)
	auth.POST("/unpublish/:id", a.unpublishPost)
	auth.POST("/like/:id", a.likePost)
	auth.POST("/unlike/:id", a.unlikePost)
}

// getAllPublished lists published posts, newest first.
func (a *PostController) getAllPublished(c *gin.Context) {
	posts, err := a.postService.GetAllPublished()
	jsonObj(c, posts, err)
}

// getPost returns a post by id. A missing post is a null obj, which callers
// must check for.
func (a *PostController) getPost(c *gin.Context) {
	post, err := a.postService.Get(c.Param("id"))
	jsonObj(c, post, err)
}

// getLikes lists the likes of a post.
func (a *PostController) getLikes(c *gin.Context) {
	likes, err := a.postService.GetLikes(c.Param("id"))
	jsonObj(c, likes, err)
}

// getOwnPosts lists the caller's posts, drafts included.
func (a *PostController) getOwnPosts(c *gin.Context) {
	user := session.GetLoginUser(c)
	posts, err := a.postService.GetOwn(user.Id)
	jsonObj(c, posts, err)
}

// addPost creates a post owned by the caller.
func (a *PostController) addPost(c *gin.Context) {
	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, "Invalid form data")
		return
	}
	user := session.GetLoginUser(c)
	post, err := a.postService.Create(user.Id, form.Title, form.Content)
	if err != nil {
		jsonError(c, "Failed to create post", err)
		return
	}
	jsonObj(c, post, nil)
}

// updatePost rewrites the caller's post.
func (a *PostController) updatePost(c *gin.Context) {
	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, "Invalid form data")
		return
	}
	user := session.GetLoginUser(c)
	if err := a.postService.Update(c.Param("id"), form.Title, form.Content, user.Id); err != nil {
		jsonError(c, "Failed to update post", err)
		return
	}
	jsonMsg(c, "", nil)
}

// delPost deletes the caller's post.
func (a *PostController) delPost(c *gin.Context) {
	user := session.GetLoginUser(c)
	if err := a.postService.Delete(c.Param("id"), user.Id); err != nil {
		jsonError(c, "Failed to delete post", err)
		return
	}
	jsonMsg(c, "", nil)
}

// publishPost makes the caller's post publicly visible.
func (a *PostController) publishPost(c *gin.Context) {
	user := session.GetLoginUser(c)
	if err := a.postService.Publish(c.Param("id"), user.Id); err != nil {
		jsonError(c, "Failed to publish post", err)
		return
	}
	jsonMsg(c, "", nil)
}

// unpublishPost turns the caller's post back into a draft.
func (a *PostController) unpublishPost(c *gin.Context) {
	user := session.GetLoginUser(c)
	if err := a.postService.Unpublish(c.Param("id"), user.Id); err != nil {
		jsonError(c, "Failed to unpublish post", err)
		return
	}
	jsonMsg(c, "", nil)
}

// likePost records the caller's like of a post.
func (a *PostController) likePost(c *gin.Context) {
	user := session.GetLoginUser(c)
	like, err := a.postService.Like(user.Id, c.Param("id"))
	if err != nil {
		jsonError(c, "Failed to like post", err)
		return
	}
	jsonObj(c, like, nil)
}

// unlikePost removes the caller's like of a post.
func (a *PostController) unlikePost(c *gin.Context) {
	user := session.GetLoginUser(c)
	if err := a.postService.Unlike(user.Id, c.Param("id")); err != nil {
		jsonError(c, "Failed to unlike post", err)
		return
	}
	jsonMsg(c, "", nil)
}
