package controller

import (
	"net/http"

	"github.com/schemahub/schemahub/config"
	"github.com/schemahub/schemahub/logger"
	"github.com/schemahub/schemahub/web/service"
	"github.com/schemahub/schemahub/web/session"

	"github.com/gin-gonic/gin"
)

// AuthForm represents a signup or login submission.
type AuthForm struct {
	Username     string `json:"username" form:"username"`
	Password     string `json:"password" form:"password"`
	CaptchaToken string `json:"captchaToken" form:"captchaToken"`
}

// IndexController handles signup, login, logout and the current-user lookup.
type IndexController struct {
	BaseController

	userService    *service.UserService
	captchaService *service.CaptchaService
}

// NewIndexController creates an IndexController and initializes its routes.
func NewIndexController(g *gin.RouterGroup, sessionService *service.SessionService, userService *service.UserService, captchaService *service.CaptchaService) *IndexController {
	a := &IndexController{
		BaseController: BaseController{sessionService: sessionService},
		userService:    userService,
		captchaService: captchaService,
	}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.POST("/signup", a.signup)
	g.POST("/login", a.login)
	g.GET("/logout", a.logout)
	g.GET("/user", a.user)
}

// checkCaptcha gates the request when captcha verification is configured.
// It must pass before any credential check runs.
func (a *IndexController) checkCaptcha(c *gin.Context, token string) bool {
	if !a.captchaService.Enabled() {
		return true
	}
	ok, err := a.captchaService.Verify(token)
	if err != nil {
		jsonMsg(c, "Captcha verification failed", err)
		return false
	}
	if !ok {
		pureJsonMsg(c, http.StatusOK, false, service.ErrInvalidCaptcha.Error())
		return false
	}
	return true
}

// signup registers a new account and logs it in.
func (a *IndexController) signup(c *gin.Context) {
	var form AuthForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, "Invalid form data")
		return
	}
	if !a.checkCaptcha(c, form.CaptchaToken) {
		return
	}

	user, sess, err := a.userService.SignUp(form.Username, form.Password)
	if err != nil {
		jsonError(c, "Failed to create user", err)
		return
	}

	logger.Infof("%s signed up, IP: %s", user.Username, getRemoteIp(c))
	session.SetCookie(c, sess.Id, int(config.GetSessionMaxAge().Seconds()))
	jsonObj(c, user, nil)
}

// login authenticates an existing account.
func (a *IndexController) login(c *gin.Context) {
	var form AuthForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, "Invalid form data")
		return
	}
	if !a.checkCaptcha(c, form.CaptchaToken) {
		return
	}

	user, sess, err := a.userService.Login(form.Username, form.Password)
	if err != nil {
		if err == service.ErrBadCredentials {
			logger.Warningf("failed login for %q, IP: %s", form.Username, getRemoteIp(c))
		}
		jsonError(c, "Failed to log in", err)
		return
	}

	logger.Infof("%s logged in successfully, IP: %s", user.Username, getRemoteIp(c))
	session.SetCookie(c, sess.Id, int(config.GetSessionMaxAge().Seconds()))
	jsonObj(c, user, nil)
}

// logout invalidates the presented session, if any, and clears the cookie.
// Always answers 200.
func (a *IndexController) logout(c *gin.Context) {
	token := session.GetToken(c)
	if token != "" {
		if err := a.sessionService.Invalidate(token); err != nil {
			logger.Warning("invalidate session:", err)
		}
	}
	session.ClearCookie(c)
	jsonMsg(c, "", nil)
}

// user returns the caller's user object, or null when anonymous. 200 either
// way.
func (a *IndexController) user(c *gin.Context) {
	user, _, err := a.sessionService.Validate(session.GetToken(c))
	if err != nil {
		jsonMsg(c, "Failed to resolve session", err)
		return
	}
	c.JSON(http.StatusOK, user)
}
