// Package controller provides the HTTP request handlers of the registry:
// authentication, post actions, raw schema serving and server status.
package controller

import (
	"net/http"

	"github.com/schemahub/schemahub/web/service"
	"github.com/schemahub/schemahub/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController carries the authentication gate shared by all controllers.
type BaseController struct {
	sessionService *service.SessionService
}

// checkLogin resolves the session cookie before anything else runs. An
// anonymous caller is rejected with the generic Unauthorized message and the
// handler chain stops; no input is looked at and no store write can happen.
func (a *BaseController) checkLogin(c *gin.Context) {
	user, sess, err := a.sessionService.Validate(session.GetToken(c))
	if err != nil {
		pureJsonMsg(c, http.StatusInternalServerError, false, "Failed to validate session")
		c.Abort()
		return
	}
	if user == nil {
		pureJsonMsg(c, http.StatusUnauthorized, false, service.ErrUnauthorized.Error())
		c.Abort()
		return
	}
	session.SetLoginUser(c, user, sess)
	c.Next()
}
