// Package session owns the cookie that carries the session token and the
// per-request login state stashed in the gin context.
package session

import (
	"github.com/schemahub/schemahub/database/model"

	"github.com/gin-gonic/gin"
)

// CookieName is the cookie carrying the opaque session token.
const CookieName = "schemahub_session"

const (
	loginUserKey    = "LOGIN_USER"
	loginSessionKey = "LOGIN_SESSION"
)

// GetToken returns the session token presented by the request, or "".
func GetToken(c *gin.Context) string {
	token, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return token
}

// SetCookie attaches the session token to the response. maxAge is seconds.
func SetCookie(c *gin.Context, token string, maxAge int) {
	c.SetCookie(CookieName, token, maxAge, "/", "", false, true)
}

// ClearCookie expires the session cookie.
func ClearCookie(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}

// SetLoginUser records the authenticated caller for the rest of the request.
func SetLoginUser(c *gin.Context, user *model.User, sess *model.Session) {
	c.Set(loginUserKey, user)
	c.Set(loginSessionKey, sess)
}

func GetLoginUser(c *gin.Context) *model.User {
	if obj, ok := c.Get(loginUserKey); ok {
		if user, ok := obj.(*model.User); ok {
			return user
		}
	}
	return nil
}

func GetLoginSession(c *gin.Context) *model.Session {
	if obj, ok := c.Get(loginSessionKey); ok {
		if sess, ok := obj.(*model.Session); ok {
			return sess
		}
	}
	return nil
}

func IsLogin(c *gin.Context) bool {
	return GetLoginUser(c) != nil
}
