package service

import "errors"

// actionError is an expected request failure: unauthorized, invalid input,
// bad credentials. Controllers render it inline; everything else is treated
// as fatal for the request.
type actionError string

func (e actionError) Error() string { return string(e) }

const (
	ErrUnauthorized          = actionError("Unauthorized")
	ErrInvalidUsername       = actionError("Invalid username")
	ErrInvalidPassword       = actionError("Invalid password")
	ErrUsernameTaken         = actionError("Username is taken")
	ErrBadCredentials        = actionError("Incorrect username or password")
	ErrInvalidCaptcha        = actionError("Invalid captcha")
	ErrMissingTitleOrContent = actionError("Missing title or content")
	ErrContentXSS            = actionError("Content contains potential XSS injection")
	ErrContentNotJSON        = actionError("Content is not valid JSON")
	ErrPostNotFound          = actionError("Post not found")
)

// IsActionError reports whether err should be shown to the user as an inline
// message rather than a generic failure.
func IsActionError(err error) bool {
	var ae actionError
	return errors.As(err, &ae)
}
