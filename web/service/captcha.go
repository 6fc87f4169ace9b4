package service

import (
	"github.com/schemahub/schemahub/config"
	"github.com/schemahub/schemahub/util/common"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
)

const turnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// CaptchaService verifies Turnstile tokens against Cloudflare. It is off
// unless a secret key is configured.
type CaptchaService struct{}

func NewCaptchaService() *CaptchaService {
	return &CaptchaService{}
}

func (s *CaptchaService) Enabled() bool {
	return config.GetCaptchaSecret() != ""
}

// Verify posts the token to the siteverify endpoint and returns the success
// flag of the response. An empty token never verifies.
func (s *CaptchaService) Verify(token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)
	args.Set("secret", config.GetCaptchaSecret())
	args.Set("response", token)

	statusCode, body, err := fasthttp.Post(nil, turnstileVerifyURL, args)
	if err != nil {
		return false, err
	}
	if statusCode != fasthttp.StatusOK {
		return false, common.NewErrorf("captcha verify returned status %d", statusCode)
	}

	var result struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return false, err
	}
	return result.Success, nil
}
