package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"EDT/internal/config"
	"EDT/pkg/xerr"
)

const (
	TurnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"
	HCaptchaVerifyURL  = "https://api.hcaptcha.com/siteverify"
)

// Result siteverify 返回值中调用方关心的部分
type Result struct {
	Success    bool     `json:"success"`
	Hostname   string   `json:"hostname,omitempty"`
	ErrorCodes []string `json:"error-codes,omitempty"`
}

// Verifier 服务端校验人机验证令牌，密钥只存在于服务端
type Verifier struct {
	secret    string
	verifyURL string
	client    *http.Client
}

func NewVerifier(conf config.CaptchaConfig) *Verifier {
	verifyURL := strings.TrimSpace(conf.VerifyURL)
	if verifyURL == "" {
		verifyURL = TurnstileVerifyURL
		if strings.EqualFold(conf.Provider, "hcaptcha") {
			verifyURL = HCaptchaVerifyURL
		}
	}
	timeout := time.Duration(conf.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Verifier{
		secret:    strings.TrimSpace(conf.SecretKey),
		verifyURL: verifyURL,
		client:    &http.Client{Timeout: timeout},
	}
}

func (v *Verifier) Verify(ctx context.Context, token string, remoteIP string) (*Result, error) {
	if v.secret == "" {
		return nil, xerr.ServiceUnavailable("CAPTCHA verification is not configured")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, xerr.Validation("captcha token is required")
	}

	form := url.Values{"secret": {v.secret}, "response": {token}}
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, xerr.Internal(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, xerr.Upstream(xerr.CauseNetwork, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, xerr.Upstream(xerr.CauseUnknown, fmt.Errorf("siteverify status %d", resp.StatusCode))
	}

	var out Result
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, xerr.Upstream(xerr.CauseUnknown, err)
	}
	if !out.Success {
		return &out, xerr.Validation("CAPTCHA verification failed")
	}
	return &out, nil
}
