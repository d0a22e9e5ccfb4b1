package captcha

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"EDT/internal/config"
	"EDT/pkg/xerr"
)

func newSiteverify(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.PostForm.Get("secret") != "s3cret" {
			w.Write([]byte(`{"success":false,"error-codes":["invalid-input-secret"]}`))
			return
		}
		if r.PostForm.Get("response") == "good" {
			w.Write([]byte(`{"success":true,"hostname":"edt.local"}`))
			return
		}
		w.Write([]byte(`{"success":false,"error-codes":["invalid-input-response"]}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestVerify(t *testing.T) {
	srv := newSiteverify(t)
	v := NewVerifier(config.CaptchaConfig{SecretKey: "s3cret", VerifyURL: srv.URL})

	res, err := v.Verify(context.Background(), "good", "127.0.0.1")
	if err != nil || !res.Success || res.Hostname != "edt.local" {
		t.Fatalf("good token: res=%+v err=%v", res, err)
	}

	_, err = v.Verify(context.Background(), "bad", "")
	if !xerr.IsKind(err, xerr.KindValidation) {
		t.Fatalf("bad token: got=%v want Validation", err)
	}

	_, err = v.Verify(context.Background(), "  ", "")
	if !xerr.IsKind(err, xerr.KindValidation) {
		t.Fatalf("empty token: got=%v want Validation", err)
	}
}

func TestVerifyWithoutSecret(t *testing.T) {
	v := NewVerifier(config.CaptchaConfig{})
	_, err := v.Verify(context.Background(), "good", "")
	if !xerr.IsKind(err, xerr.KindServiceUnavailable) {
		t.Fatalf("got=%v want ServiceUnavailable", err)
	}
}

func TestVerifyNetworkFailure(t *testing.T) {
	srv := newSiteverify(t)
	srv.Close()
	v := NewVerifier(config.CaptchaConfig{SecretKey: "s3cret", VerifyURL: srv.URL})
	_, err := v.Verify(context.Background(), "good", "")
	if !xerr.IsKind(err, xerr.KindUpstream) {
		t.Fatalf("got=%v want Upstream", err)
	}
}
