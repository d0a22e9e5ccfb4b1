package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"EDT/internal/config"
	"EDT/pkg/xerr"
)

func TestClassifyError(t *testing.T) {
	cases := []struct {
		err  error
		want xerr.UpstreamCause
	}{
		{errors.New("error, status code: 401, message: API key not valid"), xerr.CauseCredential},
		{errors.New("status code: 429, RESOURCE_EXHAUSTED"), xerr.CauseQuota},
		{errors.New("You exceeded your current quota"), xerr.CauseQuota},
		{fmt.Errorf("post: %w", context.DeadlineExceeded), xerr.CauseNetwork},
		{errors.New("dial tcp: lookup api: no such host"), xerr.CauseNetwork},
		{errors.New("something odd"), xerr.CauseUnknown},
	}
	for _, tc := range cases {
		if got := ClassifyError(tc.err); got != tc.want {
			t.Fatalf("ClassifyError(%q): got=%s want=%s", tc.err, got, tc.want)
		}
	}
}

func TestUpstreamMessagesDiffer(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range []xerr.UpstreamCause{xerr.CauseCredential, xerr.CauseQuota, xerr.CauseNetwork} {
		e := xerr.Upstream(c, errors.New("x"))
		if e.Code != 503 || e.Kind != xerr.KindUpstream {
			t.Fatalf("cause %s: got code=%d kind=%s", c, e.Code, e.Kind)
		}
		if seen[e.Message] {
			t.Fatalf("duplicate message for %s", c)
		}
		seen[e.Message] = true
	}
}

func TestNewChatModelFromConfigMissingKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	_, _, err := NewChatModelFromConfig(context.Background(), config.AIChatModelConfig{Provider: "gemini"})
	if err == nil {
		t.Fatalf("expected missing key error")
	}
	_, _, err = NewChatModelFromConfig(context.Background(), config.AIChatModelConfig{Provider: "disabled"})
	if err == nil {
		t.Fatalf("expected disabled error")
	}
}
