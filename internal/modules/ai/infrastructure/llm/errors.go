package llm

import (
	"context"
	"errors"
	"net"
	"strings"

	"EDT/pkg/xerr"
)

// ClassifyError 根据错误内容推断上游失败原因
func ClassifyError(err error) xerr.UpstreamCause {
	if err == nil {
		return xerr.CauseUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return xerr.CauseNetwork
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return xerr.CauseNetwork
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "401", "403", "api key", "api_key", "apikey", "unauthorized", "permission denied", "invalid authentication"):
		return xerr.CauseCredential
	case containsAny(msg, "429", "quota", "rate limit", "ratelimit", "resource_exhausted", "too many requests"):
		return xerr.CauseQuota
	case containsAny(msg, "timeout", "connection refused", "connection reset", "no such host", "eof", "network"):
		return xerr.CauseNetwork
	default:
		return xerr.CauseUnknown
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
