package util

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// GenerateID 生成一个标准的 UUID (v4)，作为各表主键
func GenerateID() string {
	return uuid.New().String()
}

// Truncate 按字符（rune）截断并去除首尾空白
func Truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:max]))
}

// ParseDate 接受 2006-01-02 或 RFC3339，空串返回 nil
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CleanStrings 去空白、去空串、去重（保持顺序）
func CleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
