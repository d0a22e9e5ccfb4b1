package structured

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

const fence = "```"

// ErrNoObject 模型输出中找不到 JSON 对象
var ErrNoObject = errors.New("no JSON object in model output")

// StripCodeFence 去掉 Markdown 代码块围栏；非围栏文本原样返回，对结果再次调用不会改变它
func StripCodeFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, fence) {
		return s
	}
	for strings.HasPrefix(t, fence) {
		t = unfence(t)
	}
	return t
}

func unfence(t string) string {
	rest := t[len(fence):]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		// 首行是语言标记（```json）或为空
		if tag := strings.TrimSpace(rest[:i]); !strings.ContainsAny(tag, "{[ \t") {
			rest = rest[i+1:]
		}
	} else {
		rest = strings.TrimPrefix(strings.TrimLeft(rest, " \t"), "json")
	}
	rest = strings.TrimSpace(rest)
	rest = strings.TrimSuffix(rest, fence)
	return strings.TrimSpace(rest)
}

// ExtractJSONObject 返回第一个括号配平的 {...} 片段，字符串内的括号与转义不计入
func ExtractJSONObject(s string) (string, bool) {
	for start := strings.IndexByte(s, '{'); start >= 0; {
		if end := matchBrace(s, start); end > 0 {
			return s[start : end+1], true
		}
		next := strings.IndexByte(s[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", false
}

func matchBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// ParseObject 去围栏后直接解析；失败时退回到第一个配平的对象片段
func ParseObject(raw string) (map[string]any, error) {
	text := StripCodeFence(raw)
	if obj, err := decodeObject(text); err == nil {
		return obj, nil
	}
	span, ok := ExtractJSONObject(text)
	if !ok {
		return nil, ErrNoObject
	}
	return decodeObject(span)
}

// 数字保留为 json.Number，百分比字段需要区分 1 与 1.0
func decodeObject(text string) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(strings.TrimSpace(text))))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, ErrNoObject
	}
	if dec.More() {
		return nil, errors.New("trailing data after JSON object")
	}
	return obj, nil
}
