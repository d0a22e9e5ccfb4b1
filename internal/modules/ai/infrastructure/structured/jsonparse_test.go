package structured

import (
	"reflect"
	"testing"
)

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"plain keeps whitespace", "  {\"a\":1}\n", "  {\"a\":1}\n"},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"single line", "```json {\"a\":1}```", `{"a":1}`},
		{"unterminated", "```json\n{\"a\":1}", `{"a":1}`},
		{"nested", "```\n```json\n{\"a\":1}\n```\n```", `{"a":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := StripCodeFence(tc.in)
			if got != tc.want {
				t.Fatalf("got=%q want=%q", got, tc.want)
			}
			if again := StripCodeFence(got); again != got {
				t.Fatalf("not idempotent: first=%q second=%q", got, again)
			}
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	in := `Sure! Here is the result: {"title":"a {tricky} \"quote\"","n":{"x":1}} Let me know.`
	span, ok := ExtractJSONObject(in)
	if !ok || span != `{"title":"a {tricky} \"quote\"","n":{"x":1}}` {
		t.Fatalf("got=%q ok=%v", span, ok)
	}
	if _, ok := ExtractJSONObject("no braces here"); ok {
		t.Fatalf("expected no object")
	}
	if span, ok := ExtractJSONObject(`{ broken {"a":1}`); !ok || span != `{"a":1}` {
		t.Fatalf("unbalanced prefix: got=%q ok=%v", span, ok)
	}
}

func TestParseObjectRecoveryMatchesDirectParse(t *testing.T) {
	bare := `{"tags":["pump","seal"],"confidence":0.8}`
	direct, err := ParseObject(bare)
	if err != nil {
		t.Fatalf("direct: %v", err)
	}
	for _, wrapped := range []string{
		"Here you go:\n" + bare + "\nHope this helps!",
		"```json\n" + bare + "\n```",
		"```\nResult:\n" + bare + "\n```",
	} {
		got, err := ParseObject(wrapped)
		if err != nil {
			t.Fatalf("recover %q: %v", wrapped, err)
		}
		if !reflect.DeepEqual(got, direct) {
			t.Fatalf("got=%v want=%v", got, direct)
		}
	}
	if _, err := ParseObject("I cannot help with that."); err == nil {
		t.Fatalf("expected error for prose")
	}
	if _, err := ParseObject(`["not","an","object"]`); err == nil {
		t.Fatalf("expected error for array")
	}
}
