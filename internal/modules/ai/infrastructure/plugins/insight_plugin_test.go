package plugins

import (
	"strings"
	"testing"
)

func TestInsightPromptKeepsSummaryLines(t *testing.T) {
	summary := "Goals (2):\n- Finish PLC course [in-progress]\n- Earn PE license [completed]\nTechnical logs (0):\n- none"
	prompt := NewInsightPlugin().BuildPrompt(Facts{"summary": "  " + summary + "\n\n"})
	if !strings.Contains(prompt, summary+"\n") {
		t.Fatalf("summary lines collapsed: got=%q", prompt)
	}

	long := strings.Repeat("- line\n", 4000)
	prompt = NewInsightPlugin().BuildPrompt(Facts{"summary": long})
	if n := strings.Count(prompt, "- line"); n == 0 || n >= 4000 {
		t.Fatalf("truncated lines: got=%d want between 1 and 3999", n)
	}
}

func TestStrCollapsesWhitespace(t *testing.T) {
	f := Facts{"title": "  DB\n\ttimeout  under   load "}
	if got := f.Str("title", 10); got != "DB timeout" {
		t.Fatalf("Str: got=%q want=%q", got, "DB timeout")
	}
	if got := f.Text("title", 100); got != "DB\n\ttimeout  under   load" {
		t.Fatalf("Text: got=%q", got)
	}
}
