package plugins

import (
	"fmt"
	"strings"

	"EDT/internal/modules/ai/infrastructure/llm"
	"EDT/internal/modules/ai/infrastructure/structured"
)

const (
	reportTextLen = 1000
	reportListLen = 10
	reportItemLen = 300
)

// ReportPlugin 根据技术日志起草事件报告
type ReportPlugin struct {
	schema *structured.Schema
}

func NewReportPlugin() *ReportPlugin {
	return &ReportPlugin{schema: &structured.Schema{Fields: []structured.Field{
		{Name: "title", Kind: structured.String, Required: true, MaxLen: 200},
		{Name: "summary", Kind: structured.String, Required: true, MaxLen: reportTextLen, Hint: "executive summary of the event"},
		{Name: "root_cause", Kind: structured.String, MaxLen: reportTextLen},
		{Name: "actions_taken", Kind: structured.StringArray, MaxItems: reportListLen, MaxLen: reportItemLen},
		{Name: "recommendations", Kind: structured.StringArray, MaxItems: reportListLen, MaxLen: reportItemLen},
		{Name: "lessons_learned", Kind: structured.String, MaxLen: reportTextLen},
	}}}
}

func (p *ReportPlugin) Name() string { return NameDraftReport }
func (p *ReportPlugin) Required() []string { return []string{"title", "description"} }
func (p *ReportPlugin) Schema() *structured.Schema { return p.schema }
func (p *ReportPlugin) Params() llm.GenerationParams {
	return llm.GenerationParams{Temperature: 0.4, TopP: 0.9, TopK: 40, MaxTokens: 2048}
}

func (p *ReportPlugin) BuildPrompt(f Facts) string {
	var b strings.Builder
	b.WriteString("You are a senior reliability engineer writing a concise technical incident report.\n")
	b.WriteString("Use only the facts below; do not invent measurements.\n\n")
	bullet(&b, "Title", f.Str("title", 200))
	bullet(&b, "System", f.Str("system", 100))
	bullet(&b, "Description", f.Str("description", 500))
	bullet(&b, "Resolution", f.Str("resolution", 500))
	bullet(&b, "Outcome", f.Str("outcome", 500))
	return b.String()
}

func (p *ReportPlugin) Fallback(f Facts) map[string]any {
	title := f.Str("title", 200)
	system := f.Str("system", 100)
	if system == "" {
		system = "the affected system"
	}
	resolution := f.Str("resolution", 500)
	actions := []string{fmt.Sprintf("Investigated the issue on %s.", system)}
	if resolution != "" {
		actions = append(actions, resolution)
	}
	outcome := f.Str("outcome", 500)
	if outcome == "" {
		outcome = "Outcome not recorded yet."
	}
	return map[string]any{
		"title":         "Incident report: " + title,
		"summary":       fmt.Sprintf("%s. %s", title, f.Str("description", 500)),
		"root_cause":    "Root cause to be confirmed; review the log description and supporting data.",
		"actions_taken": actions,
		"recommendations": []string{
			fmt.Sprintf("Add a monitoring check on %s for early detection.", system),
			"Update the maintenance procedure with the findings from this event.",
			"Schedule a follow-up review to confirm the fix is effective.",
		},
		"lessons_learned": outcome,
	}
}
