package plugins

import (
	"fmt"
	"strings"

	"EDT/internal/modules/ai/domain/entity"
	"EDT/internal/modules/ai/infrastructure/llm"
	"EDT/internal/modules/ai/infrastructure/structured"
)

const MaxInsights = 5

// InsightStats 兜底洞察使用的统计值，由调用方根据记录快照计算
type InsightStats struct {
	Goals           int
	CompletedGoals  int
	OverdueGoals    int
	StalledGoals    int
	Logs            int
	TopSystem       string
	TopSystemLogs   int
	Projects        int
	OngoingProjects int
}

// InsightPlugin 基于用户记录生成洞察
type InsightPlugin struct {
	schema *structured.Schema
}

func NewInsightPlugin() *InsightPlugin {
	return &InsightPlugin{schema: &structured.Schema{Fields: []structured.Field{
		{Name: "insights", Kind: structured.ObjectArray, Required: true, MaxItems: MaxInsights, Item: &structured.Schema{Fields: []structured.Field{
			{Name: "type", Kind: structured.Enum, Options: entity.InsightTypes, Default: "suggestion"},
			{Name: "title", Kind: structured.String, Required: true, MaxLen: 100},
			{Name: "description", Kind: structured.String, Required: true, MaxLen: 500},
			{Name: "confidence", Kind: structured.Int, Min: 0, Max: 100, Percent: true, Default: 50},
			{Name: "priority", Kind: structured.Enum, Options: entity.InsightPriorities, Default: "medium"},
			{Name: "category", Kind: structured.Enum, Options: entity.InsightCategories, Default: "general"},
			{Name: "actionable", Kind: structured.Bool, Default: true},
		}}},
	}}}
}

func (p *InsightPlugin) Name() string { return NameInsights }
func (p *InsightPlugin) Required() []string { return []string{"summary"} }
func (p *InsightPlugin) Schema() *structured.Schema { return p.schema }
func (p *InsightPlugin) Params() llm.GenerationParams {
	return llm.GenerationParams{Temperature: 0.5, TopP: 0.9, TopK: 40, MaxTokens: 2048}
}

func (p *InsightPlugin) BuildPrompt(f Facts) string {
	var b strings.Builder
	b.WriteString("You are an engineering performance analyst.\n")
	fmt.Fprintf(&b, "Find up to %d trends, predictions, suggestions or patterns in the engineer's records below.\n\n", MaxInsights)
	b.WriteString(f.Text("summary", 20000))
	b.WriteString("\n")
	return b.String()
}

func (p *InsightPlugin) Fallback(f Facts) map[string]any {
	st, _ := f["stats"].(InsightStats)
	items := make([]map[string]any, 0, MaxInsights)
	add := func(typ, title, desc string, confidence int, priority, category string) {
		items = append(items, map[string]any{
			"type": typ, "title": title, "description": desc,
			"confidence": confidence, "priority": priority, "category": category, "actionable": true,
		})
	}

	if st.OverdueGoals > 0 {
		add("prediction", "Overdue goals need attention",
			fmt.Sprintf("%d of your %d goals are past their deadline. Re-plan them or adjust the deadlines.", st.OverdueGoals, st.Goals),
			90, "high", "productivity")
	}
	if st.StalledGoals > 0 {
		add("pattern", "Stalled goals",
			fmt.Sprintf("%d goal(s) are marked stalled. Break each into a smaller next step.", st.StalledGoals),
			75, "medium", "career")
	}
	if st.TopSystem != "" && st.TopSystemLogs > 1 {
		add("trend", fmt.Sprintf("Recurring work on %s", st.TopSystem),
			fmt.Sprintf("%d of your %d technical logs involve %s. Consider a root cause review or an improvement project.", st.TopSystemLogs, st.Logs, st.TopSystem),
			80, "high", "reliability")
	}
	if st.Goals > 0 && st.CompletedGoals > 0 {
		rate := st.CompletedGoals * 100 / st.Goals
		add("trend", "Goal completion rate",
			fmt.Sprintf("You have completed %d of %d goals (%d%%).", st.CompletedGoals, st.Goals, rate),
			85, "low", "career")
	}
	if st.OngoingProjects > 0 {
		add("suggestion", "Keep project updates current",
			fmt.Sprintf("%d improvement project(s) are ongoing. Posting a weekly update keeps stakeholders informed.", st.OngoingProjects),
			70, "medium", "process")
	}
	if len(items) == 0 {
		add("suggestion", "Build your record history",
			"Log technical work and set goals regularly to unlock more specific insights.",
			60, "low", "general")
	}
	return map[string]any{"insights": items}
}
