package plugins

import (
	"fmt"
	"strings"

	"EDT/internal/modules/ai/infrastructure/llm"
	"EDT/internal/modules/ai/infrastructure/structured"
)

const (
	smartFieldLen = 500
	maxMilestones = 6
)

// SmartGoalPlugin 把一句目标改写成 SMART 形式
type SmartGoalPlugin struct {
	schema *structured.Schema
}

func NewSmartGoalPlugin() *SmartGoalPlugin {
	str := func(name string, hint string) structured.Field {
		return structured.Field{Name: name, Kind: structured.String, Required: true, MaxLen: smartFieldLen, Hint: hint}
	}
	return &SmartGoalPlugin{schema: &structured.Schema{Fields: []structured.Field{
		{Name: "refined_title", Kind: structured.String, MaxLen: 200, Hint: "the goal rewritten as one sentence"},
		str("specific", "what exactly will be achieved"),
		str("measurable", "how progress will be measured"),
		str("achievable", "why it is realistic and what is needed"),
		str("relevant", "why it matters for the engineer's development"),
		str("time_bound", "the deadline and checkpoints"),
		{Name: "milestones", Kind: structured.StringArray, MaxItems: maxMilestones, MaxLen: 200},
	}}}
}

func (p *SmartGoalPlugin) Name() string { return NameSmartGoal }
func (p *SmartGoalPlugin) Required() []string { return []string{"goal"} }
func (p *SmartGoalPlugin) Schema() *structured.Schema { return p.schema }
func (p *SmartGoalPlugin) Params() llm.GenerationParams {
	return llm.GenerationParams{Temperature: 0.7, TopP: 0.9, TopK: 40, MaxTokens: 1024}
}

func (p *SmartGoalPlugin) BuildPrompt(f Facts) string {
	var b strings.Builder
	b.WriteString("You are a career coach for practicing engineers.\n")
	b.WriteString("Turn the goal below into a SMART goal (Specific, Measurable, Achievable, Relevant, Time-bound).\n\n")
	bullet(&b, "Goal", f.Str("goal", 500))
	bullet(&b, "Category", f.Str("category", 50))
	bullet(&b, "Deadline", f.Str("deadline", 30))
	bullet(&b, "Current description", f.Str("description", 500))
	return b.String()
}

// Fallback 只使用输入中的值，输出可重复
func (p *SmartGoalPlugin) Fallback(f Facts) map[string]any {
	goal := f.Str("goal", 200)
	deadline := f.Str("deadline", 30)
	if deadline == "" {
		deadline = "a date you commit to within the next 90 days"
	}
	area := f.Str("category", 50)
	if area == "" {
		area = "your engineering practice"
	}
	return map[string]any{
		"refined_title": goal,
		"specific":      fmt.Sprintf("Define the concrete deliverable for %q: the system, scope and the result that counts as done.", goal),
		"measurable":    "Pick one metric (for example completed modules, reduced downtime hours, or passed assessments) and record it weekly.",
		"achievable":    "Reserve a fixed weekly time block and list the resources or approvals you need before starting.",
		"relevant":      fmt.Sprintf("Connect the goal to %s and to the responsibilities you want in the next review cycle.", area),
		"time_bound":    fmt.Sprintf("Finish by %s with a checkpoint every two weeks.", deadline),
		"milestones": []string{
			"Write down the success criteria and baseline",
			"Complete the first quarter of the work and review progress",
			"Reach the halfway point and adjust the plan",
			"Finish the work and document the outcome",
		},
	}
}
