package plugins

import (
	"fmt"
	"strings"

	"EDT/internal/modules/ai/infrastructure/llm"
	"EDT/internal/modules/ai/infrastructure/structured"
)

const (
	profileBioLen         = 1000
	profileHeadlineLen    = 120
	maxProfileSpecialties = 10
)

// ProfilePlugin 润色个人资料；结果只返回给客户端，由客户端决定是否保存
type ProfilePlugin struct {
	schema *structured.Schema
}

func NewProfilePlugin() *ProfilePlugin {
	return &ProfilePlugin{schema: &structured.Schema{Fields: []structured.Field{
		{Name: "headline", Kind: structured.String, Required: true, MaxLen: profileHeadlineLen},
		{Name: "bio", Kind: structured.String, Required: true, MaxLen: profileBioLen, Hint: "first person, professional tone"},
		{Name: "specializations", Kind: structured.StringArray, MaxItems: maxProfileSpecialties, MaxLen: 50},
		{Name: "suggestions", Kind: structured.StringArray, MaxItems: 5, MaxLen: 200, Hint: "what the engineer could add to strengthen the profile"},
	}}}
}

func (p *ProfilePlugin) Name() string { return NameEnhanceProfile }
func (p *ProfilePlugin) Required() []string { return []string{"title"} }
func (p *ProfilePlugin) Schema() *structured.Schema { return p.schema }
func (p *ProfilePlugin) Params() llm.GenerationParams {
	return llm.GenerationParams{Temperature: 0.6, TopP: 0.9, TopK: 40, MaxTokens: 1024}
}

func (p *ProfilePlugin) BuildPrompt(f Facts) string {
	var b strings.Builder
	b.WriteString("You are an editor improving an engineer's professional profile.\n")
	b.WriteString("Keep every claim grounded in the facts below.\n\n")
	bullet(&b, "Name", f.Str("full_name", 100))
	bullet(&b, "Job title", f.Str("title", 120))
	bullet(&b, "Company", f.Str("company", 120))
	bullet(&b, "Years of experience", f.Str("years_experience", 10))
	bullet(&b, "Current bio", f.Str("bio", 500))
	bullet(&b, "Specializations", strings.Join(f.Strs("specializations"), ", "))
	bullet(&b, "Skills found in work records", strings.Join(f.Strs("skills"), ", "))
	return b.String()
}

func (p *ProfilePlugin) Fallback(f Facts) map[string]any {
	title := f.Str("title", 120)
	company := f.Str("company", 120)
	headline := title
	if company != "" {
		headline = fmt.Sprintf("%s at %s", title, company)
	}

	specs := append([]string{}, f.Strs("specializations")...)
	specs = append(specs, f.Strs("skills")...)

	var bio strings.Builder
	fmt.Fprintf(&bio, "I am a %s", title)
	if years := f.Str("years_experience", 10); years != "" && years != "0" {
		fmt.Fprintf(&bio, " with %s years of experience", years)
	}
	if company != "" {
		fmt.Fprintf(&bio, " at %s", company)
	}
	bio.WriteString(".")
	if len(specs) > 0 {
		fmt.Fprintf(&bio, " My work focuses on %s.", strings.Join(specs[:min(len(specs), 3)], ", "))
	}
	if current := f.Str("bio", 500); current != "" {
		bio.WriteString(" " + current)
	}

	suggestions := []string{"Add a measurable result from a recent project."}
	if len(specs) == 0 {
		suggestions = append(suggestions, "List two or three specializations.")
	}
	if f.Str("bio", 500) == "" {
		suggestions = append(suggestions, "Write a short bio describing the systems you work on.")
	}
	return map[string]any{
		"headline":        headline,
		"bio":             bio.String(),
		"specializations": specs,
		"suggestions":     suggestions,
	}
}
