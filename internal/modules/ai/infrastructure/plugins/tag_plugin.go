package plugins

import (
	"strings"

	"EDT/internal/modules/ai/infrastructure/llm"
	"EDT/internal/modules/ai/infrastructure/structured"
	"EDT/pkg/xerr"
)

const (
	MaxTags   = 8
	MaxTagLen = 30
)

// TagPlugin 为技术日志推荐标签，没有 demo 兜底
type TagPlugin struct {
	schema *structured.Schema
}

func NewTagPlugin() *TagPlugin {
	return &TagPlugin{schema: &structured.Schema{Fields: []structured.Field{
		{Name: "tags", Kind: structured.StringArray, Required: true, MaxItems: MaxTags, MaxLen: MaxTagLen,
			Hint: "short lowercase keywords such as equipment, failure mode or discipline"},
	}}}
}

func (p *TagPlugin) Name() string { return NameSuggestTags }
func (p *TagPlugin) Required() []string { return []string{"title", "description"} }
func (p *TagPlugin) Schema() *structured.Schema { return p.schema }
func (p *TagPlugin) Params() llm.GenerationParams {
	return llm.GenerationParams{Temperature: 0.3, TopP: 0.8, TopK: 20, MaxTokens: 256}
}

func (p *TagPlugin) BuildPrompt(f Facts) string {
	var b strings.Builder
	b.WriteString("You are an assistant that categorizes engineering work logs.\n")
	b.WriteString("Suggest concise tags for the technical log below.\n\n")
	bullet(&b, "Title", f.Str("title", 200))
	bullet(&b, "System", f.Str("system", 100))
	bullet(&b, "Description", f.Str("description", 500))
	if existing := f.Strs("existing_tags"); len(existing) > 0 {
		bullet(&b, "Tags already used by this engineer (reuse when relevant)", strings.Join(existing, ", "))
	}
	return b.String()
}

func (p *TagPlugin) UnconfiguredError() error {
	return xerr.Configuration("Configuration error")
}
