package plugins

import (
	"fmt"
	"strings"

	"EDT/internal/modules/ai/infrastructure/llm"
	"EDT/internal/modules/ai/infrastructure/structured"
	"EDT/pkg/util"
)

// 插件名，同时作为缓存 key 的一部分
const (
	NameSuggestTags    = "suggest_tags"
	NameSmartGoal      = "smart_goal"
	NameDraftReport    = "draft_report"
	NameAnalyzeSkills  = "analyze_skills"
	NameEnhanceProfile = "enhance_profile"
	NameInsights       = "insights"
)

// Facts 用户提供的事实；全部视为不可信文本，只作为 prompt 载荷
type Facts map[string]any

// Str 取字符串事实并截断
func (f Facts) Str(key string, max int) string {
	v, _ := f[key].(string)
	return util.Truncate(strings.Join(strings.Fields(v), " "), max)
}

// Text 取多行事实，保留换行，只按长度截断
func (f Facts) Text(key string, max int) string {
	v, _ := f[key].(string)
	return util.Truncate(v, max)
}

func (f Facts) Strs(key string) []string {
	switch v := f[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Present 必填事实去空白后非空
func (f Facts) Present(key string) bool {
	switch v := f[key].(type) {
	case string:
		return strings.TrimSpace(v) != ""
	case []string:
		return len(util.CleanStrings(v)) > 0
	case nil:
		return false
	}
	return true
}

// Plugin 一种结构化生成能力
//
// 职责：
// - 声明必填事实与输出结构
// - 构建 prompt（输出格式说明由 Engine 统一追加）
// - 给出该能力固定的生成参数
type Plugin interface {
	Name() string
	Required() []string
	Schema() *structured.Schema
	Params() llm.GenerationParams
	BuildPrompt(facts Facts) string
}

// FallbackPlugin 定义了 demo 兜底的能力；兜底必须是确定性的纯函数
type FallbackPlugin interface {
	Plugin
	Fallback(facts Facts) map[string]any
}

// UnconfiguredPlugin 没有兜底时，可自定义未配置模型时的错误
type UnconfiguredPlugin interface {
	UnconfiguredError() error
}

// bullet 把一组事实渲染成 "- label: value" 行，空值跳过
func bullet(b *strings.Builder, label string, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "- %s: %s\n", label, value)
}

// Defaults 返回全部内置插件
func Defaults() []Plugin {
	return []Plugin{
		NewTagPlugin(),
		NewSmartGoalPlugin(),
		NewReportPlugin(),
		NewSkillsPlugin(),
		NewProfilePlugin(),
		NewInsightPlugin(),
	}
}
