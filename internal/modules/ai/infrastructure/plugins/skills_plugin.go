package plugins

import (
	"fmt"
	"sort"
	"strings"

	"EDT/internal/modules/ai/domain/entity"
	"EDT/internal/modules/ai/infrastructure/llm"
	"EDT/internal/modules/ai/infrastructure/structured"
)

const (
	MaxSkills        = 15
	skillNameLen     = 60
	skillEvidenceLen = 300
)

// SkillsPlugin 从用户记录中归纳技能
type SkillsPlugin struct {
	schema *structured.Schema
}

func NewSkillsPlugin() *SkillsPlugin {
	return &SkillsPlugin{schema: &structured.Schema{Fields: []structured.Field{
		{Name: "skills", Kind: structured.ObjectArray, Required: true, MaxItems: MaxSkills, Item: &structured.Schema{Fields: []structured.Field{
			{Name: "name", Kind: structured.String, Required: true, MaxLen: skillNameLen},
			{Name: "category", Kind: structured.Enum, Options: entity.SkillCategories, Default: "technical"},
			{Name: "proficiency", Kind: structured.Int, Min: 0, Max: 100, Percent: true, Default: 50},
			{Name: "evidence", Kind: structured.String, MaxLen: skillEvidenceLen, Hint: "which records show this skill"},
		}}},
	}}}
}

func (p *SkillsPlugin) Name() string { return NameAnalyzeSkills }
func (p *SkillsPlugin) Required() []string { return []string{"records"} }
func (p *SkillsPlugin) Schema() *structured.Schema { return p.schema }
func (p *SkillsPlugin) Params() llm.GenerationParams {
	return llm.GenerationParams{Temperature: 0.3, TopP: 0.8, TopK: 20, MaxTokens: 2048}
}

func (p *SkillsPlugin) BuildPrompt(f Facts) string {
	var b strings.Builder
	b.WriteString("You are assessing an engineer's demonstrated skills from their work records.\n")
	b.WriteString("Estimate proficiency from 0 to 100 based only on the evidence below.\n\nRecords:\n")
	for _, line := range f.Strs("records") {
		b.WriteString("- " + line + "\n")
	}
	return b.String()
}

type skillKeyword struct {
	name     string
	category string
	needles  []string
}

// 关键词表按顺序匹配，每条记录对同一技能只计一次
var skillKeywords = []skillKeyword{
	{"PLC Programming", "technical", []string{"plc", "ladder logic", "allen-bradley", "siemens s7"}},
	{"SCADA & HMI", "technical", []string{"scada", "hmi", "historian"}},
	{"Motor Drives & VFDs", "technical", []string{"vfd", "variable frequency", "motor drive", "inverter"}},
	{"Instrumentation & Control", "technical", []string{"instrument", "sensor", "transmitter", "pid loop", "calibration"}},
	{"Electrical Troubleshooting", "technical", []string{"electrical", "breaker", "wiring", "voltage", "short circuit"}},
	{"Hydraulics & Pneumatics", "technical", []string{"hydraulic", "pneumatic", "valve", "actuator"}},
	{"Root Cause Analysis", "domain", []string{"root cause", "rca", "5 why", "fishbone", "failure analysis"}},
	{"Vibration Analysis", "domain", []string{"vibration", "bearing", "alignment", "balancing"}},
	{"Preventive Maintenance", "domain", []string{"preventive", "maintenance", "pm schedule", "lubrication", "inspection"}},
	{"Reliability Engineering", "domain", []string{"reliability", "mtbf", "downtime", "availability", "uptime"}},
	{"Process Safety", "domain", []string{"safety", "lockout", "loto", "hazard", "permit"}},
	{"Energy Efficiency", "domain", []string{"energy", "efficiency", "power consumption"}},
	{"Data Analysis", "tooling", []string{"python", "sql", "excel", "dashboard", "trend", "data"}},
	{"CAD & Drawings", "tooling", []string{"autocad", "cad", "solidworks", "drawing", "p&id"}},
	{"CMMS", "tooling", []string{"cmms", "work order", "maximo", "sap pm"}},
	{"Project Management", "soft", []string{"project", "schedule", "budget", "milestone", "contractor"}},
	{"Team Leadership", "soft", []string{"team", "lead", "mentor", "training", "coordinat"}},
	{"Technical Communication", "soft", []string{"report", "document", "presentation", "procedure"}},
}

// Fallback 关键词启发式：统计命中的记录数，排序稳定
func (p *SkillsPlugin) Fallback(f Facts) map[string]any {
	records := f.Strs("records")
	type hit struct {
		kw    skillKeyword
		count int
		first string
	}
	hits := make([]hit, 0)
	for _, kw := range skillKeywords {
		h := hit{kw: kw}
		for _, rec := range records {
			lower := strings.ToLower(rec)
			for _, n := range kw.needles {
				if strings.Contains(lower, n) {
					if h.count == 0 {
						h.first = rec
					}
					h.count++
					break
				}
			}
		}
		if h.count > 0 {
			hits = append(hits, h)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].count > hits[j].count })

	skills := make([]map[string]any, 0, len(hits))
	for _, h := range hits {
		skills = append(skills, map[string]any{
			"name":        h.kw.name,
			"category":    h.kw.category,
			"proficiency": min(40+h.count*10, 90),
			"evidence":    fmt.Sprintf("Appears in %d record(s), e.g. %s", h.count, h.first),
		})
	}
	if len(skills) == 0 {
		skills = append(skills, map[string]any{
			"name":        "Technical Documentation",
			"category":    "soft",
			"proficiency": 40,
			"evidence":    fmt.Sprintf("Maintains %d work record(s) in the tracker", len(records)),
		})
	}
	return map[string]any{"skills": skills}
}
