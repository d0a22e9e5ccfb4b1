package reader

import "strings"

// MaxCitations 单次回答最多引用的记录数
const MaxCitations = 5

type CitedRecord struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	Title     string `json:"title"`
	MatchedOn string `json:"matched_on"`
}

// Cite 用记录的标题/分类/系统对问题文本做不区分大小写的子串匹配
//
// 只匹配问题而不匹配回答，模型实际用到的记录可能不会出现在结果里
func (s *Snapshot) Cite(question string) []CitedRecord {
	q := strings.ToLower(question)
	out := make([]CitedRecord, 0)
	add := func(typ string, id string, title string, fields map[string]string) bool {
		for _, name := range []string{"title", "category", "system"} {
			v := strings.ToLower(strings.TrimSpace(fields[name]))
			if v != "" && strings.Contains(q, v) {
				out = append(out, CitedRecord{Type: typ, ID: id, Title: title, MatchedOn: name})
				return len(out) >= MaxCitations
			}
		}
		return false
	}

	for _, g := range s.Goals {
		if add("goal", g.Id, g.Title, map[string]string{"title": g.Title, "category": g.Category}) {
			return out
		}
	}
	for _, l := range s.Logs {
		if add("log", l.Id, l.Title, map[string]string{"title": l.Title, "system": l.System}) {
			return out
		}
	}
	for _, p := range s.Projects {
		if add("project", p.Id, p.Title, map[string]string{"title": p.Title, "system": p.System}) {
			return out
		}
	}
	return out
}
