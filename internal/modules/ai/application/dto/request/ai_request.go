package request

type SuggestTagsRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	System      string `json:"system"`
}

type SmartGoalRequest struct {
	Goal        string `json:"goal"`
	Category    string `json:"category"`
	Deadline    string `json:"deadline"`
	Description string `json:"description"`
}

// DraftReportRequest 传 log_id 时以已保存的日志为准，否则使用内联字段
type DraftReportRequest struct {
	LogId       string `json:"log_id"`
	Title       string `json:"title"`
	System      string `json:"system"`
	Description string `json:"description"`
	Resolution  string `json:"resolution"`
	Outcome     string `json:"outcome"`
}

// EnhanceProfileRequest 非空字段覆盖已保存的资料
type EnhanceProfileRequest struct {
	FullName        string   `json:"full_name"`
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Bio             string   `json:"bio"`
	YearsExperience *int     `json:"years_experience"`
	Specializations []string `json:"specializations"`
}

type AskRequest struct {
	Question                string `json:"question"`
	SessionId               string `json:"session_id"`
	IncludeBroaderKnowledge bool   `json:"include_broader_knowledge"`
}
