package request

type ProjectRequest struct {
	Title      string `json:"title"`
	Objective  string `json:"objective"`
	System     string `json:"system"`
	Status     string `json:"status" binding:"omitempty,oneof=planned ongoing complete"`
	Timeline   string `json:"timeline"`
	Contractor bool   `json:"contractor"`
	Results    string `json:"results"`
}

// ProjectListQuery GET /api/projects 的筛选参数
type ProjectListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=planned ongoing complete"`
}

type MilestoneRequest struct {
	Title     string `json:"title"`
	DueDate   string `json:"due_date"`
	Completed bool   `json:"completed"`
}

type TaskRequest struct {
	Title     string `json:"title"`
	Assignee  string `json:"assignee"`
	Completed bool   `json:"completed"`
}

type UpdateRequest struct {
	Content string `json:"content"`
}
