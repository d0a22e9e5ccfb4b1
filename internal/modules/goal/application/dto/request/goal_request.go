package request

// GoalRequest 创建与整行更新共用；status 为空时按 not-started 处理
type GoalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Status      string `json:"status" binding:"omitempty,oneof=not-started in-progress completed stalled"`
	Progress    *int   `json:"progress"`
	Deadline    string `json:"deadline"`
}

// GoalListQuery GET /api/goals 的筛选参数
type GoalListQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof=not-started in-progress completed stalled"`
	Category string `form:"category"`
}
