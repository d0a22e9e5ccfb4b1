package entity

import "time"

// 洞察枚举取值
var (
	InsightTypes      = []string{"trend", "prediction", "suggestion", "pattern"}
	InsightPriorities = []string{"low", "medium", "high"}
	InsightCategories = []string{"technical", "process", "career", "productivity", "reliability", "general"}
)

// AIInsight 每次生成批量写入，之后只读
type AIInsight struct {
	Id          string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	UserId      string    `gorm:"column:user_id;type:varchar(64);index;not null" json:"user_id"`
	Type        string    `gorm:"column:type;type:varchar(20);not null" json:"type"`
	Title       string    `gorm:"column:title;type:varchar(100);not null" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Confidence  int       `gorm:"column:confidence;not null" json:"confidence"`
	Priority    string    `gorm:"column:priority;type:varchar(10);not null" json:"priority"`
	Category    string    `gorm:"column:category;type:varchar(20);not null" json:"category"`
	Actionable  bool      `gorm:"column:actionable;not null" json:"actionable"`
	CreatedAt   time.Time `gorm:"column:created_at;index" json:"created_at"`
}

func (AIInsight) TableName() string {
	return "ai_insights"
}

var SkillCategories = []string{"technical", "domain", "soft", "tooling"}

// UserSkill 技能分析结果，每次分析整批写入
type UserSkill struct {
	Id          string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	UserId      string    `gorm:"column:user_id;type:varchar(64);index;not null" json:"user_id"`
	Name        string    `gorm:"column:name;type:varchar(60);not null" json:"name"`
	Category    string    `gorm:"column:category;type:varchar(20);not null" json:"category"`
	Proficiency int       `gorm:"column:proficiency;not null" json:"proficiency"`
	Evidence    string    `gorm:"column:evidence;type:text" json:"evidence"`
	CreatedAt   time.Time `gorm:"column:created_at;index" json:"created_at"`
}

func (UserSkill) TableName() string {
	return "user_skills"
}
