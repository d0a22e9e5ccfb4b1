package entity

import "time"

const (
	StatusNotStarted = "not-started"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusStalled    = "stalled"
)

// Statuses 合法的目标状态
var Statuses = []string{StatusNotStarted, StatusInProgress, StatusCompleted, StatusStalled}

// Goal SMART 目标
type Goal struct {
	Id          string     `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	UserId      string     `gorm:"column:user_id;type:varchar(64);index;not null" json:"user_id"`
	Title       string     `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Description string     `gorm:"column:description;type:text" json:"description"`
	Category    string     `gorm:"column:category;type:varchar(50)" json:"category"`
	Status      string     `gorm:"column:status;type:varchar(20);not null;default:not-started" json:"status"`
	Progress    int        `gorm:"column:progress;not null;default:0" json:"progress"`
	Deadline    *time.Time `gorm:"column:deadline" json:"deadline"`
	CreatedAt   time.Time  `gorm:"column:created_at;index" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Goal) TableName() string {
	return "goals"
}

// IsOverdue 截止日期已过且尚未完成
func (g *Goal) IsOverdue(now time.Time) bool {
	return g.Deadline != nil && g.Deadline.Before(now) && g.Status != StatusCompleted
}
