package entity

import "time"

const (
	// 通知类型
	TypeGoalOverdue = "goal_overdue" // 目标逾期
	TypeGoalDueSoon = "goal_due_soon" // 目标即将到期
)

// Notification 站内通知
type Notification struct {
	Id        string     `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	UserId    string     `gorm:"column:user_id;type:varchar(64);index;not null" json:"user_id"`
	Type      string     `gorm:"column:type;type:varchar(30);not null;index:idx_notification_related,priority:2" json:"type"`
	Title     string     `gorm:"column:title;type:varchar(100)" json:"title"`
	Message   string     `gorm:"column:message;type:text" json:"message"`
	RelatedId string     `gorm:"column:related_id;type:varchar(36);index:idx_notification_related,priority:1" json:"related_id"`
	IsRead    bool       `gorm:"column:is_read;not null;default:false" json:"read"`
	ReadAt    *time.Time `gorm:"column:read_at" json:"read_at"`
	CreatedAt time.Time  `gorm:"column:created_at;index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
