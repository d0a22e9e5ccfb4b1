package entity

import (
	"time"

	"gorm.io/datatypes"
)

// TechnicalLog 技术工作日志（故障、排查、处理结果）
type TechnicalLog struct {
	Id          string                      `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	UserId      string                      `gorm:"column:user_id;type:varchar(64);index;not null" json:"user_id"`
	Title       string                      `gorm:"column:title;type:varchar(200);not null" json:"title"`
	System      string                      `gorm:"column:system;type:varchar(100)" json:"system"`
	Description string                      `gorm:"column:description;type:text" json:"description"`
	Resolution  string                      `gorm:"column:resolution;type:text" json:"resolution"`
	Outcome     string                      `gorm:"column:outcome;type:text" json:"outcome"`
	Tags        datatypes.JSONSlice[string] `gorm:"column:tags" json:"tags"`
	Images      datatypes.JSONSlice[string] `gorm:"column:images" json:"images"`
	LogDate     time.Time                   `gorm:"column:log_date" json:"log_date"`
	CreatedAt   time.Time                   `gorm:"column:created_at;index" json:"created_at"`
	UpdatedAt   time.Time                   `gorm:"column:updated_at" json:"updated_at"`
}

func (TechnicalLog) TableName() string {
	return "technical_logs"
}
