package entity

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatSession 会话，删除时级联删除消息
type ChatSession struct {
	Id        string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	UserId    string    `gorm:"column:user_id;type:varchar(64);index;not null" json:"user_id"`
	Title     string    `gorm:"column:title;type:varchar(200)" json:"title"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;index" json:"updated_at"`

	Messages []ChatMessage `gorm:"foreignKey:SessionId;constraint:OnDelete:CASCADE" json:"-"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}

// ChatMessage 只追加的消息记录
type ChatMessage struct {
	Id        string         `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	SessionId string         `gorm:"column:session_id;type:varchar(36);index;not null" json:"session_id"`
	UserId    string         `gorm:"column:user_id;type:varchar(64);index;not null" json:"user_id"`
	Role      string         `gorm:"column:role;type:varchar(20);not null" json:"role"`
	Content   string         `gorm:"column:content;type:text;not null" json:"content"`
	Metadata  datatypes.JSON `gorm:"column:metadata" json:"metadata"`
	CreatedAt time.Time      `gorm:"column:created_at;index" json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
