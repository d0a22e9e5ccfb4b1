package entity

import (
	"time"

	"gorm.io/datatypes"
)

// 审计事件类型
const (
	ActivitySignIn            = "sign_in"
	ActivitySignOut           = "sign_out"
	ActivitySessionTerminated = "session_terminated"
	ActivitySettingsUpdated   = "settings_updated"
)

// UserSession 客户端会话记录，设备与浏览器由 UA 启发式推断
type UserSession struct {
	Id           string     `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	UserId       string     `gorm:"column:user_id;type:varchar(64);not null;uniqueIndex:uk_user_session_token,priority:1" json:"user_id"`
	SessionToken string     `gorm:"column:session_token;type:varchar(255);not null;uniqueIndex:uk_user_session_token,priority:2" json:"-"`
	UserAgent    string     `gorm:"column:user_agent;type:varchar(512)" json:"user_agent"`
	DeviceType   string     `gorm:"column:device_type;type:varchar(20)" json:"device_type"`
	Browser      string     `gorm:"column:browser;type:varchar(40)" json:"browser"`
	IpAddress    string     `gorm:"column:ip_address;type:varchar(64)" json:"ip_address"`
	IsCurrent    bool       `gorm:"column:is_current;not null;default:false" json:"is_current"`
	LastActiveAt time.Time  `gorm:"column:last_active_at" json:"last_active_at"`
	ExpiresAt    *time.Time `gorm:"column:expires_at" json:"expires_at"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (UserSession) TableName() string {
	return "user_sessions"
}

// SecurityActivityLog 安全审计日志，只追加
type SecurityActivityLog struct {
	Id           string         `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	UserId       string         `gorm:"column:user_id;type:varchar(64);index;not null" json:"user_id"`
	ActivityType string         `gorm:"column:activity_type;type:varchar(50);not null" json:"activity_type"`
	Success      bool           `gorm:"column:success;not null" json:"success"`
	IpAddress    string         `gorm:"column:ip_address;type:varchar(64)" json:"ip_address"`
	UserAgent    string         `gorm:"column:user_agent;type:varchar(512)" json:"user_agent"`
	Details      datatypes.JSON `gorm:"column:details" json:"details"`
	CreatedAt    time.Time      `gorm:"column:created_at;index" json:"created_at"`
}

func (SecurityActivityLog) TableName() string {
	return "security_activity_logs"
}

// SecuritySettings 每个用户一行的安全偏好
type SecuritySettings struct {
	UserId                   string    `gorm:"column:user_id;type:varchar(64);primaryKey" json:"user_id"`
	TwoFactorEnabled         bool      `gorm:"column:two_factor_enabled" json:"two_factor_enabled"`
	LoginNotifications       bool      `gorm:"column:login_notifications" json:"login_notifications"`
	SuspiciousActivityAlerts bool      `gorm:"column:suspicious_activity_alerts" json:"suspicious_activity_alerts"`
	SessionTimeoutMinutes    int       `gorm:"column:session_timeout_minutes" json:"session_timeout_minutes"`
	CreatedAt                time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt                time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (SecuritySettings) TableName() string {
	return "security_settings"
}

// DefaultSettings 用户从未保存过设置时返回的默认值
func DefaultSettings(userID string) *SecuritySettings {
	return &SecuritySettings{
		UserId:                   userID,
		LoginNotifications:       true,
		SuspiciousActivityAlerts: true,
		SessionTimeoutMinutes:    60,
	}
}
