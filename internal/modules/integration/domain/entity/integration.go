package entity

import "time"

const (
	TypeSCADA     = "scada"
	TypeCMMS      = "cmms"
	TypePLC       = "plc"
	TypeERP       = "erp"
	TypeHistorian = "historian"
)

var Types = []string{TypeSCADA, TypeCMMS, TypePLC, TypeERP, TypeHistorian}

const (
	StatusDisconnected = "disconnected"
	StatusConnected    = "connected"
	StatusError        = "error"
)

// Integration 外部工业系统对接（模拟实现，不含真实协议客户端）
type Integration struct {
	Id            string     `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	UserId        string     `gorm:"column:user_id;type:varchar(64);index;not null" json:"user_id"`
	Name          string     `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Type          string     `gorm:"column:type;type:varchar(20);not null" json:"type"`
	Status        string     `gorm:"column:status;type:varchar(20);not null" json:"status"`
	Endpoint      string     `gorm:"column:endpoint;type:varchar(255)" json:"endpoint"`
	RecordsSynced int64      `gorm:"column:records_synced;not null;default:0" json:"records_synced"`
	SyncCount     int64      `gorm:"column:sync_count;not null;default:0" json:"sync_count"`
	ErrorCount    int64      `gorm:"column:error_count;not null;default:0" json:"error_count"`
	LastSyncAt    *time.Time `gorm:"column:last_sync_at" json:"last_sync_at"`
	LastTestedAt  *time.Time `gorm:"column:last_tested_at" json:"last_tested_at"`
	CreatedAt     time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Integration) TableName() string {
	return "integrations"
}
