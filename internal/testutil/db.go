package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"EDT/internal/config"
	"EDT/internal/initial"

	"gorm.io/gorm"
)

var dbSeq atomic.Int64

// DB 为每个测试创建独立的内存 sqlite，并完成迁移
func DB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=on", name, dbSeq.Add(1))

	db, _, err := initial.NewGormDB(config.DatabaseConfig{Driver: "sqlite", DSN: dsn})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
