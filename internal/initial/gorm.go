package initial

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"EDT/internal/config"
	aiEntity "EDT/internal/modules/ai/domain/entity"
	chatEntity "EDT/internal/modules/chat/domain/entity"
	goalEntity "EDT/internal/modules/goal/domain/entity"
	integrationEntity "EDT/internal/modules/integration/domain/entity"
	notificationEntity "EDT/internal/modules/notification/domain/entity"
	projectEntity "EDT/internal/modules/project/domain/entity"
	securityEntity "EDT/internal/modules/security/domain/entity"
	techlogEntity "EDT/internal/modules/techlog/domain/entity"
	userEntity "EDT/internal/modules/user/domain/entity"
	"EDT/pkg/zlog"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DemoDSN 未配置数据库时使用的内存 sqlite
const DemoDSN = "file:edt_demo?mode=memory&cache=shared&_foreign_keys=on"

// NewGormDB 按 driver 打开数据库；postgres 未配置连接信息时退化为内存 sqlite（demo 数据模式）
func NewGormDB(conf config.DatabaseConfig) (*gorm.DB, bool, error) {
	driver := strings.ToLower(strings.TrimSpace(conf.Driver))
	dsn := strings.TrimSpace(conf.DSN)
	demo := false

	var dialector gorm.Dialector
	switch driver {
	case "", "postgres", "postgresql":
		if dsn == "" && conf.Host == "" {
			zlog.Warn("数据库未配置，使用内存 sqlite (demo 模式)")
			dialector = sqlite.Open(DemoDSN)
			driver, demo = "sqlite", true
			break
		}
		if dsn == "" {
			sslMode := conf.SSLMode
			if sslMode == "" {
				sslMode = "disable"
			}
			port := conf.Port
			if port == 0 {
				port = 5432
			}
			dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
				conf.Host, conf.User, conf.Password, conf.DatabaseName, port, sslMode)
		}
		dialector = postgres.Open(dsn)
	case "mysql":
		if dsn == "" {
			port := conf.Port
			if port == 0 {
				port = 3306
			}
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
				conf.User, conf.Password, conf.Host, port, conf.DatabaseName)
		}
		dialector = mysql.Open(dsn)
	case "sqlite":
		if dsn == "" {
			dsn = DemoDSN
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, false, fmt.Errorf("unsupported database driver: %s", driver)
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  gormLogger,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, demo, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, demo, err
	}
	if driver == "sqlite" {
		// 内存库依赖连接存活，且 sqlite 不支持并发写
		sqlDB.SetMaxOpenConns(1)
	} else if conf.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(conf.MaxOpenConns)
	}

	if conf.AutoMigrate || driver == "sqlite" {
		if err := AutoMigrate(db); err != nil {
			return nil, demo, err
		}
	}
	zlog.Info("数据库已连接", zap.String("driver", driver), zap.Bool("demo", demo))
	return db, demo, nil
}

// AutoMigrate 自动迁移，如果没有建表，会自动创建对应的表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&goalEntity.Goal{},
		&techlogEntity.TechnicalLog{},
		&projectEntity.ImprovementProject{},
		&projectEntity.ProjectMilestone{},
		&projectEntity.ProjectTask{},
		&projectEntity.ProjectUpdate{},
		&aiEntity.AIInsight{},
		&aiEntity.UserSkill{},
		&chatEntity.ChatSession{},
		&chatEntity.ChatMessage{},
		&userEntity.UserProfile{},
		&securityEntity.UserSession{},
		&securityEntity.SecurityActivityLog{},
		&securityEntity.SecuritySettings{},
		&notificationEntity.Notification{},
		&integrationEntity.Integration{},
	)
}
