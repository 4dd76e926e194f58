package database

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架，驱动由database.driver决定（mysql | postgres | sqlite）
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. database.auto_migrate为true时自动迁移表结构
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 选择驱动
	dialector, err := openDialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			// 统一存UTC，精度到微秒（与接口输出格式一致）
			return time.Now().UTC().Truncate(time.Microsecond)
		},
		// 把各驱动的唯一键冲突翻译成gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	// 学习要点：合理的连接池配置对性能至关重要
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	if cfg.Database.Driver == config.DriverSQLite {
		// SQLite只允许一个写连接，内存库多连接时每个连接看到的是不同的库
		sqlDB.SetMaxOpenConns(1)
	} else {
		// 最大打开连接数（建议：CPU核数 * 2 + 磁盘数量）
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)

		// 最大空闲连接数（建议：MaxOpenConns的1/4到1/2）
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}

	// 连接最大存活时间（防止数据库主动断开连接）
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	zap.L().Info("数据库连接成功", zap.String("driver", cfg.Database.Driver))

	// 6. 自动迁移表结构
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	return db, nil
}

// openDialector 根据配置选择GORM驱动
func openDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	dsn := cfg.DSN()
	switch cfg.Driver {
	case config.DriverMySQL:
		return mysql.Open(dsn), nil
	case config.DriverPostgres:
		// gorm.io/driver/postgres底层使用pgx
		return postgres.Open(dsn), nil
	case config.DriverSQLite:
		// 纯Go实现，不需要CGO
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}
}

// AutoMigrate 自动迁移表结构
// 学习要点：
// 1. AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
// 2. 生产环境应使用版本化的迁移脚本，不要依赖AutoMigrate
func AutoMigrate(db *gorm.DB) error {
	// 注意：这里需要使用GORM的模型定义（带tag），不是domain层的实体
	return db.AutoMigrate(&BookModel{})
}

// BookModel GORM图书模型
// 设计说明：
// 1. ISBN有唯一索引，并发写入时由数据库兜底
// 2. Description可为NULL，用指针映射
// 3. 物理删除，没有DeletedAt字段
// 4. created_at建索引，列表按创建时间倒序
type BookModel struct {
	ID            uint      `gorm:"primaryKey"`
	Title         string    `gorm:"size:255;not null;comment:书名"`
	Author        string    `gorm:"size:255;not null;comment:作者"`
	PublishedYear int       `gorm:"not null;comment:出版年份"`
	ISBN          string    `gorm:"column:isbn;uniqueIndex;size:20;not null;comment:ISBN号"`
	Description   *string   `gorm:"type:text;comment:图书描述"`
	CreatedAt     time.Time `gorm:"index;precision:6;comment:创建时间"` // 排序索引
	UpdatedAt     time.Time `gorm:"precision:6;comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}
