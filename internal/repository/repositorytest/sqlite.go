// Package repositorytest 为测试提供独立的内存数据库
package repositorytest

import (
	"fmt"
	"testing"

	"github.com/blues/rfs/internal/repository"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB 创建一个已迁移的内存 SQLite 数据库，每个测试互不共享
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), repository.NewGormConfig())
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// 内存库只保留一个连接，避免事务之间互相锁表
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := repository.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}
