package repository

import (
	"fmt"

	"github.com/blues/rfs/internal/config"
	"github.com/blues/rfs/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), NewGormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// NewGormConfig 统一的 gorm 配置
func NewGormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent), // 禁用 GORM 的默认日志输出
		NamingStrategy: &schema.NamingStrategy{
			SingularTable: true, // 禁用复数表名
		},
	}
}

// Migrate 自动迁移所有表
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.PlatformStateModel{},
		&model.ProjectModel{},
		&model.ProjectMilestoneModel{},
		&model.ContributorModel{},
		&model.ValidatorModel{},
		&model.ContributionNFTModel{},
		&model.LedgerAccountModel{},
		&model.LedgerTransferModel{},
		&model.EventModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
