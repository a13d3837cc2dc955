package setup

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"blog-account/internal/domain"
)

// MigrateDB 负责数据库迁移。
// MySQL 下 users 表用自定义 SQL 创建 (控制索引列长度和字符集)，其他方言直接 AutoMigrate。
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}
	if err := migrateUsersTable(db); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}
	logrus.Info("Database migration completed successfully")
	return nil
}

func migrateUsersTable(db *gorm.DB) error {
	if db.Dialector.Name() != "mysql" || db.Migrator().HasTable(&domain.User{}) {
		// 表已存在或非 MySQL：交给 AutoMigrate 补齐列和索引
		if err := db.AutoMigrate(&domain.User{}); err != nil {
			return fmt.Errorf("failed to auto-migrate users: %w", err)
		}
		logrus.Info("Users table schema checked/updated successfully")
		return nil
	}
	return createUsersTable(db)
}

// createUsersTable 使用自定义 SQL 创建 users 表
func createUsersTable(db *gorm.DB) error {
	sql := `
	CREATE TABLE users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(191) NOT NULL,
		nickname VARCHAR(191) NOT NULL,
		password VARCHAR(255) NOT NULL,
		roles TEXT,
		avatar_url VARCHAR(512),
		created_at DATETIME(3),
		updated_at DATETIME(3),
		UNIQUE INDEX idx_email (email),
		UNIQUE INDEX idx_nickname (nickname)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_general_ci;
	`
	if err := db.Exec(sql).Error; err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	logrus.Info("Users table created successfully")
	return nil
}
