package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"article-cms/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormConfig is shared by the postgres connection and the test databases.
func GormConfig(level string) *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger: logger.New(log.New(os.Stdout, "", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLogLevel(level),
			IgnoreRecordNotFoundError: true,
		}),
	}
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// InitDB opens the postgres database and migrates the schema.
func InitDB(cfg DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), GormConfig(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	if err := EnsureReferenceData(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Permission{},
		&models.Role{},
		&models.User{},
		&models.Language{},
		&models.Category{},
		&models.Article{},
		&models.ArticleContent{},
		&models.ArticleArchive{},
		&models.ArticleCategory{},
		&models.ArticlePermission{},
		&models.ArticleRoom{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// EnsureReferenceData creates the super role and the article ownership
// capability when they are missing. The super role must be the first role.
func EnsureReferenceData(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		capability := models.Permission{Name: models.CapabilityArticleOwnership}
		if err := tx.Where(models.Permission{Name: capability.Name}).FirstOrCreate(&capability).Error; err != nil {
			return fmt.Errorf("ensure capability: %w", err)
		}

		var super models.Role
		if err := tx.Where(models.Role{Name: "super"}).FirstOrCreate(&super).Error; err != nil {
			return fmt.Errorf("ensure super role: %w", err)
		}
		if super.ID != models.RoleSuper {
			return fmt.Errorf("super role has id %d, expected %d", super.ID, models.RoleSuper)
		}
		if err := tx.Model(&super).Association("Permissions").Append(&capability); err != nil {
			return fmt.Errorf("ensure super capability: %w", err)
		}
		return nil
	})
}
