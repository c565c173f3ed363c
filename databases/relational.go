package databases

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/legalbridge/legalbridge-api/config"
	"github.com/legalbridge/legalbridge-api/models"
)

// OpenRelational connects to the sql store holding contacts and blogs and
// migrates its tables
func OpenRelational(conf *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch conf.SQLDriver {
	case "sqlite":
		dialector = sqlite.Open(conf.SQLDSN)
	case "postgres":
		dialector = postgres.Open(conf.SQLDSN)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", conf.SQLDriver)
	}

	level := logger.Warn
	if conf.Env == "local" {
		level = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", conf.SQLDriver, err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the contacts and blogs tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Contact{}, &models.Blog{}); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return nil
}

// SeedBlogs inserts the given posts when the blogs table is empty. Posts are
// expected newest first and are stored oldest first so that ids follow dates.
func SeedBlogs(ctx context.Context, db *gorm.DB, posts []models.Blog) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Blog{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := make([]models.Blog, 0, len(posts))
	for i := len(posts) - 1; i >= 0; i-- {
		p := posts[i]
		p.ID = 0
		seed = append(seed, p)
	}
	if len(seed) == 0 {
		return nil
	}
	if err := db.WithContext(ctx).Create(&seed).Error; err != nil {
		return err
	}
	zap.S().Infow("seeded blog posts", "count", len(seed))
	return nil
}
