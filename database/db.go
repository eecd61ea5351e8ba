package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/YongERong/wth-caifan-lovers/configs"
	"github.com/YongERong/wth-caifan-lovers/models"
)

var DB *gorm.DB

// Open connects to the configured database and migrates the schema
func Open(dbConfig configs.Database) (*gorm.DB, error) {
	var dsn string
	var dialector gorm.Dialector

	switch dbConfig.Driver {
	case "mysql":
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			dbConfig.User, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.DBName)
		dialector = mysql.Open(dsn)
	case "postgres":
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbConfig.Host, dbConfig.Port, dbConfig.User, dbConfig.Password, dbConfig.DBName)
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dbConfig.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", dbConfig.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Activity{},
		&models.ActivityRegistration{},
		&models.PointTransaction{},
		&models.SwipeDecision{},
		&models.Friendship{},
	)
}

// Initialize opens the database, seeds the activity catalog and sets DB
func Initialize(dbConfig configs.Database, log *zap.Logger) error {
	db, err := Open(dbConfig)
	if err != nil {
		return err
	}
	if err := SeedActivities(db); err != nil {
		return fmt.Errorf("seed activities: %w", err)
	}

	DB = db
	log.Info("database connected", zap.String("driver", dbConfig.Driver))
	return nil
}

// Close closes the database connection
func Close(log *zap.Logger) {
	if DB != nil {
		sqlDB, err := DB.DB()
		if err != nil {
			log.Error("failed to get database connection", zap.Error(err))
			return
		}
		if err := sqlDB.Close(); err != nil {
			log.Error("failed to close database connection", zap.Error(err))
		}
	}
}
