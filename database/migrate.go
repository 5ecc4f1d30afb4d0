package database

import (
	"fmt"

	"hela9_backend/internal/logger"
	"hela9_backend/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open подключается к БД выбранным драйвером (postgres или mysql).
// TranslateError включен, чтобы нарушения уникальности приходили как gorm.ErrDuplicatedKey.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}
	return db, nil
}

// Models - все таблицы приложения в порядке миграции.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.StylistProfile{},
		&models.Service{},
		&models.MenuItem{},
		&models.Photo{},
		&models.Comment{},
		&models.Reservation{},
		&models.Publication{},
		&models.PublicationLike{},
		&models.PublicationComment{},
		&models.Subscription{},
		&models.DeplacementRequest{},
		&models.PriceProposal{},
	}
}

// Migrate выполняет миграцию всех моделей
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logger.Info("AutoMigrate completed", "tables", len(Models()))
	return nil
}
