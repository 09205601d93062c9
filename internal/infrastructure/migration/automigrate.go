package migration

import (
	"fmt"

	"gorm.io/gorm"

	"captr/internal/infrastructure/persistence/models"
	"captr/internal/shared/logger"
)

// AutoMigrateModels lists every persistence model in migration order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.CardModel{},
		&models.SubscriptionModel{},
		&models.ScanUsageModel{},
	}
}

// Run applies schema migrations for all models.
func Run(db *gorm.DB) error {
	logger.Info("running schema migrations")

	if err := db.AutoMigrate(AutoMigrateModels()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("schema migrations complete")
	return nil
}
