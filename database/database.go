package database

import (
    "onboarding-go/models"

    "gorm.io/driver/sqlite"
    "gorm.io/gorm"
    "gorm.io/gorm/logger"
)

func Initialize(databasePath string) (*gorm.DB, error) {
    db, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{
        Logger: logger.Default.LogMode(logger.Warn),
    })
    if err != nil {
        return nil, err
    }

    // Auto-migrate models
    err = db.AutoMigrate(
        &models.Ticket{},
        &models.AuditLog{},
    )
    if err != nil {
        return nil, err
    }

    return db, nil
}
