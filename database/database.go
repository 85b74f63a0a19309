package database

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/kareem333j/students-management-system/config"
	"github.com/kareem333j/students-management-system/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}

	if err := SeedAdmin(DB, cfg); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}
}

// Migrate is separate from Connect so tests can run it against their own DB.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Grade{},
		&models.Student{},
		&models.DailyFollowUp{},
		&models.PaymentMonth{},
		&models.MonthlyPayment{},
		&models.Quiz{},
		&models.User{},
	)
}

// SeedAdmin creates the configured admin account if it does not exist yet.
func SeedAdmin(db *gorm.DB, cfg *config.Config) error {
	var existing models.User
	err := db.Where("username = ?", cfg.AdminUsername).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u := models.User{
		Username: cfg.AdminUsername,
		Password: string(hashed),
		Role:     "admin",
	}
	return db.Create(&u).Error
}
