package config

import (
	"fmt"
	"log"
	"os"

	"github.com/yeminhtut/donortrack-be/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase() {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	sslmode := os.Getenv("DB_SSLMODE")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	// TranslateError so unique violations surface as gorm.ErrDuplicatedKey,
	// which the entity custom-id allocator relies on.
	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = database

	if err := MigrateModels(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database connected and migrated successfully")
}

// MigrateModels runs gorm auto-migration for every model. Split out so tests
// can run it against their own database.
func MigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Currency{},
		&models.Purpose{},
		&models.Entity{},
		&models.Transaction{},
		&models.TransactionAttachment{},
		&models.AuditLog{},
	)
}
