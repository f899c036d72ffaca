package database

import (
	"fmt"
	"log"

	"github.com/DaniPVargas/Wearvana/src/core/config"
	"github.com/DaniPVargas/Wearvana/src/core/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

var DB *gorm.DB

func ConnectDB() {
	host := config.Config("DB_HOST")
	port := config.Config("DB_PORT")
	user := config.Config("DB_USER")
	password := config.Config("DB_PASSWORD")
	dbname := config.Config("DB_NAME")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, password, dbname)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt: false,
		// Surface dialect duplicate-key failures as gorm.ErrDuplicatedKey
		// so handlers can answer 409 without sniffing driver errors.
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{
			SingularTable: false,
		},
	})
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("Error running migrations: %v", err)
	}

	fmt.Println("Database successfully connected!")
}

// Migrate creates or updates the four persisted tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Tag{},
		&models.Relationship{},
	)
}
