// Bootstrap script to create the first Superuser account
// cmd/create-superuser/main.go
package main

import (
	"errors"
	"flag"
	"log"

	"github.com/iPelino/ur-missions/config"
	"github.com/iPelino/ur-missions/controllers"
	"github.com/iPelino/ur-missions/models"
	"github.com/iPelino/ur-missions/utils"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	email := flag.String("email", "", "institutional email for the new superuser")
	password := flag.String("password", "", "password for the new superuser")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("Usage: create-superuser -email <email> -password <password>")
	}

	if !utils.ValidateInstitutionalEmail(*email) {
		log.Fatalf("Email must belong to the %s domain", utils.InstitutionalDomain)
	}
	if ok, reason := utils.ValidatePassword(*password); !ok {
		log.Fatal("Weak password: ", reason)
	}

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	config.InitDB()

	var existing models.User
	err := config.DB.Where("email = ?", *email).First(&existing).Error
	if err == nil {
		log.Fatalf("A user with email %s already exists", *email)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal("Failed to look up user:", err)
	}

	var group models.Group
	if err := config.DB.Where("name = ?", models.GroupSuperuser).First(&group).Error; err != nil {
		log.Fatal("Superuser group not found, run cmd/seed-groups first:", err)
	}

	hashed, err := controllers.HashPassword(*password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	user := models.User{
		Email:    *email,
		Password: hashed,
		IsActive: true,
		IsStaff:  true,
		Groups:   []models.Group{group},
	}
	if err := config.DB.Create(&user).Error; err != nil {
		log.Fatal("Failed to create superuser:", err)
	}

	log.Printf("Superuser %s created (user_id=%d)\n", user.Email, user.UserID)
}
