// Seeding script for the role group catalog
// cmd/seed-groups/main.go
package main

import (
	"errors"
	"log"

	"github.com/iPelino/ur-missions/config"
	"github.com/iPelino/ur-missions/models"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	config.InitDB()

	created := 0
	for _, name := range models.AllGroups() {
		var group models.Group
		err := config.DB.Where("name = ?", name).First(&group).Error
		if err == nil {
			log.Printf("Group %q already exists, skipping\n", name)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatal("Failed to look up group:", err)
		}

		group = models.Group{Name: name}
		if err := config.DB.Create(&group).Error; err != nil {
			log.Fatalf("Failed to create group %q: %v", name, err)
		}
		log.Printf("Created group %q\n", name)
		created++
	}

	log.Printf("Group seeding completed, %d group(s) created\n", created)
}
