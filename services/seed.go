package services

import (
	"autocare_portal_go/models"
	"log"
	"os"
	"strings"

	"gorm.io/gorm"
)

// SeedAdminFromEnv creates the first admin account from ADMIN_EMAIL and ADMIN_PASSWORD.
// It does nothing when either is unset or an admin already exists.
func SeedAdminFromEnv(db *gorm.DB) error {
	email := strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))
	password := os.Getenv("ADMIN_PASSWORD")
	name := os.Getenv("ADMIN_NAME")

	if email == "" || password == "" {
		return nil
	}
	if strings.TrimSpace(name) == "" {
		name = "Administrator"
	}

	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("[SEED] Admin user already exists, skipping seed")
		return nil
	}

	user, err := RegisterUser(db, RegisterInput{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		return err
	}

	log.Printf("[SEED] Created admin user: %s", user.Email)
	return nil
}
