package main

import (
	"os"

	"local-services-server/database"
	"local-services-server/logging"
	"local-services-server/models"
	"local-services-server/utils"
)

// seedAdminUser provisions the initial superuser admin account from the
// environment. Admin accounts are not self-registerable, so without this the
// administrative endpoints would be unreachable on a fresh deployment.
func seedAdminUser() error {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		return nil
	}

	var existing models.User
	if err := database.DB.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     username,
		Email:        os.Getenv("ADMIN_EMAIL"),
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsSuperuser:  true,
		IsActive:     true,
	}
	if err := database.DB.Create(&admin).Error; err != nil {
		return err
	}

	logging.Log.WithField("username", username).Info("admin user seeded")
	return nil
}
