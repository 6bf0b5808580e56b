// Command admin_seed creates the initial admin account from environment
// credentials. Safe to run repeatedly; an existing admin is left untouched.
package main

import (
	"context"
	"log"
	"os"

	"amparo/internal/config"
	"amparo/internal/models"
	"amparo/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminName := config.GetEnv("ADMIN_NAME", "Administrador")
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	defer func() {
		if repositories.DB != nil {
			if sqlDB, err := repositories.DB.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Printf("Failed to close PostgreSQL connection: %v", err)
				}
			}
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("Failed to close Redis connection: %v", err)
			}
		}
	}()

	var existing models.User
	if err := repositories.DB.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
		log.Println("Admin user already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := models.User{
		Name:     adminName,
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
		Status:   models.StatusActive,
	}
	if err := repositories.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	if repositories.CacheService != nil {
		if err := repositories.CacheService.InvalidateUser(context.Background(), admin.ID); err != nil {
			log.Printf("Failed to invalidate admin cache entry: %v", err)
		}
	}

	log.Println("Admin account created successfully")
}
