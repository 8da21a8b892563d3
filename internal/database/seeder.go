// server/internal/database/seeder.go
package database

import (
	"context"
	"log"

	"gesla-logistics-api-server/internal/auth"
	"gesla-logistics-api-server/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedAdmin guarantees a default admin account exists on first boot.
func SeedAdmin(db *mongo.Database) error {
	userCollection := db.Collection("users")
	adminEmail := "admin@gesla.local"

	count, err := userCollection.CountDocuments(context.Background(), bson.M{"email": adminEmail})
	if err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin already exists. Seeding skipped.")
		return nil
	}

	log.Println("Admin not found. Seeding...")
	hashedPassword, err := auth.HashPassword("admin")
	if err != nil {
		return err
	}

	admin := models.User{
		UserID:   uuid.New().String(),
		Email:    adminEmail,
		Name:     "Administrator",
		Password: hashedPassword,
		Role:     "admin",
		Status:   "active",
	}

	_, err = userCollection.InsertOne(context.Background(), admin)
	if err != nil {
		return err
	}

	log.Println("Admin seeded successfully.")
	return nil
}
