// server/internal/models/material.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Material struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	MaterialID  string             `bson:"materialID" json:"materialID"`
	Description string             `bson:"description" json:"description"`
	Unit        string             `bson:"unit" json:"unit"`
	UnitWeight  float64            `bson:"unitWeight" json:"unitWeight"`
	UnitVolume  float64            `bson:"unitVolume" json:"unitVolume"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
