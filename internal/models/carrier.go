// server/internal/models/carrier.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Carrier struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	CarrierID string             `bson:"carrierID" json:"carrierID"`
	Name      string             `bson:"name" json:"name"`
	Document  string             `bson:"document" json:"document"` // CNPJ
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	City      string             `bson:"city" json:"city"`
	UF        string             `bson:"uf" json:"uf"`
	Active    bool               `bson:"active" json:"active"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
