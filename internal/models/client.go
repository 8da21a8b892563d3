// server/internal/models/client.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Client struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ClientID   string             `bson:"clientID" json:"clientID"`
	Name       string             `bson:"name" json:"name"`
	Document   string             `bson:"document" json:"document"` // CNPJ/CPF
	ClientType ClientType         `bson:"clientType" json:"clientType"`
	Email      string             `bson:"email" json:"email"`
	Phone      string             `bson:"phone" json:"phone"`
	Address    string             `bson:"address" json:"address"`
	City       string             `bson:"city" json:"city"`
	UF         string             `bson:"uf" json:"uf"`
	Active     bool               `bson:"active" json:"active"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
