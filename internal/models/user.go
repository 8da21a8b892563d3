package models

// User struct matches the document in MongoDB
type User struct {
	UserID   string `bson:"userID" json:"userID"`
	Email    string `bson:"email" json:"email"`
	Name     string `bson:"name" json:"name"`
	Password string `bson:"password" json:"-"`
	Role     string `bson:"role" json:"role"` // "admin" or "operator"
	Status   string `bson:"status" json:"status"`
}
