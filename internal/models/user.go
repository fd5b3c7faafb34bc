package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is the Vietnamese delivery address shape used at checkout.
type Address struct {
	FullName string `bson:"fullName,omitempty" json:"fullName,omitempty"`
	Province string `bson:"province,omitempty" json:"province,omitempty"`
	District string `bson:"district,omitempty" json:"district,omitempty"`
	Ward     string `bson:"ward,omitempty" json:"ward,omitempty"`
	Address  string `bson:"address,omitempty" json:"address,omitempty"`
	Phone    string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// FavoriteItem keeps a display snapshot alongside the product reference
// so the favorites list renders without extra lookups.
type FavoriteItem struct {
	Product    primitive.ObjectID `bson:"product" json:"product"`
	Name       string             `bson:"name" json:"name"`
	Price      float64            `bson:"price" json:"price"`
	ThumbImage string             `bson:"thumbImage" json:"thumbImage"`
	AddedAt    time.Time          `bson:"addedAt" json:"addedAt"`
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Avatar    string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Address   Address            `bson:"address" json:"address"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	IsAdmin   bool               `bson:"isAdmin" json:"isAdmin"`
	Favorites []FavoriteItem     `bson:"favorites,omitempty" json:"favorites,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewUser builds a customer account. The password must already be
// hashed by the write path (utils.HashPassword); the entity never
// hashes on its own.
func NewUser(name, email, passwordHash string, now time.Time) *User {
	return &User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Password:  passwordHash,
		IsAdmin:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ToggleFavorite removes the entry when the product is already present
// and reports added=false; otherwise it appends the snapshot and
// reports added=true. Two identical calls return to the original list.
func (u *User) ToggleFavorite(item FavoriteItem) (added bool) {
	for i := range u.Favorites {
		if u.Favorites[i].Product == item.Product {
			u.Favorites = append(u.Favorites[:i], u.Favorites[i+1:]...)
			return false
		}
	}
	u.Favorites = append(u.Favorites, item)
	return true
}
