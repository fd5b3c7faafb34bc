package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func favorite(product primitive.ObjectID) FavoriteItem {
	return FavoriteItem{
		Product:    product,
		Name:       "Áo Dài Cách Tân",
		Price:      450000,
		ThumbImage: "/uploads/ao-dai.jpg",
		AddedAt:    time.Now(),
	}
}

func TestToggleFavoriteAddsThenRemoves(t *testing.T) {
	u := NewUser("Nguyen Van A", "a@example.com", "$2a$10$hash", time.Now())
	product := primitive.NewObjectID()

	added := u.ToggleFavorite(favorite(product))
	assert.True(t, added)
	require.Len(t, u.Favorites, 1)
	assert.Equal(t, product, u.Favorites[0].Product)

	added = u.ToggleFavorite(favorite(product))
	assert.False(t, added)
	assert.Empty(t, u.Favorites)
}

func TestToggleFavoriteKeepsOtherEntries(t *testing.T) {
	u := NewUser("Nguyen Van A", "a@example.com", "$2a$10$hash", time.Now())
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	u.ToggleFavorite(favorite(first))
	u.ToggleFavorite(favorite(second))
	u.ToggleFavorite(favorite(first))

	require.Len(t, u.Favorites, 1)
	assert.Equal(t, second, u.Favorites[0].Product)
}

func TestNewUserIsNotAdmin(t *testing.T) {
	u := NewUser("Nguyen Van A", "a@example.com", "$2a$10$hash", time.Now())
	assert.False(t, u.IsAdmin)
	assert.Equal(t, "a@example.com", u.Email)
}
