package user

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"aodai_back_end/internal/apperr"
	"aodai_back_end/internal/models"
)

func (h *Handler) GetFavorites(c *gin.Context) {
	u, err := h.currentUser(c)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	favorites := u.Favorites
	if favorites == nil {
		favorites = []models.FavoriteItem{}
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// ToggleFavorite adds the product to the user's favorites with a
// display snapshot, or removes it when already present. Concurrent
// toggles on the same user follow last-write-wins.
func (h *Handler) ToggleFavorite(c *gin.Context) {
	var input struct {
		ProductID string `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.Validation("productId is required"), err))
		return
	}

	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.Validation("Invalid product id"), err))
		return
	}

	u, err := h.currentUser(c)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var p models.Product
	if err := h.store.Products().FindOne(ctx, bson.M{"_id": productID}).Decode(&p); err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.NotFound("Product not found"), err))
		return
	}

	added := u.ToggleFavorite(models.FavoriteItem{
		Product:    p.ID,
		Name:       p.Name,
		Price:      p.Price,
		ThumbImage: p.ThumbImage,
		AddedAt:    time.Now(),
	})

	update := bson.M{"$set": bson.M{"favorites": u.Favorites, "updatedAt": time.Now()}}
	if _, err := h.store.Users().UpdateOne(ctx, bson.M{"_id": u.ID}, update); err != nil {
		apperr.Abort(c, err)
		return
	}

	if added {
		log.Printf("⭐ Product %s added to favorites of %s", input.ProductID, u.ID.Hex())
	} else {
		log.Printf("🗑️ Product %s removed from favorites of %s", input.ProductID, u.ID.Hex())
	}

	favorites := u.Favorites
	if favorites == nil {
		favorites = []models.FavoriteItem{}
	}
	c.JSON(http.StatusOK, gin.H{"added": added, "favorites": favorites})
}
