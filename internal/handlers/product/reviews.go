package product

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

// CreateReview appends a review and persists the recomputed aggregate
// (rating mean and review count) in the same write.
func (h *Handler) CreateReview(c *gin.Context) {
	var input struct {
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.Validation("A rating between 1 and 5 and a comment are required"), err))
		return
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.Validation("Invalid product id"), err))
		return
	}

	userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.Validation("Invalid user id"), err))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var p models.Product
	if err := h.store.Products().FindOne(ctx, bson.M{"_id": productID}).Decode(&p); err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.NotFound("Product not found"), err))
		return
	}

	// Snapshot the author's display fields so the product page renders
	// reviews without user lookups.
	var author models.User
	if err := h.store.Users().FindOne(ctx, bson.M{"_id": userID}).Decode(&author); err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.NotFound("User not found"), err))
		return
	}

	review := models.Review{
		ID:        primitive.NewObjectID(),
		Rating:    input.Rating,
		Comment:   input.Comment,
		User:      userID,
		UserName:  author.Name,
		Avatar:    author.Avatar,
		CreatedAt: time.Now(),
	}

	if err := p.AddReview(review); err != nil {
		apperr.Abort(c, err)
		return
	}

	update := bson.M{"$set": bson.M{
		"reviews":    p.Reviews,
		"rating":     p.Rating,
		"numReviews": p.NumReviews,
		"updatedAt":  time.Now(),
	}}
	if _, err := h.store.Products().UpdateOne(ctx, bson.M{"_id": productID}, update); err != nil {
		apperr.Abort(c, err)
		return
	}

	h.invalidate(c.Request.Context(), p.Slug)

	log.Printf("⭐ Review added to %s (rating %d/5, now %.1f over %d reviews)",
		p.Slug, input.Rating, p.Rating, p.NumReviews)

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Review submitted",
		"rating":     p.Rating,
		"numReviews": p.NumReviews,
	})
}
