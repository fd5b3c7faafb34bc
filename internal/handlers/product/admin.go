package product

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"aodai_back_end/internal/apperr"
	"aodai_back_end/internal/models"
	"aodai_back_end/internal/search"
)

// ListAll is the unpaginated admin overview.
func (h *Handler) ListAll(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := h.store.Products().Find(ctx, bson.M{}, opts)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		apperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.Validation("Invalid product id"), err))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var p models.Product
	if err := h.store.Products().FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.NotFound("Product not found"), err))
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *Handler) Create(c *gin.Context) {
	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.Validation("Invalid product data"), err))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	err := h.store.Products().FindOne(ctx, bson.M{"name": input.Name}).Err()
	if err == nil {
		apperr.Abort(c, apperr.Validation("Product name already exists"))
		return
	}
	if err != mongo.ErrNoDocuments {
		apperr.Abort(c, err)
		return
	}

	p, err := models.NewProduct(input, time.Now())
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	if _, err := h.store.Products().InsertOne(ctx, p); err != nil {
		apperr.Abort(c, err)
		return
	}

	h.invalidate(c.Request.Context(), p.Slug)
	log.Printf("🆕 Product created: %s", p.Slug)

	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "product": p})
}

// Update applies partial changes; the slug follows a renamed product.
func (h *Handler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.Validation("Invalid product id"), err))
		return
	}

	var input struct {
		Name                string                `json:"name"`
		Description         string                `json:"description"`
		ReturnPolicy        string                `json:"returnPolicy"`
		StorageInstructions string                `json:"storageInstructions"`
		Price               float64               `json:"price"`
		ThumbImage          string                `json:"thumbImage"`
		Images              []models.ProductImage `json:"images"`
		Sizes               []models.ProductSize  `json:"sizes"`
		Color               string                `json:"color"`
		Model               models.ModelInfo      `json:"model"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.Validation("Invalid product data"), err))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var p models.Product
	if err := h.store.Products().FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.NotFound("Product not found"), err))
		return
	}
	oldSlug := p.Slug

	if input.Name != "" {
		p.Name = input.Name
		p.Slug = search.Slugify(input.Name)
	}
	if input.Description != "" {
		p.Description = input.Description
	}
	if input.ReturnPolicy != "" {
		p.ReturnPolicy = input.ReturnPolicy
	}
	if input.StorageInstructions != "" {
		p.StorageInstructions = input.StorageInstructions
	}
	if input.Price > 0 {
		p.Price = input.Price
	}
	if input.ThumbImage != "" {
		p.ThumbImage = input.ThumbImage
	}
	if len(input.Images) > 0 {
		p.Images = input.Images
	}
	if len(input.Sizes) > 0 {
		p.Sizes = input.Sizes
	}
	if input.Color != "" {
		p.Color = input.Color
	}
	if input.Model.Size != "" {
		p.Model.Size = input.Model.Size
	}
	if input.Model.Height != "" {
		p.Model.Height = input.Model.Height
	}
	p.UpdatedAt = time.Now()

	if _, err := h.store.Products().ReplaceOne(ctx, bson.M{"_id": id}, p); err != nil {
		apperr.Abort(c, err)
		return
	}

	h.invalidate(c.Request.Context(), oldSlug, p.Slug)
	c.JSON(http.StatusOK, p)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.Validation("Invalid product id"), err))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var p models.Product
	if err := h.store.Products().FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.NotFound("Product not found"), err))
		return
	}

	if _, err := h.store.Products().DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		apperr.Abort(c, err)
		return
	}

	h.invalidate(c.Request.Context(), p.Slug)
	log.Printf("🗑️ Product deleted: %s", p.Slug)

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

func (h *Handler) DeleteAll(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	res, err := h.store.Products().DeleteMany(ctx, bson.M{})
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	if res.DeletedCount == 0 {
		apperr.Abort(c, apperr.NotFound("No products to delete"))
		return
	}

	h.cache.DeletePattern(c.Request.Context(), "products:*")
	log.Printf("🗑️ All products deleted (%d)", res.DeletedCount)

	c.JSON(http.StatusOK, gin.H{"message": "All products deleted"})
}
