package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"aodai_back_end/internal/apperr"
	"aodai_back_end/internal/search"
)

// Review is embedded in its product. A user may review a product once;
// reviews are immutable after creation.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	UserName  string             `bson:"userName,omitempty" json:"userName,omitempty"`
	Avatar    string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type ProductImage struct {
	Image       string `bson:"image" json:"image"`
	Description string `bson:"description" json:"description"`
}

type ProductSize struct {
	Size         string `bson:"size" json:"size"`
	CountInStock int    `bson:"countInStock" json:"countInStock"`
}

// ModelInfo describes the model wearing the product on its photos.
type ModelInfo struct {
	Size   string `bson:"size" json:"size"`
	Height string `bson:"height" json:"height"`
}

type Product struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name                string             `bson:"name" json:"name"`
	Slug                string             `bson:"slug" json:"slug"`
	Description         string             `bson:"description" json:"description"`
	ReturnPolicy        string             `bson:"returnPolicy" json:"returnPolicy"`
	StorageInstructions string             `bson:"storageInstructions" json:"storageInstructions"`
	Reviews             []Review           `bson:"reviews" json:"reviews"`
	Rating              float64            `bson:"rating" json:"rating"`
	NumReviews          int                `bson:"numReviews" json:"numReviews"`
	Price               float64            `bson:"price" json:"price"`
	ThumbImage          string             `bson:"thumbImage" json:"thumbImage"`
	Images              []ProductImage     `bson:"images" json:"images"`
	Sizes               []ProductSize      `bson:"sizes" json:"sizes"`
	Color               string             `bson:"color" json:"color"`
	Model               ModelInfo          `bson:"model" json:"model"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProductInput carries the fields an admin supplies; the slug, rating
// and review counters are derived, never accepted from the client.
type ProductInput struct {
	Name                string         `json:"name" binding:"required"`
	Description         string         `json:"description" binding:"required"`
	ReturnPolicy        string         `json:"returnPolicy" binding:"required"`
	StorageInstructions string         `json:"storageInstructions" binding:"required"`
	Price               float64        `json:"price" binding:"required,gt=0"`
	ThumbImage          string         `json:"thumbImage" binding:"required"`
	Images              []ProductImage `json:"images"`
	Sizes               []ProductSize  `json:"sizes"`
	Color               string         `json:"color" binding:"required"`
	Model               ModelInfo      `json:"model"`
}

// NewProduct enforces the catalog invariants at construction: a product
// needs at least one image and one size, and starts unrated.
func NewProduct(in ProductInput, now time.Time) (*Product, error) {
	if len(in.Images) == 0 {
		return nil, apperr.Validation("A product needs at least one image")
	}
	if len(in.Sizes) == 0 {
		return nil, apperr.Validation("A product needs at least one size")
	}

	return &Product{
		ID:                  primitive.NewObjectID(),
		Name:                in.Name,
		Slug:                search.Slugify(in.Name),
		Description:         in.Description,
		ReturnPolicy:        in.ReturnPolicy,
		StorageInstructions: in.StorageInstructions,
		Reviews:             []Review{},
		Rating:              0,
		NumReviews:          0,
		Price:               in.Price,
		ThumbImage:          in.ThumbImage,
		Images:              in.Images,
		Sizes:               in.Sizes,
		Color:               in.Color,
		Model:               in.Model,
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}

// AddReview appends a review and recomputes the aggregate: numReviews is
// the review count and rating the mean of all ratings rounded
// half-away-from-zero to one decimal.
func (p *Product) AddReview(r Review) error {
	for i := range p.Reviews {
		if p.Reviews[i].User == r.User {
			return apperr.Duplicate("You have already reviewed this product")
		}
	}

	p.Reviews = append(p.Reviews, r)
	p.NumReviews = len(p.Reviews)

	sum := 0
	for i := range p.Reviews {
		sum += p.Reviews[i].Rating
	}
	p.Rating = round1(float64(sum) / float64(len(p.Reviews)))
	return nil
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
