package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"aodai_back_end/internal/apperr"
)

func testProductInput() ProductInput {
	return ProductInput{
		Name:                "Áo Dài Cách Tân",
		Description:         "Traditional dress with a modern cut",
		ReturnPolicy:        "7-day return",
		StorageInstructions: "Hand wash cold",
		Price:               450000,
		ThumbImage:          "/uploads/ao-dai.jpg",
		Images:              []ProductImage{{Image: "/uploads/ao-dai-1.jpg", Description: "front"}},
		Sizes:               []ProductSize{{Size: "M", CountInStock: 10}},
		Color:               "Đỏ",
	}
}

func review(rating int) Review {
	return Review{
		ID:        primitive.NewObjectID(),
		Rating:    rating,
		Comment:   "đẹp lắm",
		User:      primitive.NewObjectID(),
		UserName:  "Nguyen Van A",
		CreatedAt: time.Now(),
	}
}

func TestNewProduct(t *testing.T) {
	p, err := NewProduct(testProductInput(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, "ao-dai-cach-tan", p.Slug)
	assert.Zero(t, p.Rating)
	assert.Zero(t, p.NumReviews)
	assert.Empty(t, p.Reviews)
}

func TestNewProductRequiresImagesAndSizes(t *testing.T) {
	in := testProductInput()
	in.Images = nil
	_, err := NewProduct(in, time.Now())
	require.Error(t, err)
	assert.Equal(t, 400, apperr.StatusCode(err))

	in = testProductInput()
	in.Sizes = nil
	_, err = NewProduct(in, time.Now())
	require.Error(t, err)
	assert.Equal(t, 400, apperr.StatusCode(err))
}

func TestAddReviewAggregates(t *testing.T) {
	p, err := NewProduct(testProductInput(), time.Now())
	require.NoError(t, err)

	require.NoError(t, p.AddReview(review(4)))
	assert.Equal(t, 4.0, p.Rating)
	assert.Equal(t, 1, p.NumReviews)

	require.NoError(t, p.AddReview(review(5)))
	assert.Equal(t, 4.5, p.Rating)
	assert.Equal(t, 2, p.NumReviews)
}

func TestAddReviewRounding(t *testing.T) {
	cases := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"mean 4.333 rounds down", []int{4, 4, 5}, 4.3},
		{"mean 4.666 rounds up", []int{4, 5, 5}, 4.7},
		{"half rounds away from zero", []int{1, 2, 2, 2}, 1.8}, // 1.75 -> 1.8
		{"exact mean untouched", []int{3, 3, 3}, 3.0},
		{"half at 4.25", []int{4, 4, 4, 5}, 4.3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewProduct(testProductInput(), time.Now())
			require.NoError(t, err)
			for _, r := range tc.ratings {
				require.NoError(t, p.AddReview(review(r)))
			}
			assert.Equal(t, tc.want, p.Rating)
			assert.Equal(t, len(tc.ratings), p.NumReviews)
		})
	}
}

func TestAddReviewDuplicateAuthor(t *testing.T) {
	p, err := NewProduct(testProductInput(), time.Now())
	require.NoError(t, err)

	first := review(5)
	require.NoError(t, p.AddReview(first))

	second := review(1)
	second.User = first.User
	err = p.AddReview(second)

	require.Error(t, err)
	assert.Equal(t, 409, apperr.StatusCode(err))
	assert.Equal(t, 1, p.NumReviews)
	assert.Equal(t, 5.0, p.Rating)
}
