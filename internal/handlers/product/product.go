package product

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"aodai_back_end/internal/apperr"
	"aodai_back_end/internal/cache"
	"aodai_back_end/internal/models"
	"aodai_back_end/internal/search"
	"aodai_back_end/internal/storage"
	"aodai_back_end/internal/store"
)

type Handler struct {
	store   *store.Store
	cache   *cache.Cache
	uploads *storage.Uploader
}

func NewHandler(s *store.Store, c *cache.Cache, u *storage.Uploader) *Handler {
	return &Handler{store: s, cache: c, uploads: u}
}

// listEntry is the projected shape for catalog pages.
type listEntry struct {
	ID         primitive.ObjectID `bson:"_id" json:"_id"`
	Name       string             `bson:"name" json:"name"`
	Slug       string             `bson:"slug" json:"slug"`
	Price      float64            `bson:"price" json:"price"`
	ThumbImage string             `bson:"thumbImage" json:"thumbImage"`
}

type listResponse struct {
	Products []listEntry `json:"products"`
	Page     int         `json:"page"`
	Pages    int         `json:"pages"`
}

// List is the public catalog: diacritic-stripped multi-term slug
// search, newest first, eight products per page.
func (h *Handler) List(c *gin.Context) {
	keyword := c.Query("keyword")
	requested, _ := strconv.Atoi(c.DefaultQuery("pageNumber", "1"))

	cacheKey := fmt.Sprintf("products:list:%s:%d", search.Normalize(keyword), requested)
	var cached listResponse
	if h.cache.GetJSON(c.Request.Context(), cacheKey, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	filter := search.BuildFilter(keyword)

	count, err := h.store.Products().CountDocuments(ctx, filter)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	page, pages := search.ClampPage(requested, int(count))

	opts := options.Find().
		SetProjection(bson.M{"name": 1, "slug": 1, "price": 1, "thumbImage": 1}).
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(search.Skip(page)).
		SetLimit(search.PageSize)

	cursor, err := h.store.Products().Find(ctx, filter, opts)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	products := []listEntry{}
	if err := cursor.All(ctx, &products); err != nil {
		apperr.Abort(c, err)
		return
	}

	resp := listResponse{Products: products, Page: page, Pages: pages}
	h.cache.SetJSON(c.Request.Context(), cacheKey, resp, cache.ProductListTTL)

	c.JSON(http.StatusOK, resp)
}

// DetailBySlug is the public product page, reviews included.
func (h *Handler) DetailBySlug(c *gin.Context) {
	slug := c.Param("slug")

	cacheKey := "products:detail:" + slug
	var cached models.Product
	if h.cache.GetJSON(c.Request.Context(), cacheKey, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var p models.Product
	if err := h.store.Products().FindOne(ctx, bson.M{"slug": slug}).Decode(&p); err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.NotFound("Product not found"), err))
		return
	}

	h.cache.SetJSON(c.Request.Context(), cacheKey, p, cache.ProductDetailTTL)
	c.JSON(http.StatusOK, p)
}

// Related lists other products for the product page footer.
func (h *Handler) Related(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.Validation("Invalid product id"), err))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.store.Products().FindOne(ctx, bson.M{"_id": id}).Err(); err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.NotFound("Product not found"), err))
		return
	}

	opts := options.Find().
		SetProjection(bson.M{"name": 1, "slug": 1, "price": 1, "thumbImage": 1}).
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetLimit(search.PageSize)

	cursor, err := h.store.Products().Find(ctx, bson.M{"_id": bson.M{"$ne": id}}, opts)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	related := []listEntry{}
	if err := cursor.All(ctx, &related); err != nil {
		apperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, related)
}

// invalidate drops every cached catalog page and the product detail
// entry after a write.
func (h *Handler) invalidate(ctx context.Context, slugs ...string) {
	h.cache.DeletePattern(ctx, "products:list:*")
	for _, slug := range slugs {
		h.cache.Delete(ctx, "products:detail:"+slug)
	}
}
