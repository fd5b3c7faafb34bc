package order

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

// persistStatus writes back the full status document after a
// transition. Read-modify-write, last write wins.
func (h *Handler) persistStatus(c *gin.Context, order *models.Order) error {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"orderStatus": order.OrderStatus,
		"updatedAt":   time.Now(),
	}}
	_, err := h.store.Orders().UpdateOne(ctx, bson.M{"_id": order.ID}, update)
	return err
}

// transition runs one lifecycle step end to end: load, mutate, persist,
// respond with the updated order.
func (h *Handler) transition(c *gin.Context, step string, apply func(*models.Order) error) {
	order, err := h.load(c)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	if err := apply(order); err != nil {
		apperr.Abort(c, err)
		return
	}

	if err := h.persistStatus(c, order); err != nil {
		apperr.Abort(c, err)
		return
	}

	log.Printf("📦 Order %s marked %s", order.ID.Hex(), step)
	c.JSON(http.StatusOK, order)
}

func (h *Handler) Deliver(c *gin.Context) {
	h.transition(c, "delivered", func(o *models.Order) error {
		return o.MarkDelivered(time.Now())
	})
}

func (h *Handler) Receive(c *gin.Context) {
	h.transition(c, "received", func(o *models.Order) error {
		o.MarkReceived(time.Now())
		return nil
	})
}

func (h *Handler) Pay(c *gin.Context) {
	h.transition(c, "paid", func(o *models.Order) error {
		o.MarkPaid(time.Now())
		return nil
	})
}

// authorizeOwner guards the owner-facing routes: only the account the
// order belongs to, or an admin, may act on it.
func (h *Handler) authorizeOwner(c *gin.Context, order *models.Order) error {
	if order.User.Hex() != c.GetString("user_id") && !c.GetBool("is_admin") {
		return apperr.Authorization("This order belongs to another account")
	}
	return nil
}

// Cancel is available to the order's owner; the other transitions are
// admin-only (enforced in the route table).
func (h *Handler) Cancel(c *gin.Context) {
	order, err := h.load(c)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	if err := h.authorizeOwner(c, order); err != nil {
		apperr.Abort(c, err)
		return
	}

	if err := order.MarkCancelled(time.Now()); err != nil {
		apperr.Abort(c, err)
		return
	}

	if err := h.persistStatus(c, order); err != nil {
		apperr.Abort(c, err)
		return
	}

	log.Printf("📦 Order %s cancelled", order.ID.Hex())
	c.JSON(http.StatusOK, order)
}

// FlagReviewed marks every line item for a product as reviewed after
// the user submits a product review.
func (h *Handler) FlagReviewed(c *gin.Context) {
	var input struct {
		ID string `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.Validation("A product id is required"), err))
		return
	}

	productID, err := primitive.ObjectIDFromHex(input.ID)
	if err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.Validation("Invalid product id"), err))
		return
	}

	order, err := h.load(c)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	if err := h.authorizeOwner(c, order); err != nil {
		apperr.Abort(c, err)
		return
	}

	if err := order.MarkItemsReviewed(productID); err != nil {
		apperr.Abort(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"orderItems": order.OrderItems,
		"updatedAt":  time.Now(),
	}}
	if _, err := h.store.Orders().UpdateOne(ctx, bson.M{"_id": order.ID}, update); err != nil {
		apperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order review flags updated"})
}
