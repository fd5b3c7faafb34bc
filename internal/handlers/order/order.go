package order

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"aodai_back_end/internal/apperr"
	"aodai_back_end/internal/mailer"
	"aodai_back_end/internal/models"
	"aodai_back_end/internal/store"
)

type Handler struct {
	store *store.Store
	mail  *mailer.Mailer
}

func NewHandler(s *store.Store, m *mailer.Mailer) *Handler {
	return &Handler{store: s, mail: m}
}

// Create is the checkout: the client sends the cart snapshot, the order
// starts in the prepared state.
func (h *Handler) Create(c *gin.Context) {
	var input struct {
		OrderItems          []models.OrderItem         `json:"orderItems"`
		DeliveryInformation models.DeliveryInformation `json:"deliveryInformation" binding:"required"`
		ItemsPrice          float64                    `json:"itemsPrice"`
		ShippingPrice       float64                    `json:"shippingPrice"`
		TotalPrice          float64                    `json:"totalPrice"`
		Note                string                     `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.Validation("Invalid order data"), err))
		return
	}

	userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.Validation("Invalid user id"), err))
		return
	}

	order, err := models.NewOrder(userID, input.OrderItems, input.DeliveryInformation,
		input.ItemsPrice, input.ShippingPrice, input.TotalPrice, input.Note, time.Now())
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if _, err := h.store.Orders().InsertOne(ctx, order); err != nil {
		apperr.Abort(c, err)
		return
	}

	log.Printf("🛒 Order %s created for user %s (%.0f₫)", order.ID.Hex(), userID.Hex(), order.TotalPrice)

	// Confirmation email is best-effort; the order is already saved.
	if h.mail != nil {
		var u models.User
		if err := h.store.Users().FindOne(ctx, bson.M{"_id": userID}).Decode(&u); err == nil {
			go func(email string, o models.Order) {
				if err := h.mail.SendOrderConfirmation(email, o); err != nil {
					log.Printf("⚠️ Order confirmation email failed: %v", err)
				}
			}(u.Email, *order)
		}
	}

	c.JSON(http.StatusCreated, order)
}

// MyOrders lists the caller's orders, newest first.
func (h *Handler) MyOrders(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.Validation("Invalid user id"), err))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := h.store.Orders().Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		apperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// ListAll is the admin order overview, newest first.
func (h *Handler) ListAll(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := h.store.Orders().Find(ctx, bson.M{}, opts)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		apperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// load resolves the order id parameter to a stored order.
func (h *Handler) load(c *gin.Context) (*models.Order, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return nil, apperr.Wrap(apperr.Validation("Invalid order id"), err)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var order models.Order
	if err := h.store.Orders().FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, apperr.Wrap(apperr.NotFound("Order not found"), err)
	}
	return &order, nil
}

// Details returns one order to its owner or an admin.
func (h *Handler) Details(c *gin.Context) {
	order, err := h.load(c)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	if order.User.Hex() != c.GetString("user_id") && !c.GetBool("is_admin") {
		apperr.Abort(c, apperr.Authorization("This order belongs to another account"))
		return
	}

	c.JSON(http.StatusOK, order)
}
