package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"aodai_back_end/internal/apperr"
)

// OrderItem is a line item with the product snapshot taken at order time.
type OrderItem struct {
	Name       string             `bson:"name" json:"name"`
	Color      string             `bson:"color" json:"color"`
	Size       string             `bson:"size" json:"size"`
	Qty        int                `bson:"qty" json:"qty"`
	Price      float64            `bson:"price" json:"price"`
	ThumbImage string             `bson:"thumbImage" json:"thumbImage"`
	Product    primitive.ObjectID `bson:"product" json:"product"`
	IsReview   bool               `bson:"isReview" json:"isReview"`
}

type DeliveryInformation struct {
	FullName string `bson:"fullName" json:"fullName"`
	Province string `bson:"province" json:"province"`
	District string `bson:"district" json:"district"`
	Ward     string `bson:"ward" json:"ward"`
	Address  string `bson:"address" json:"address"`
	Phone    string `bson:"phone" json:"phone"`
}

// OrderStatus records the lifecycle milestones as independent flags,
// each with the time it was reached.
type OrderStatus struct {
	IsPrepared  bool       `bson:"isPrepared" json:"isPrepared"`
	PreparedAt  *time.Time `bson:"preparedAt,omitempty" json:"preparedAt,omitempty"`
	IsDelivered bool       `bson:"isDelivered" json:"isDelivered"`
	DeliveredAt *time.Time `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	IsReceived  bool       `bson:"isReceived" json:"isReceived"`
	ReceivedAt  *time.Time `bson:"receivedAt,omitempty" json:"receivedAt,omitempty"`
	IsPaid      bool       `bson:"isPaid" json:"isPaid"`
	PaidAt      *time.Time `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	IsCancelled bool       `bson:"isCancelled" json:"isCancelled"`
	CancelledAt *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
}

type Order struct {
	ID                  primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	User                primitive.ObjectID  `bson:"user" json:"user"`
	OrderItems          []OrderItem         `bson:"orderItems" json:"orderItems"`
	DeliveryInformation DeliveryInformation `bson:"deliveryInformation" json:"deliveryInformation"`
	PaymentMethod       string              `bson:"paymentMethod" json:"paymentMethod"`
	ItemsPrice          float64             `bson:"itemsPrice" json:"itemsPrice"`
	ShippingPrice       float64             `bson:"shippingPrice" json:"shippingPrice"`
	TotalPrice          float64             `bson:"totalPrice" json:"totalPrice"`
	OrderStatus         OrderStatus         `bson:"orderStatus" json:"orderStatus"`
	Note                string              `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt           time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// NewOrder builds a checkout order in the prepared state. An empty item
// list is rejected.
func NewOrder(userID primitive.ObjectID, items []OrderItem, info DeliveryInformation,
	itemsPrice, shippingPrice, totalPrice float64, note string, now time.Time) (*Order, error) {

	if len(items) == 0 {
		return nil, apperr.Validation("There are no items to order")
	}

	return &Order{
		ID:                  primitive.NewObjectID(),
		User:                userID,
		OrderItems:          items,
		DeliveryInformation: info,
		PaymentMethod:       "COD",
		ItemsPrice:          itemsPrice,
		ShippingPrice:       shippingPrice,
		TotalPrice:          totalPrice,
		OrderStatus: OrderStatus{
			IsPrepared: true,
			PreparedAt: &now,
		},
		Note:      note,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// MarkDelivered fails once the order has been cancelled. Transitions are
// not reversible.
func (o *Order) MarkDelivered(now time.Time) error {
	if o.OrderStatus.IsCancelled {
		return apperr.Conflict("Order has been cancelled and cannot be delivered")
	}
	o.OrderStatus.IsDelivered = true
	o.OrderStatus.DeliveredAt = &now
	return nil
}

// MarkCancelled fails once the order has been delivered.
func (o *Order) MarkCancelled(now time.Time) error {
	if o.OrderStatus.IsDelivered {
		return apperr.Conflict("Order is already on its way and cannot be cancelled")
	}
	o.OrderStatus.IsCancelled = true
	o.OrderStatus.CancelledAt = &now
	return nil
}

func (o *Order) MarkReceived(now time.Time) {
	o.OrderStatus.IsReceived = true
	o.OrderStatus.ReceivedAt = &now
}

func (o *Order) MarkPaid(now time.Time) {
	o.OrderStatus.IsPaid = true
	o.OrderStatus.PaidAt = &now
}

// MarkItemsReviewed flags every line item that references the product.
// Zero matches means the product was never part of this order.
func (o *Order) MarkItemsReviewed(productID primitive.ObjectID) error {
	matched := 0
	for i := range o.OrderItems {
		if o.OrderItems[i].Product == productID {
			o.OrderItems[i].IsReview = true
			matched++
		}
	}
	if matched == 0 {
		return apperr.NotFound("No line item in this order references that product")
	}
	return nil
}
