package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"aodai_back_end/internal/apperr"
)

func testOrder(t *testing.T, products ...primitive.ObjectID) *Order {
	t.Helper()
	items := make([]OrderItem, 0, len(products))
	for _, p := range products {
		items = append(items, OrderItem{
			Name:       "Áo Dài Cách Tân",
			Color:      "Đỏ",
			Size:       "M",
			Qty:        1,
			Price:      450000,
			ThumbImage: "/uploads/ao-dai.jpg",
			Product:    p,
		})
	}
	order, err := NewOrder(primitive.NewObjectID(), items, DeliveryInformation{
		FullName: "Nguyen Van A",
		Province: "Hà Nội",
		District: "Hoàn Kiếm",
		Ward:     "Hàng Trống",
		Address:  "12 Nhà Thờ",
		Phone:    "0900000000",
	}, 450000, 30000, 480000, "", time.Now())
	require.NoError(t, err)
	return order
}

func TestNewOrderRejectsEmptyItems(t *testing.T) {
	_, err := NewOrder(primitive.NewObjectID(), nil, DeliveryInformation{}, 0, 0, 0, "", time.Now())
	require.Error(t, err)
	assert.Equal(t, 400, apperr.StatusCode(err))
}

func TestNewOrderStartsPrepared(t *testing.T) {
	order := testOrder(t, primitive.NewObjectID())

	assert.True(t, order.OrderStatus.IsPrepared)
	require.NotNil(t, order.OrderStatus.PreparedAt)
	assert.Equal(t, "COD", order.PaymentMethod)
	assert.False(t, order.OrderStatus.IsDelivered)
	assert.False(t, order.OrderStatus.IsCancelled)
}

func TestDeliverAfterCancelConflicts(t *testing.T) {
	order := testOrder(t, primitive.NewObjectID())
	now := time.Now()

	require.NoError(t, order.MarkCancelled(now))
	err := order.MarkDelivered(now)

	require.Error(t, err)
	assert.Equal(t, 409, apperr.StatusCode(err))
	assert.False(t, order.OrderStatus.IsDelivered)
	assert.Nil(t, order.OrderStatus.DeliveredAt)
}

func TestCancelAfterDeliverConflicts(t *testing.T) {
	order := testOrder(t, primitive.NewObjectID())
	now := time.Now()

	require.NoError(t, order.MarkDelivered(now))
	err := order.MarkCancelled(now)

	require.Error(t, err)
	assert.Equal(t, 409, apperr.StatusCode(err))
	assert.False(t, order.OrderStatus.IsCancelled)
}

func TestMarkDeliveredSetsFlagAndTimestamp(t *testing.T) {
	order := testOrder(t, primitive.NewObjectID())
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	require.NoError(t, order.MarkDelivered(now))

	assert.True(t, order.OrderStatus.IsDelivered)
	require.NotNil(t, order.OrderStatus.DeliveredAt)
	assert.Equal(t, now, *order.OrderStatus.DeliveredAt)
}

func TestReceiveAndPayAreUnconditional(t *testing.T) {
	order := testOrder(t, primitive.NewObjectID())
	now := time.Now()

	require.NoError(t, order.MarkCancelled(now))
	order.MarkReceived(now)
	order.MarkPaid(now)

	assert.True(t, order.OrderStatus.IsReceived)
	assert.True(t, order.OrderStatus.IsPaid)
	require.NotNil(t, order.OrderStatus.ReceivedAt)
	require.NotNil(t, order.OrderStatus.PaidAt)
}

func TestMarkItemsReviewed(t *testing.T) {
	target := primitive.NewObjectID()
	other := primitive.NewObjectID()
	order := testOrder(t, target, other, target)

	require.NoError(t, order.MarkItemsReviewed(target))

	assert.True(t, order.OrderItems[0].IsReview)
	assert.False(t, order.OrderItems[1].IsReview)
	assert.True(t, order.OrderItems[2].IsReview)
}

func TestMarkItemsReviewedUnknownProduct(t *testing.T) {
	order := testOrder(t, primitive.NewObjectID())

	err := order.MarkItemsReviewed(primitive.NewObjectID())

	require.Error(t, err)
	assert.Equal(t, 404, apperr.StatusCode(err))
}
