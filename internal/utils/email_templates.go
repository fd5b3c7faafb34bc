package utils

import (
	"fmt"
	"strings"

	"aodai_back_end/internal/models"
)

// OrderConfirmationHTML renders the checkout confirmation email body.
func OrderConfirmationHTML(order models.Order) string {
	var items strings.Builder
	for _, item := range order.OrderItems {
		fmt.Fprintf(&items, `
			<tr>
				<td>%s (%s, %s)</td>
				<td>%d</td>
				<td>%.0f₫</td>
				<td>%.0f₫</td>
			</tr>`, item.Name, item.Color, item.Size, item.Qty, item.Price, item.Price*float64(item.Qty))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Your order is confirmed</h2>
		<p>Hello %s,</p>
		<p>We have received your order and are preparing it for delivery.</p>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left;">Item</th>
					<th style="padding: 10px; text-align: left;">Qty</th>
					<th style="padding: 10px; text-align: left;">Unit price</th>
					<th style="padding: 10px; text-align: left;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>
		<p>Shipping: %.0f₫<br>Total: <strong>%.0f₫</strong></p>
		<p>Payment method: %s</p>
	</div>
</body>
</html>`, order.DeliveryInformation.FullName, items.String(),
		order.ShippingPrice, order.TotalPrice, order.PaymentMethod)
}
