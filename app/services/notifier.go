package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/leekchan/accounting"
	zlog "github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/mechstore/go-mechstore/app/models"
)

// EmailSender is what the notifier needs from a mailer.
type EmailSender interface {
	SendHTMLEmail(to, subject, htmlBody string) error
}

// Broadcaster is what the notifier needs from the websocket hub.
type Broadcaster interface {
	Broadcast(event string, data any) error
}

// Notifier fans out the side effects of a committed order: an admin email, a
// customer receipt, and a real-time new_order event. The three channels run
// concurrently, fire once, and log-and-drop on failure; none of them can
// touch the committed order.
type Notifier struct {
	mailer     EmailSender
	hub        Broadcaster
	adminEmail string
	wg         sync.WaitGroup
}

func NewNotifier(mailer EmailSender, hub Broadcaster, adminEmail string) *Notifier {
	return &Notifier{mailer: mailer, hub: hub, adminEmail: adminEmail}
}

// Dispatch schedules all three notifications for a committed order and
// returns immediately. The caller observes no result.
func (n *Notifier) Dispatch(order *models.Order) {
	n.run(order, "admin_email", n.sendAdminEmail)
	n.run(order, "customer_email", n.sendCustomerEmail)
	n.run(order, "broadcast", n.broadcastNewOrder)
}

func (n *Notifier) run(order *models.Order, channel string, fn func(*models.Order) error) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := fn(order); err != nil {
			zlog.Error().
				Err(err).
				Uint("order_id", order.ID).
				Str("order_code", order.Code).
				Str("channel", channel).
				Msg("order notification failed, manual resend required")
		}
	}()
}

// Wait blocks until every scheduled notification has finished. Used when
// shutting down and by tests; request handling never calls it.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) sendAdminEmail(order *models.Order) error {
	if n.mailer == nil || n.adminEmail == "" {
		return fmt.Errorf("admin mail channel not configured")
	}
	subject := fmt.Sprintf("New order %s from %s", order.Code, order.CustomerName)
	return n.mailer.SendHTMLEmail(n.adminEmail, subject, orderEmailHTML(order, "A new order has been placed."))
}

func (n *Notifier) sendCustomerEmail(order *models.Order) error {
	if n.mailer == nil {
		return fmt.Errorf("customer mail channel not configured")
	}
	subject := fmt.Sprintf("Your order %s has been received", order.Code)
	return n.mailer.SendHTMLEmail(order.CustomerEmail, subject, orderEmailHTML(order, "Thank you for your order! Here is your receipt."))
}

func (n *Notifier) broadcastNewOrder(order *models.Order) error {
	if n.hub == nil {
		return fmt.Errorf("broadcast channel not configured")
	}
	return n.hub.Broadcast("new_order", map[string]any{
		"id":            order.ID,
		"customer_name": order.CustomerName,
		"total_amount":  order.TotalAmount,
		"status":        order.Status,
	})
}

var moneyFormat = accounting.Accounting{Symbol: "$", Precision: 2}

func formatMoney(amount decimal.Decimal) string {
	return moneyFormat.FormatMoneyDecimal(amount)
}

func orderEmailHTML(order *models.Order, intro string) string {
	var rows strings.Builder
	for _, item := range order.Items {
		lineTotal := item.PriceAtPurchase.Mul(decimal.NewFromInt(int64(item.Quantity)))
		rows.WriteString(fmt.Sprintf(
			"<tr><td>%s</td><td>%d</td><td>%s</td><td>%s</td></tr>\n",
			item.ProductName, item.Quantity, formatMoney(item.PriceAtPurchase), formatMoney(lineTotal),
		))
	}

	return fmt.Sprintf(`
    <html>
      <body style="font-family: Arial, sans-serif; color: #333;">
        <h2>Order %s</h2>
        <p>%s</p>
        <p>
          Customer: %s<br>
          Phone: %s<br>
          Email: %s<br>
          Shipping address: %s
        </p>
        <table border="1" cellpadding="6" cellspacing="0">
          <tr><th>Product</th><th>Qty</th><th>Unit price</th><th>Total</th></tr>
          %s
        </table>
        <p><strong>Order total: %s</strong></p>
      </body>
    </html>`,
		order.Code, intro,
		order.CustomerName, order.CustomerPhone, order.CustomerEmail, order.ShippingAddress,
		rows.String(), formatMoney(order.TotalAmount),
	)
}

// ContactEmailHTML renders a contact-form submission for the admin inbox.
func ContactEmailHTML(name, email, phone, message string) string {
	return fmt.Sprintf(`
    <html>
      <body style="font-family: Arial, sans-serif; color: #333;">
        <h2>New contact form submission</h2>
        <p>
          Name: %s<br>
          Email: %s<br>
          Phone: %s
        </p>
        <p>%s</p>
      </body>
    </html>`, name, email, phone, message)
}
