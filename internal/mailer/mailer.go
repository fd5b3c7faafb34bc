// Package mailer sends transactional email. A nil *Mailer is valid and
// skips sending, so checkout works without SMTP configured.
package mailer

import (
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"

	"aodai_back_end/internal/models"
	"aodai_back_end/internal/utils"
)

type Mailer struct {
	client *mail.Client
	from   string
}

// FromEnv builds the SMTP client from the environment, or returns nil
// when SMTP_HOST is unset.
func FromEnv() *Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Println("⚠️  SMTP_HOST not set, order confirmation emails disabled")
		return nil
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		log.Println("⚠️  SMTP client setup failed, emails disabled:", err)
		return nil
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@aodai.shop"
	}

	log.Println("✅ SMTP configured:", host)
	return &Mailer{client: client, from: from}
}

// SendOrderConfirmation emails the checkout summary. Failures are the
// caller's to log; the order itself is already persisted.
func (m *Mailer) SendOrderConfirmation(to string, order models.Order) error {
	if m == nil {
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Order confirmation")
	msg.SetBodyString(mail.TypeTextHTML, utils.OrderConfirmationHTML(order))

	log.Println("📤 Sending order confirmation to", to)
	return m.client.DialAndSend(msg)
}
