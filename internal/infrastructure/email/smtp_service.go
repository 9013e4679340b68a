package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/shopspring/decimal"

	"artstore-backend/pkg/logger"
)

type OrderConfirmationData struct {
	Email       string
	Name        string
	OrderNumber string
	Currency    string
	Total       decimal.Decimal
	Lines       []OrderLine
}

type OrderLine struct {
	Title    string
	Size     string
	Quantity int
}

type ShipmentNoticeData struct {
	Email           string
	Name            string
	OrderNumber     string
	TrackingCompany string
	TrackingNumber  string
	TrackingURL     *string
}

type EmailService interface {
	SendOrderConfirmation(ctx context.Context, data OrderConfirmationData) error
	SendShipmentNotice(ctx context.Context, data ShipmentNoticeData) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

func NewSMTPEmailService(host, port, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: host + ":" + port,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) SendOrderConfirmation(ctx context.Context, data OrderConfirmationData) error {
	subject := fmt.Sprintf("Order %s confirmed", data.OrderNumber)

	var lines strings.Builder
	for _, line := range data.Lines {
		fmt.Fprintf(&lines, "  %dx %s (%s)\n", line.Quantity, line.Title, line.Size)
	}

	body := fmt.Sprintf(`Hi %s,

Thanks for your order. Here is what we received:

%s
Total: %s %s

We will email you again once your order ships.`,
		data.Name, lines.String(), data.Total.StringFixed(2), data.Currency)

	return s.send(data.Email, subject, body)
}

func (s *smtpEmailService) SendShipmentNotice(ctx context.Context, data ShipmentNoticeData) error {
	subject := fmt.Sprintf("Order %s is on its way", data.OrderNumber)

	body := fmt.Sprintf(`Hi %s,

Your order %s has shipped with %s.

Tracking number: %s`,
		data.Name, data.OrderNumber, data.TrackingCompany, data.TrackingNumber)

	if data.TrackingURL != nil {
		body += fmt.Sprintf("\nTrack it here: %s", *data.TrackingURL)
	}

	return s.send(data.Email, subject, body)
}

func (s *smtpEmailService) send(to, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, to, subject, body))

	if err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{to}, msg); err != nil {
		logger.Error("Failed to send email", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
