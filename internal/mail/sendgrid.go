package mail

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridClient implements Sender on the SendGrid v3 API.
type SendGridClient struct {
	apiKey   string
	from     string
	fromName string
	logger   *log.Logger
}

func NewSendGridClient(apiKey, from, fromName string, logger *log.Logger) *SendGridClient {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &SendGridClient{apiKey: apiKey, from: from, fromName: fromName, logger: logger}
}

func (c *SendGridClient) Send(_ context.Context, to, subject, body string) error {
	if c.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if c.from == "" {
		return fmt.Errorf("from address is empty")
	}
	if to == "" {
		return fmt.Errorf("to address is empty")
	}

	fromEmail := sgmail.NewEmail(c.fromName, c.from)
	toEmail := sgmail.NewEmail("", to)
	htmlContent := fmt.Sprintf("<pre>%s</pre>", body)
	message := sgmail.NewSingleEmail(fromEmail, subject, toEmail, body, htmlContent)

	client := sendgrid.NewSendClient(c.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d body=%s", response.StatusCode, response.Body)
	}

	c.logger.Printf("mail: sent status=%d to=%s subject=%q", response.StatusCode, to, subject)
	return nil
}
