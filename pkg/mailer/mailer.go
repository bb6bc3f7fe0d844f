package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Config holds the SMTP submission settings. Credentials are supplied out of
// band through the environment.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Client sends HTML mail over an authenticated SMTP connection. The dialer
// upgrades the plaintext connection with STARTTLS before authenticating,
// which is what submission ports like 587 expect.
type Client struct {
	cfg    Config
	dialer *gomail.Dialer
}

// NewClient creates a new mail client.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// Send delivers a single HTML message to one recipient.
func (c *Client) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", c.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := c.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
