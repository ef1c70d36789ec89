package mailer

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/wneessen/go-mail"
)

//go:generate mockgen -destination=../mocks/mock_mailer.go -package=pkgmocks github.com/mailforge/mailforge/pkg/mailer Mailer

// Mailer is the interface for sending emails
type Mailer interface {
	// SendEmail delivers a rendered HTML email to a single recipient
	SendEmail(ctx context.Context, email Email) error
}

// Email is one outgoing message
type Email struct {
	To       string
	ToName   string
	Subject  string
	HTMLBody string
}

func (e Email) Validate() error {
	if strings.TrimSpace(e.To) == "" {
		return fmt.Errorf("email recipient is required")
	}
	if strings.TrimSpace(e.Subject) == "" {
		return fmt.Errorf("email subject is required")
	}
	return nil
}

// Config holds the configuration for the mailer
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

// SMTPMailer implements the Mailer interface using SMTP
type SMTPMailer struct {
	config   *Config
	testMode bool
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(config *Config) *SMTPMailer {
	return &SMTPMailer{
		config:   config,
		testMode: false,
	}
}

// NewTestSMTPMailer creates a new SMTP mailer in test mode (won't connect to SMTP server)
func NewTestSMTPMailer(config *Config) *SMTPMailer {
	return &SMTPMailer{
		config:   config,
		testMode: true,
	}
}

// SendEmail sends an HTML email with a plain text alternative
func (m *SMTPMailer) SendEmail(ctx context.Context, email Email) error {
	msg, err := m.buildMessage(email)
	if err != nil {
		return err
	}

	client, err := m.createSMTPClient()
	if err != nil {
		return err
	}

	// For testing - log information if client is nil
	if client == nil {
		log.Printf("Sending email to: %s", email.To)
		log.Printf("From: %s <%s>", m.config.FromName, m.config.FromEmail)
		log.Printf("Subject: %s", email.Subject)
		return nil
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", email.To, err)
	}

	return nil
}

func (m *SMTPMailer) buildMessage(email Email) (*mail.Msg, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}

	msg := mail.NewMsg(mail.WithNoDefaultUserAgent())

	if err := msg.FromFormat(m.config.FromName, m.config.FromEmail); err != nil {
		return nil, fmt.Errorf("failed to set email from address: %w", err)
	}

	if email.ToName != "" {
		if err := msg.AddToFormat(email.ToName, email.To); err != nil {
			return nil, fmt.Errorf("failed to set email recipient: %w", err)
		}
	} else if err := msg.To(email.To); err != nil {
		return nil, fmt.Errorf("failed to set email recipient: %w", err)
	}

	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextHTML, email.HTMLBody)
	if plain := PlainText(email.HTMLBody); plain != "" {
		msg.AddAlternativeString(mail.TypeTextPlain, plain)
	}

	return msg, nil
}

// createSMTPClient creates and configures a new SMTP client
func (m *SMTPMailer) createSMTPClient() (*mail.Client, error) {
	// In test mode, return nil client to avoid SMTP connections
	if m.testMode {
		return nil, nil
	}

	clientOptions := []mail.Option{
		mail.WithPort(m.config.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(10 * time.Second),
	}

	// Only add authentication if username and password are provided
	// This allows for unauthenticated SMTP servers (e.g., local relays, port 25)
	if m.config.SMTPUsername != "" && m.config.SMTPPassword != "" {
		clientOptions = append(clientOptions,
			mail.WithUsername(m.config.SMTPUsername),
			mail.WithPassword(m.config.SMTPPassword),
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
		)
	}

	client, err := mail.NewClient(m.config.SMTPHost, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return client, nil
}

// PlainText extracts the visible text of an HTML body, one line per block element
func PlainText(htmlBody string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return ""
	}
	doc.Find("head, script, style").Remove()

	var lines []string
	doc.Find("body").Find("h1, h2, h3, p, a").Each(func(_ int, s *goquery.Selection) {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text == "" {
			return
		}
		if goquery.NodeName(s) == "a" {
			if href, ok := s.Attr("href"); ok && href != "" && href != "#" {
				text = fmt.Sprintf("%s (%s)", text, href)
			}
		}
		lines = append(lines, text)
	})
	return strings.Join(lines, "\n\n")
}

// ConsoleMailer is a development implementation that just logs emails
type ConsoleMailer struct{}

// NewConsoleMailer creates a new console mailer for development
func NewConsoleMailer() *ConsoleMailer {
	return &ConsoleMailer{}
}

// SendEmail prints the email to stdout
func (m *ConsoleMailer) SendEmail(ctx context.Context, email Email) error {
	if err := email.Validate(); err != nil {
		return err
	}
	fmt.Println("==============================================================")
	fmt.Println("                        OUTGOING EMAIL                        ")
	fmt.Println("==============================================================")
	if email.ToName != "" {
		fmt.Printf("To: %s <%s>\n", email.ToName, email.To)
	} else {
		fmt.Printf("To: %s\n", email.To)
	}
	fmt.Printf("Subject: %s\n\n", email.Subject)
	fmt.Println("Email Content:")
	fmt.Println(PlainText(email.HTMLBody))
	fmt.Println("==============================================================")

	return nil
}
