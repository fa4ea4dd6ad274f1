package mailer

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Provider interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig carries the relay settings read from the environment.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpProvider struct {
	client *gomail.Client
	from   string
}

// NewSMTPProvider builds a provider backed by a real SMTP relay.
func NewSMTPProvider(cfg SMTPConfig) (Provider, error) {
	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &smtpProvider{client: client, from: cfg.From}, nil
}

func (p *smtpProvider) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMsg()
	if err := m.From(p.from); err != nil {
		return err
	}
	if err := m.To(msg.To); err != nil {
		return err
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)

	return p.client.DialAndSendWithContext(ctx, m)
}

type mockProvider struct{}

// NewMockProvider creates a provider that prints instead of sending.
// Used in local development when no relay is configured.
func NewMockProvider() Provider {
	return &mockProvider{}
}

func (m *mockProvider) Send(ctx context.Context, msg Message) error {
	fmt.Printf("\n--- [MOCK EMAIL] ---\nTo: %s\nSubject: %s\n%s\n--------------------\n\n", msg.To, msg.Subject, msg.Body)
	return nil
}
