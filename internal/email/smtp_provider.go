package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the SMTP server settings.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// SMTPProvider implements Provider over gomail.
type SMTPProvider struct {
	config   SMTPConfig
	renderer *TemplateManager
}

func NewSMTPProvider(config SMTPConfig) (*SMTPProvider, error) {
	if config.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if config.Port <= 0 || config.Port > 65535 {
		return nil, fmt.Errorf("invalid SMTP port: %d", config.Port)
	}
	if config.FromEmail == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}

	renderer, err := NewTemplateManager()
	if err != nil {
		return nil, err
	}

	return &SMTPProvider{config: config, renderer: renderer}, nil
}

func (p *SMTPProvider) Send(msg *Message) error {
	m := gomail.NewMessage()

	from := p.config.FromEmail
	if p.config.FromName != "" {
		from = m.FormatAddress(p.config.FromEmail, p.config.FromName)
	}
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)

	if msg.HTMLBody != "" {
		m.SetBody("text/html", msg.HTMLBody)
		if msg.Body != "" {
			m.AddAlternative("text/plain", msg.Body)
		}
	} else {
		m.SetBody("text/plain", msg.Body)
	}

	d := gomail.NewDialer(
		p.config.Host,
		p.config.Port,
		p.config.Username,
		p.config.Password,
	)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (p *SMTPProvider) SendVerification(to, verifyURL string) error {
	html, err := p.renderer.Render(templateVerification, TemplateData{
		"VerifyURL": verifyURL,
	})
	if err != nil {
		return err
	}

	return p.Send(&Message{
		To:       []string{to},
		Subject:  "Verify your email address",
		Body:     "Verify your email address: " + verifyURL,
		HTMLBody: html,
	})
}

func (p *SMTPProvider) SendPasswordReset(to, resetURL string) error {
	html, err := p.renderer.Render(templatePasswordReset, TemplateData{
		"ResetURL": resetURL,
	})
	if err != nil {
		return err
	}

	return p.Send(&Message{
		To:       []string{to},
		Subject:  "Reset your password",
		Body:     "Reset your password: " + resetURL,
		HTMLBody: html,
	})
}
