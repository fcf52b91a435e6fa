// Package email sends transactional mail for account flows. The SMTP
// provider is the production implementation; Noop is used when mail is
// not configured so the rest of the app never has to nil-check.
package email

// Message is one outgoing email.
type Message struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData feeds the HTML templates in templates.go.
type TemplateData map[string]interface{}

// Provider defines the interface for sending email.
type Provider interface {
	// Send delivers a fully built message.
	Send(msg *Message) error

	// SendVerification sends the account verification email. verifyURL is
	// the full frontend link including the token.
	SendVerification(to, verifyURL string) error

	// SendPasswordReset sends the password reset email.
	SendPasswordReset(to, resetURL string) error
}
