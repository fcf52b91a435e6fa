package email

import "fintrack_backend/internal/logger"

// NoopProvider logs instead of sending. Used when SMTP is not configured
// (local development, tests).
type NoopProvider struct{}

func NewNoopProvider() *NoopProvider {
	return &NoopProvider{}
}

func (p *NoopProvider) Send(msg *Message) error {
	logger.Info("email sending disabled, dropping message", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (p *NoopProvider) SendVerification(to, verifyURL string) error {
	logger.Info("email sending disabled, dropping verification email", "to", to, "url", verifyURL)
	return nil
}

func (p *NoopProvider) SendPasswordReset(to, resetURL string) error {
	logger.Info("email sending disabled, dropping password reset email", "to", to, "url", resetURL)
	return nil
}
