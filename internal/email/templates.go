package email

import (
	"fmt"
	"html/template"
	"strings"
)

const (
	templateVerification  = "verification"
	templatePasswordReset = "password_reset"
)

var builtinTemplates = map[string]string{
	templateVerification: `<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>Welcome to FinTrack</h2>
  <p>Please confirm your email address to activate your account.</p>
  <p><a href="{{.VerifyURL}}" style="background: #2b6cb0; color: #fff; padding: 10px 20px; text-decoration: none; border-radius: 4px;">Verify Email</a></p>
  <p>The link is valid for 24 hours. If you did not create an account, you can ignore this message.</p>
</body>
</html>`,
	templatePasswordReset: `<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>Password Reset</h2>
  <p>We received a request to reset the password for your account.</p>
  <p><a href="{{.ResetURL}}" style="background: #2b6cb0; color: #fff; padding: 10px 20px; text-decoration: none; border-radius: 4px;">Reset Password</a></p>
  <p>The link is valid for 1 hour. If you did not request a reset, your password is unchanged.</p>
</body>
</html>`,
}

// TemplateManager parses the builtin templates once and renders them on
// demand.
type TemplateManager struct {
	templates map[string]*template.Template
}

func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{templates: make(map[string]*template.Template)}
	for name, body := range builtinTemplates {
		tpl, err := template.New(name).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		tm.templates[name] = tpl
	}
	return tm, nil
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tpl, exists := tm.templates[templateName]
	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}
	return buf.String(), nil
}
