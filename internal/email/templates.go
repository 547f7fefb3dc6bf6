package email

import (
	"bytes"
	"fmt"
	"html/template"
)

var verificationTmpl = template.Must(template.New("verification").Parse(`
<html>
<body style="font-family: sans-serif;">
  <h2>Verify your email</h2>
  <p>Hello {{.Name}},</p>
  <p>Thank you for registering with the Caregiver Certification Association.
  Please confirm your email address to continue your onboarding.</p>
  <p><a href="{{.VerifyURL}}">Verify email address</a></p>
  <p>If you did not create this account, you can ignore this message.</p>
</body>
</html>`))

var welcomeTmpl = template.Must(template.New("welcome").Parse(`
<html>
<body style="font-family: sans-serif;">
  <h2>Welcome, {{.Name}}</h2>
  <p>Your {{.Role}} account is ready. Sign in and complete your profile to
  get started.</p>
</body>
</html>`))

type verificationData struct {
	Name      string
	VerifyURL string
}

type welcomeData struct {
	Name string
	Role string
}

func renderVerification(name, verifyURL string) (string, error) {
	var buf bytes.Buffer
	if err := verificationTmpl.Execute(&buf, verificationData{Name: name, VerifyURL: verifyURL}); err != nil {
		return "", fmt.Errorf("failed to render verification template: %w", err)
	}
	return buf.String(), nil
}

func renderWelcome(name, role string) (string, error) {
	var buf bytes.Buffer
	if err := welcomeTmpl.Execute(&buf, welcomeData{Name: name, Role: role}); err != nil {
		return "", fmt.Errorf("failed to render welcome template: %w", err)
	}
	return buf.String(), nil
}
