package email

// Provider sends transactional mail for the onboarding flows.
type Provider interface {
	SendVerification(to, name, verifyURL string) error
	SendWelcome(to, name, role string) error
}
