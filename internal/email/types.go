package email

// Email is an outgoing message
type Email struct {
	To       string
	Subject  string
	Body     string // plain-text part
	HTMLBody string
}

// TemplateData is passed to the email templates
type TemplateData map[string]interface{}

// Kind names the messages the portal sends
type Kind string

const (
	KindVerification  Kind = "verify_email"
	KindPasswordReset Kind = "reset_password"
)
