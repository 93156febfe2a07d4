package domain

import (
	"context"
	"errors"
	"strings"
)

const (
	MessageContactSent        = "Thank you for your message! I'll get back to you soon."
	MessageContactFailed      = "Sorry, there was an error sending your message. Please try again or contact me directly via email."
	MessageRelayNotConfigured = "Email service is not configured. Please set EMAILJS_SERVICE_ID, EMAILJS_TEMPLATE_ID and EMAILJS_PUBLIC_KEY. See README.md for setup instructions."
)

// Placeholder values shipped in .env.example
const (
	PlaceholderServiceID  = "YOUR_SERVICE_ID"
	PlaceholderTemplateID = "YOUR_TEMPLATE_ID"
	PlaceholderPublicKey  = "YOUR_PUBLIC_KEY"
)

var (
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	ErrRelayNotConfigured = errors.New("email relay is not configured")
)

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name" form:"name" binding:"required,max=100,no_header_break" validate:"required,max=100,no_header_break"`
	Email   string `json:"email" form:"email" binding:"required,email,max=254" validate:"required,email,max=254"`
	Subject string `json:"subject" form:"subject" binding:"required,max=200,no_header_break" validate:"required,max=200,no_header_break"`
	Message string `json:"message" form:"message" binding:"required,max=5000" validate:"required,max=5000"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
// It is only used for validation; the submitted values are relayed as entered.
func (r ContactRequest) Trimmed() ContactRequest {
	return ContactRequest{
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Subject: strings.TrimSpace(r.Subject),
		Message: strings.TrimSpace(r.Message),
	}
}

// ContactForm is what the page renders back into its inputs
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactStatus is the lifecycle position of a page session's contact form
type ContactStatus string

const (
	ContactIdle      ContactStatus = "idle"
	ContactPending   ContactStatus = "pending"
	ContactSucceeded ContactStatus = "succeeded"
	ContactFailed    ContactStatus = "failed"
)

// FailureReason tells configuration failures apart from delivery failures
type FailureReason string

const (
	ReasonConfiguration FailureReason = "configuration"
	ReasonDelivery      FailureReason = "delivery"
)

// ContactState is the full observable state of one contact form.
// Seq counts accepted submissions and tags delayed events.
type ContactState struct {
	Status  ContactStatus `json:"status"`
	Message string        `json:"message"`
	Reason  FailureReason `json:"reason,omitempty"`
	Form    ContactForm   `json:"form"`
	Seq     uint64        `json:"seq"`
}

// RelayConfig carries the mail-relay credentials
type RelayConfig struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
}

// MissingKeys lists the credentials that are empty or still placeholders
func (c RelayConfig) MissingKeys() []string {
	var missing []string
	if c.ServiceID == "" || c.ServiceID == PlaceholderServiceID {
		missing = append(missing, "EMAILJS_SERVICE_ID")
	}
	if c.TemplateID == "" || c.TemplateID == PlaceholderTemplateID {
		missing = append(missing, "EMAILJS_TEMPLATE_ID")
	}
	if c.PublicKey == "" || c.PublicKey == PlaceholderPublicKey {
		missing = append(missing, "EMAILJS_PUBLIC_KEY")
	}
	return missing
}

// IsConfigured checks that every credential holds a real value
func (c RelayConfig) IsConfigured() bool {
	return len(c.MissingKeys()) == 0
}

// TemplateParams are the fields the relay template expects
type TemplateParams struct {
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

// MailParams is one outbound relay request
type MailParams struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
	Fields     TemplateParams
}

// MailSender delivers a single message through the relay
type MailSender interface {
	Send(ctx context.Context, params MailParams) error
}

// ContactUsecase owns one contact form per page session
type ContactUsecase interface {
	// Submit starts a submission and returns the state right after it was accepted
	Submit(ctx context.Context, sessionID string, req *ContactRequest) (ContactState, error)
	// Status returns the current state for the session
	Status(ctx context.Context, sessionID string) ContactState
	// Await blocks until the session is no longer pending or ctx ends
	Await(ctx context.Context, sessionID string) ContactState
	// Shutdown waits for in-flight deliveries
	Shutdown(ctx context.Context) error
}
