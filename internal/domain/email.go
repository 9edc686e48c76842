package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
// Implementations must honor ctx cancellation and deadlines.
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// RegistrationConfirmationData holds the merge fields for the confirmation email.
type RegistrationConfirmationData struct {
	Name   string
	Email  string
	Mobile string
	RegNum string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendRegistrationConfirmation(ctx context.Context, data *RegistrationConfirmationData) error
}
