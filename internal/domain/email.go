package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// InvitationEmailData holds data for the private-event invitation email.
type InvitationEmailData struct {
	Email       string
	Name        string
	InviterName string
	EventDate   string
}

// ManagerDecisionEmailData holds data for the manager approval/denial email.
// TempPassword is set only on approval.
type ManagerDecisionEmailData struct {
	Email        string
	LocalName    string
	Approved     bool
	TempPassword string
}

// WelcomeEmailData holds data for the participant welcome email.
type WelcomeEmailData struct {
	Email string
	Name  string
}

// EmailService defines the contract for sending domain-level emails. All
// sends are opportunistic: callers invoke them fire-and-forget and log
// failures rather than propagating them.
type EmailService interface {
	SendInvitation(ctx context.Context, data *InvitationEmailData) error
	SendManagerDecision(ctx context.Context, data *ManagerDecisionEmailData) error
	SendWelcome(ctx context.Context, data *WelcomeEmailData) error
}
