// Package email provides the email client for sending alert notifications.
package email

import (
	"fmt"
	"os"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/email/templates"
	"github.com/resendlabs/resend-go"
)

// Service defines the interface for sending emails, allowing for mock implementations in tests.
type Service interface {
	SendHotLeadAlertEmail(toEmail string, alert *intel.HotLeadAlert) error
}

// ResendClient is the concrete implementation of the email Service using the Resend API.
type ResendClient struct {
	client    *resend.Client
	fromEmail string
	fromName  string
}

// NewService creates a new email service client, returning the Service interface.
func NewService() (Service, error) {
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY environment variable is required")
	}

	fromEmail := os.Getenv("ALERT_EMAIL_FROM")
	if fromEmail == "" {
		fromEmail = "alerts@wealthstack.local"
	}

	fromName := os.Getenv("ALERT_EMAIL_FROM_NAME")
	if fromName == "" {
		fromName = "WealthStack"
	}

	return &ResendClient{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}, nil
}

// SendHotLeadAlertEmail composes and sends the hot-lead notification email.
func (c *ResendClient) SendHotLeadAlertEmail(toEmail string, alert *intel.HotLeadAlert) error {
	subject := fmt.Sprintf("Hot lead: %s visitor scored %.0f", alert.Tier, alert.LeadScore)

	content := templates.GetHotLeadEmailContent(templates.HotLeadEmailProps{
		VisitorID:     alert.VisitorID,
		Tier:          string(alert.Tier),
		LeadScore:     alert.LeadScore,
		TriggerReason: alert.TriggerReason,
		NetWorthMin:   alert.EstimatedNetWorth.Min,
		NetWorthMax:   alert.EstimatedNetWorth.Max,
		Actions:       alert.RecommendedActions,
	})

	htmlContent := templates.GetEmailLayout(templates.EmailLayoutProps{
		Content: content,
	})

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{toEmail},
		Subject: subject,
		Html:    htmlContent,
	}

	_, err := c.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send hot lead alert email: %w", err)
	}

	return nil
}
