// Package templates provides HTML email content builders.
package templates

import (
	"fmt"
	"strings"
)

// HotLeadEmailProps carries the fields rendered into the alert email.
type HotLeadEmailProps struct {
	VisitorID     string
	Tier          string
	LeadScore     float64
	TriggerReason string
	NetWorthMin   float64
	NetWorthMax   float64
	Actions       []string
}

// GetHotLeadEmailContent renders the alert body.
func GetHotLeadEmailContent(props HotLeadEmailProps) string {
	var actions strings.Builder
	for _, action := range props.Actions {
		actions.WriteString(fmt.Sprintf("<li>%s</li>", action))
	}

	return fmt.Sprintf(`
		<h2>Hot lead detected</h2>
		<p>Visitor <strong>%s</strong> just crossed into a qualifying status.</p>
		<table cellpadding="4">
			<tr><td>Wealth tier</td><td><strong>%s</strong></td></tr>
			<tr><td>Lead score</td><td><strong>%.0f</strong></td></tr>
			<tr><td>Estimated net worth</td><td>$%.0f &ndash; $%.0f</td></tr>
			<tr><td>Trigger</td><td>%s</td></tr>
		</table>
		<h3>Recommended actions</h3>
		<ul>%s</ul>`,
		props.VisitorID, props.Tier, props.LeadScore,
		props.NetWorthMin, props.NetWorthMax,
		props.TriggerReason, actions.String())
}

// EmailLayoutProps wraps content in the shared layout.
type EmailLayoutProps struct {
	Content string
}

// GetEmailLayout wraps content in the outer HTML shell.
func GetEmailLayout(props EmailLayoutProps) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #1a1a1a; max-width: 600px; margin: 0 auto;">
%s
<hr/>
<p style="font-size: 12px; color: #888;">Sent by WealthStack lead intelligence.</p>
</body>
</html>`, props.Content)
}
