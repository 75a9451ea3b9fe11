// Package notification delivers sync alerts and reports via AWS SES.
package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sesv2 "github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"

	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
)

// emailSender is the slice of the SESv2 client we use
type emailSender interface {
	SendEmail(ctx context.Context, input *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailNotifier implements Notifier over AWS SESv2
type EmailNotifier struct {
	client     emailSender
	sender     string
	recipients []string
	logger     *zap.Logger
}

// NewEmailNotifier creates an SES notifier for the given region. An empty
// key pair falls back to the default AWS credential chain.
func NewEmailNotifier(ctx context.Context, region, accessKeyID, secretAccessKey, sender string, recipients []string, logger *zap.Logger) (*EmailNotifier, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if accessKeyID != "" && secretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &EmailNotifier{
		client:     sesv2.NewFromConfig(cfg),
		sender:     sender,
		recipients: recipients,
		logger:     logger,
	}, nil
}

// NewEmailNotifierWithClient creates a notifier over an existing SES client.
// Useful for testing or when sharing a client across components.
func NewEmailNotifierWithClient(client emailSender, sender string, recipients []string, logger *zap.Logger) *EmailNotifier {
	return &EmailNotifier{
		client:     client,
		sender:     sender,
		recipients: recipients,
		logger:     logger,
	}
}

// NotifyFailure sends an alert for a failed sync attempt
func (n *EmailNotifier) NotifyFailure(ctx context.Context, entry *syncdomain.LogEntry) error {
	subject := fmt.Sprintf("Sync failure: %s %s", entry.EntityType.String(), entry.DocumentRef)
	body := failureEmailHTML(entry)
	return n.send(ctx, subject, body)
}

// SendReport sends an aggregate sync report
func (n *EmailNotifier) SendReport(ctx context.Context, stats *syncdomain.LogStats) error {
	subject := fmt.Sprintf("Sync report since %s", stats.Since.Format("2006-01-02"))
	body := reportEmailHTML(stats)
	return n.send(ctx, subject, body)
}

// send delivers one HTML email to every configured recipient
func (n *EmailNotifier) send(ctx context.Context, subject, htmlBody string) error {
	if len(n.recipients) == 0 {
		return nil
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(n.sender),
		Destination:      &sestypes.Destination{ToAddresses: n.recipients},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(subject)},
				Body:    &sestypes.Body{Html: &sestypes.Content{Data: aws.String(htmlBody)}},
			},
		},
	}

	if _, err := n.client.SendEmail(ctx, input); err != nil {
		n.logger.Warn("notification delivery failed",
			zap.String("subject", subject),
			zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// failureEmailHTML renders the alert body for a failed attempt
func failureEmailHTML(entry *syncdomain.LogEntry) string {
	return fmt.Sprintf(`<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>Sync attempt failed</h2>
  <table cellpadding="4">
    <tr><td><strong>Entity type</strong></td><td>%s</td></tr>
    <tr><td><strong>Direction</strong></td><td>%s</td></tr>
    <tr><td><strong>Document</strong></td><td>%s</td></tr>
    <tr><td><strong>ERP company</strong></td><td>%s</td></tr>
    <tr><td><strong>Remote company</strong></td><td>%s</td></tr>
    <tr><td><strong>Error</strong></td><td>%s</td></tr>
    <tr><td><strong>At</strong></td><td>%s</td></tr>
  </table>
</body>
</html>`,
		entry.EntityType.String(),
		entry.Direction.String(),
		entry.DocumentRef,
		entry.ERPCompany,
		entry.NinjaCompanyID,
		entry.Message,
		entry.UpdatedAt.Format("2006-01-02 15:04:05 MST"),
	)
}

// reportEmailHTML renders the aggregate report body
func reportEmailHTML(stats *syncdomain.LogStats) string {
	var byType strings.Builder
	for entityType, count := range stats.ByEntityType {
		fmt.Fprintf(&byType, "    <tr><td>%s</td><td>%d</td></tr>\n", entityType.String(), count)
	}

	return fmt.Sprintf(`<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>Sync activity report</h2>
  <p>Window start: %s</p>
  <table cellpadding="4">
    <tr><td><strong>Total attempts</strong></td><td>%d</td></tr>
    <tr><td><strong>Succeeded</strong></td><td>%d</td></tr>
    <tr><td><strong>Failed</strong></td><td>%d</td></tr>
    <tr><td><strong>Skipped</strong></td><td>%d</td></tr>
  </table>
  <h3>By entity type</h3>
  <table cellpadding="4">
%s  </table>
</body>
</html>`,
		stats.Since.Format("2006-01-02 15:04:05 MST"),
		stats.Total,
		stats.SuccessCount,
		stats.FailedCount,
		stats.SkippedCount,
		byType.String(),
	)
}

// Ensure EmailNotifier implements Notifier
var _ syncdomain.Notifier = (*EmailNotifier)(nil)
