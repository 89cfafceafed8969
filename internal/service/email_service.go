package service

import (
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"

	"ilmkids/internal/models"
)

// emailSender is the subset of the SES client used here
type emailSender interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService sends badge notifications to parents via Amazon SES
type EmailService struct {
	client    emailSender
	fromEmail string
	fromName  string
	enabled   bool
	logger    *zap.Logger
}

// NewEmailService creates a new email service.
// An empty fromEmail yields a disabled service that sends nothing.
func NewEmailService(ctx context.Context, awsRegion, fromEmail, fromName string, logger *zap.Logger) (*EmailService, error) {
	if fromEmail == "" {
		logger.Info("email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false, logger: logger}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	logger.Info("email service enabled",
		zap.String("from", fromEmail),
		zap.String("region", awsRegion),
	)

	return &EmailService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
		logger:    logger,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// NotifyBadgeEarned e-mails every parent that has an address on file.
// All parents are attempted; the returned error joins individual failures.
func (s *EmailService) NotifyBadgeEarned(ctx context.Context, child *models.User, parents []models.User, badge string) error {
	if !s.enabled {
		s.logger.Debug("skipping badge email (service disabled)",
			zap.Int64("child_id", child.ID),
			zap.String("badge", badge),
		)
		return nil
	}

	var errs []error
	for _, parent := range parents {
		if parent.Email == "" {
			continue
		}
		subject, htmlBody, textBody := badgeEmail(child, &parent, badge)
		if err := s.sendEmail(ctx, parent.Email, subject, htmlBody, textBody); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// badgeEmail renders the subject and bodies of a badge notification
func badgeEmail(child, parent *models.User, badge string) (subject, htmlBody, textBody string) {
	childName := displayName(child)
	parentName := displayName(parent)

	subject = fmt.Sprintf("%s earned the %s badge!", childName, badge)

	htmlBody = fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #2e8b57; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.badge { font-size: 20px; font-weight: bold; color: #2e8b57; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>New Badge Earned</h1>
		</div>
		<div class="content">
			<p>Assalamu alaikum %s,</p>
			<p>%s just earned a new badge:</p>
			<p class="badge">%s</p>
			<p>They now have %d points. Keep encouraging them!</p>
		</div>
		<div class="footer">
			<p>This is an automated email from IlmKids. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, html.EscapeString(parentName), html.EscapeString(childName), html.EscapeString(badge), child.Points)

	textBody = fmt.Sprintf(`Assalamu alaikum %s,

%s just earned a new badge: %s

They now have %d points. Keep encouraging them!

---
This is an automated email from IlmKids. Please do not reply.
`, parentName, childName, badge, child.Points)

	return subject, htmlBody, textBody
}

func displayName(u *models.User) string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	fields := []zap.Field{zap.String("to", toEmail), zap.String("subject", subject)}
	if result.MessageId != nil {
		fields = append(fields, zap.String("message_id", *result.MessageId))
	}
	s.logger.Info("email sent", fields...)
	return nil
}
