package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"net/url"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	FrontendURL  string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// SendPasswordResetEmail sends a password reset email
func (s *EmailService) SendPasswordResetEmail(toEmail, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s&email=%s",
		s.config.FrontendURL,
		url.QueryEscape(token),
		url.QueryEscape(toEmail),
	)

	htmlContent, err := renderTemplate(passwordResetTemplate, map[string]string{
		"ResetURL": resetURL,
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	message := s.buildHTMLEmail(toEmail, "Reset Your Password - FuelSight", htmlContent)
	return s.sendEmail(toEmail, message)
}

// SendUnreadableSlipAlert tells the owner a slip photo produced no readable
// data so they can retake it or enter the readings manually.
func (s *EmailService) SendUnreadableSlipAlert(toEmail, fileName string) error {
	htmlContent, err := renderTemplate(unreadableSlipTemplate, map[string]string{
		"FileName": fileName,
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	message := s.buildHTMLEmail(toEmail, "Slip Could Not Be Read - FuelSight", htmlContent)
	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)
	return []byte(headers + htmlBody)
}

func renderTemplate(tpl string, data map[string]string) (string, error) {
	t, err := template.New("email").Parse(tpl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const passwordResetTemplate = `
<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Password Reset</h2>
    <p>We received a request to reset the password for your FuelSight account.</p>
    <p><a href="{{.ResetURL}}" style="background: #1a73e8; color: #fff; padding: 10px 18px; text-decoration: none; border-radius: 4px;">Reset Password</a></p>
    <p>The link expires in one hour. If you did not request a reset, you can ignore this email.</p>
  </body>
</html>`

const unreadableSlipTemplate = `
<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Slip Could Not Be Read</h2>
    <p>The slip photo <strong>{{.FileName}}</strong> did not contain any readable meter data.</p>
    <p>Please retake the photo in better light, or enter the readings manually from the dashboard.</p>
  </body>
</html>`
