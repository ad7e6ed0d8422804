package email

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/blog-service/internal/config"
	"github.com/Dan9191/blog-service/internal/models"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendWelcome sends a welcome email to a freshly registered user
func (s *Sender) SendWelcome(to, name string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Welcome to Blog Service"

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your account has been created. You can now sign in and start posting.\n"+
			"\nBest regards,\nBlog Service",
		name,
	)
	e.Text = []byte(body)

	return s.send(e)
}

// SendDigest sends a digest of recently created posts
func (s *Sender) SendDigest(to, name string, posts []*models.Post) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Your daily post digest"

	body := fmt.Sprintf("Dear %s,\n\nNew posts from the last 24 hours:\n\n", name)
	for _, post := range posts {
		author := post.AuthorIdentifier()
		if post.Author != nil {
			author = post.Author.Name
		}
		body += fmt.Sprintf("- %s (by %s)\n  %s/posts/%s\n", post.Title, author, s.cfg.BaseURL, post.ID)
	}
	body += "\nBest regards,\nBlog Service"
	e.Text = []byte(body)

	return s.send(e)
}

func (s *Sender) send(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %v: %v", e.To, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %v: %s", e.To, e.Subject)
	return nil
}
