package mailer

import (
	"context"
	"errors"
	"strings"

	mailtpl "github.com/oksasatya/artwork-marketplace/pkg/mailer/templates"
)

// EmailJob is one outgoing email. When Template is set, Render fills Subject,
// Text and HTML from the embedded templates using Data.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome"
	Data     map[string]any `json:"data,omitempty"`
}

// Sender delivers a rendered email. *Mailgun implements it.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

var ErrNoRecipient = errors.New("email job has no recipient")

func (j *EmailJob) Render() error {
	if strings.TrimSpace(j.To) == "" {
		return ErrNoRecipient
	}
	if j.Template == "" {
		return nil
	}
	subject, text, html, err := mailtpl.Render(j.Template, j.Data)
	if err != nil {
		return err
	}
	j.Subject = strings.TrimSpace(subject)
	j.Text, j.HTML = text, html
	return nil
}

// Deliver renders the job and hands it to s.
func Deliver(ctx context.Context, s Sender, j EmailJob) error {
	if err := j.Render(); err != nil {
		return err
	}
	return s.Send(ctx, j.To, j.Subject, j.Text, j.HTML)
}
