package mailer

import (
	"errors"
	"strings"
)

// ErrEmptyJob is returned for a job that names neither a template nor any body.
var ErrEmptyJob = errors.New("email job has no template and no body")

// EmailJob is the JSON payload put on the RabbitMQ email queue.
// A job either names a Template with its Data, or carries a ready Subject and bodies.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // welcome, login_notification, profile_updated, kyc_submitted
	Data     map[string]any `json:"data,omitempty"`
}

func (j *EmailJob) Templated() bool { return strings.TrimSpace(j.Template) != "" }

// Validate rejects jobs the worker can never deliver; those are dropped rather than requeued.
func (j *EmailJob) Validate() error {
	if j.Templated() {
		return nil
	}
	if strings.TrimSpace(j.Text) == "" && strings.TrimSpace(j.HTML) == "" {
		return ErrEmptyJob
	}
	if strings.TrimSpace(j.To) == "" {
		return ErrNoRecipient
	}
	return nil
}
