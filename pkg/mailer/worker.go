package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oksasatya/artflow-api/pkg/mailer/templates"
)

// Outcome tells the queue consumer what to do with a delivery.
type Outcome int

const (
	Ack     Outcome = iota // sent
	Requeue                // transient send failure
	Drop                   // malformed job, retrying cannot help
)

// HandleJob decodes one queued EmailJob, renders it when it names a template
// and sends it through s.
func HandleJob(ctx context.Context, s Sender, body []byte) (Outcome, error) {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return Drop, fmt.Errorf("bad message: %w", err)
	}
	if err := job.Validate(); err != nil {
		return Drop, err
	}

	if job.Template != "" {
		job.EnsureRecipient()
		subject, text, html, err := templates.Render(job.Template, job.Data)
		if err != nil {
			return Drop, fmt.Errorf("render %s: %w", job.Template, err)
		}
		job.Subject, job.Text, job.HTML = subject, text, html
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := s.Send(c, job.Message()); err != nil {
		return Requeue, fmt.Errorf("send: %w", err)
	}
	return Ack, nil
}
