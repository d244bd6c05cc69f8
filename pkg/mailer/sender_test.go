package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	bodies []any
	err    error
}

func (p *capturePublisher) PublishJSON(_ context.Context, body any) error {
	p.bodies = append(p.bodies, body)
	return p.err
}

func TestQueueSender_PublishesRenderedJob(t *testing.T) {
	pub := &capturePublisher{}
	s := NewQueueSender(pub)

	err := s.Send(context.Background(), Message{To: "a@x.com", Subject: "code", HTML: "<b>1234</b>"})
	require.NoError(t, err)

	require.Len(t, pub.bodies, 1)
	job, ok := pub.bodies[0].(EmailJob)
	require.True(t, ok)
	assert.Equal(t, "a@x.com", job.To)
	assert.Equal(t, "<b>1234</b>", job.HTML)
	assert.NoError(t, job.Validate())
}

func TestQueueSender_PropagatesPublishError(t *testing.T) {
	boom := errors.New("channel closed")
	s := NewQueueSender(&capturePublisher{err: boom})

	assert.ErrorIs(t, s.Send(context.Background(), Message{To: "a@x.com"}), boom)
}

func TestEmailJob_Validate(t *testing.T) {
	assert.Error(t, (&EmailJob{Subject: "s", Text: "t"}).Validate())
	assert.Error(t, (&EmailJob{To: "a@x.com", Subject: "s"}).Validate())
	assert.NoError(t, (&EmailJob{To: "a@x.com", Template: "otp"}).Validate())
}

func TestEmailJob_EnsureRecipient(t *testing.T) {
	job := EmailJob{To: "a@x.com", Data: map[string]any{"Email": "other@x.com"}}
	job.EnsureRecipient()

	assert.Equal(t, "other@x.com", job.Data["Email"])
	assert.Equal(t, "a@x.com", job.Data["RecipientEmail"])
}

func TestDisabledSender_Drops(t *testing.T) {
	assert.NoError(t, DisabledSender{}.Send(context.Background(), Message{To: "a@x.com"}))
}
