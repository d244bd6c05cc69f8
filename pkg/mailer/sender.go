package mailer

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Message is a fully rendered email.
type Message struct {
	From    string
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers a message or reports why it could not.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Publisher is satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// QueueSender hands messages to the email worker through RabbitMQ.
type QueueSender struct {
	Pub Publisher
}

func NewQueueSender(pub Publisher) *QueueSender {
	return &QueueSender{Pub: pub}
}

func (q *QueueSender) Send(ctx context.Context, msg Message) error {
	return q.Pub.PublishJSON(ctx, EmailJob{
		To:      msg.To,
		From:    msg.From,
		Subject: msg.Subject,
		Text:    msg.Text,
		HTML:    msg.HTML,
	})
}

// DisabledSender drops messages when MAIL_SEND_ENABLED=false.
type DisabledSender struct {
	Logger *logrus.Logger
}

func (d DisabledSender) Send(_ context.Context, msg Message) error {
	if d.Logger != nil {
		d.Logger.WithFields(logrus.Fields{"to": msg.To, "subject": msg.Subject}).Info("mail sending disabled, message dropped")
	}
	return nil
}

var (
	_ Sender = (*QueueSender)(nil)
	_ Sender = DisabledSender{}
)
