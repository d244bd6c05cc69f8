package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordSender struct {
	got []Message
	err error
}

func (r *recordSender) Send(_ context.Context, m Message) error {
	r.got = append(r.got, m)
	return r.err
}

func TestHandleJob_RenderedJob(t *testing.T) {
	s := &recordSender{}
	out, err := HandleJob(context.Background(), s, []byte(`{"to":"a@x.com","subject":"hi","html":"<p>1234</p>"}`))
	require.NoError(t, err)
	assert.Equal(t, Ack, out)
	require.Len(t, s.got, 1)
	assert.Equal(t, "hi", s.got[0].Subject)
}

func TestHandleJob_TemplatedJob(t *testing.T) {
	s := &recordSender{}
	body := []byte(`{"to":"a@x.com","template":"otp","data":{"Purpose":"register","Code":"0421","CompanyName":"ArtFlow"}}`)

	out, err := HandleJob(context.Background(), s, body)
	require.NoError(t, err)
	assert.Equal(t, Ack, out)
	require.Len(t, s.got, 1)
	assert.Equal(t, "ArtFlow register verification OTP", s.got[0].Subject)
	assert.Contains(t, s.got[0].HTML, "0421")
}

func TestHandleJob_Outcomes(t *testing.T) {
	out, err := HandleJob(context.Background(), &recordSender{}, []byte(`{not json`))
	assert.Error(t, err)
	assert.Equal(t, Drop, out)

	out, err = HandleJob(context.Background(), &recordSender{}, []byte(`{"subject":"no recipient","text":"x"}`))
	assert.Error(t, err)
	assert.Equal(t, Drop, out)

	out, err = HandleJob(context.Background(), &recordSender{}, []byte(`{"to":"a@x.com","template":"missing"}`))
	assert.Error(t, err)
	assert.Equal(t, Drop, out)

	out, err = HandleJob(context.Background(), &recordSender{err: errors.New("mailgun 503")}, []byte(`{"to":"a@x.com","subject":"s","text":"t"}`))
	assert.Error(t, err)
	assert.Equal(t, Requeue, out)
}
