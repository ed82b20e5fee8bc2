package services

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-backoffice/internal/lib/smtp"
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
)

type clientStub struct {
	data bytes.Buffer
	rcpt []string
}

func (c *clientStub) Mail(string) error { return nil }
func (c *clientStub) Rcpt(to string) error {
	c.rcpt = append(c.rcpt, to)
	return nil
}
func (c *clientStub) Data() (io.WriteCloser, error) {
	return nopWriteCloser{&c.data}, nil
}
func (c *clientStub) Quit() error  { return nil }
func (c *clientStub) Close() error { return nil }

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

type transportStub struct {
	client *clientStub
}

func (t *transportStub) Connect() (smtp.Client, error) { return t.client, nil }
func (t *transportStub) GetSMTPUser() string           { return "backoffice@example.com" }

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSenderService_SendInfoExpiringMembership(t *testing.T) {
	transport := &transportStub{client: &clientStub{}}
	svc := NewSenderService(newNoopLogger(), transport)

	message := models.ExpiringMembership{
		Matricula:      "A1001",
		Name:           "Joao Silva",
		Email:          "joao@example.com",
		PlanName:       "Monthly Basic",
		ExpirationDate: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
	}
	body, err := json.Marshal(message)
	require.NoError(t, err)

	err = svc.SendInfoExpiringMembership(body)
	require.NoError(t, err)

	assert.Equal(t, []string{"joao@example.com"}, transport.client.rcpt)
	sent := transport.client.data.String()
	assert.Contains(t, sent, "Joao Silva")
	assert.Contains(t, sent, "Monthly Basic")
	assert.Contains(t, sent, "16-03-2026")
}

func TestSenderService_SendInfoExpiringMembership_BadBody(t *testing.T) {
	svc := NewSenderService(newNoopLogger(), &transportStub{client: &clientStub{}})

	err := svc.SendInfoExpiringMembership([]byte("{not json"))
	require.Error(t, err)
}

func TestSenderService_SendInfoExpiringMembership_NoEmail(t *testing.T) {
	transport := &transportStub{client: &clientStub{}}
	svc := NewSenderService(newNoopLogger(), transport)

	body, err := json.Marshal(models.ExpiringMembership{Matricula: "A1001"})
	require.NoError(t, err)

	err = svc.SendInfoExpiringMembership(body)
	require.NoError(t, err)
	assert.Empty(t, transport.client.rcpt)
}
