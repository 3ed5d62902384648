package sender

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"

	"github.com/go-tangra/go-tangra-sysreport/internal/collector"
	"github.com/go-tangra/go-tangra-sysreport/internal/config"
)

type fakeDialer struct {
	sent []*mail.Msg
	err  error
}

func (f *fakeDialer) DialAndSendWithContext(_ context.Context, msgs ...*mail.Msg) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msgs...)
	return nil
}

type fakeHost struct {
	hostname string
	user     string
	err      error
}

func (f fakeHost) Info(context.Context) (collector.HostStat, error) {
	return collector.HostStat{Hostname: f.hostname}, f.err
}
func (f fakeHost) User(context.Context) (string, error)       { return f.user, f.err }
func (f fakeHost) ProcessCount(context.Context) (int, error) { return 0, f.err }

var testMailConfig = config.MailConfig{
	Host:      "smtp.example.com",
	Port:      587,
	Sender:    "reports@example.com",
	Password:  "secret",
	Recipient: "it@example.com",
}

func writeReport(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "informe_20261015_090405.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"abc"}`), 0o644))
	return path
}

func render(t *testing.T, msg *mail.Msg) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestCompose(t *testing.T) {
	m := newMailer(testMailConfig, nil, &fakeDialer{}, log.NewStdLogger(io.Discard))
	path := writeReport(t)
	now := time.Date(2026, 10, 15, 9, 4, 5, 0, time.UTC)

	msg, err := m.Compose(path, now, "ws-042", "maria")
	require.NoError(t, err)

	raw := render(t, msg)
	assert.Contains(t, raw, "Subject: System report - 15/10/2026")
	assert.Contains(t, raw, "<reports@example.com>")
	assert.Contains(t, raw, "<it@example.com>")
	assert.Contains(t, raw, "@sysreport>")
	assert.Contains(t, raw, "text/html")
	assert.Contains(t, raw, "ws-042")
	assert.Contains(t, raw, "maria")
	assert.Contains(t, raw, `filename="informe_20261015_090405.json"`)
	assert.NotContains(t, raw, filepath.Dir(path))
}

func TestSend(t *testing.T) {
	d := &fakeDialer{}
	m := newMailer(testMailConfig, fakeHost{hostname: "ws-042", user: "maria"}, d, log.NewStdLogger(io.Discard))

	require.NoError(t, m.Send(context.Background(), writeReport(t)))
	require.Len(t, d.sent, 1)

	raw := render(t, d.sent[0])
	assert.Contains(t, raw, "ws-042")
	assert.Contains(t, raw, "maria")
}

func TestSendUnknownIdentity(t *testing.T) {
	d := &fakeDialer{}
	m := newMailer(testMailConfig, fakeHost{err: errors.New("denied")}, d, log.NewStdLogger(io.Discard))

	require.NoError(t, m.Send(context.Background(), writeReport(t)))
	require.Len(t, d.sent, 1)
	assert.Contains(t, render(t, d.sent[0]), "unknown")
}

func TestSendFailure(t *testing.T) {
	d := &fakeDialer{err: errors.New("535 authentication failed")}
	m := newMailer(testMailConfig, nil, d, log.NewStdLogger(io.Discard))

	err := m.Send(context.Background(), writeReport(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp.example.com:587")
	assert.Contains(t, err.Error(), "535 authentication failed")
}

func TestComposeRejectsBadAddress(t *testing.T) {
	cfg := testMailConfig
	cfg.Recipient = "not an address"
	m := newMailer(cfg, nil, &fakeDialer{}, log.NewStdLogger(io.Discard))

	_, err := m.Compose(writeReport(t), time.Now(), "h", "u")
	assert.Error(t, err)
}

func TestNewMailerRequiresAddresses(t *testing.T) {
	_, err := NewMailer(config.MailConfig{Host: "smtp.example.com", Port: 587}, nil, log.NewStdLogger(io.Discard))
	assert.Error(t, err)

	m, err := NewMailer(testMailConfig, nil, log.NewStdLogger(io.Discard))
	require.NoError(t, err)
	assert.NotNil(t, m)
}
