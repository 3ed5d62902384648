package sender

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/wneessen/go-mail"

	"github.com/go-tangra/go-tangra-sysreport/internal/collector"
	"github.com/go-tangra/go-tangra-sysreport/internal/config"
)

const unknown = "unknown"

var bodyTemplate = template.Must(template.New("body").Parse(`<h2>System report</h2>
<p>Attached is the report generated on {{.Date}} at {{.Time}}</p>
<p><strong>Host:</strong> {{.Hostname}}</p>
<p><strong>User:</strong> {{.User}}</p>
`))

type bodyData struct {
	Date     string
	Time     string
	Hostname string
	User     string
}

// Dialer delivers composed messages. *mail.Client satisfies it.
type Dialer interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Mailer sends persisted reports as email attachments.
type Mailer struct {
	cfg    config.MailConfig
	host   collector.HostSource
	dialer Dialer
	now    func() time.Time
	log    *log.Helper
}

// NewMailer builds a Mailer for the relay in cfg. The session requires
// STARTTLS and authenticates with PLAIN using the sender address. host
// supplies the hostname and user shown in the message body and may be nil.
func NewMailer(cfg config.MailConfig, host collector.HostSource, logger log.Logger) (*Mailer, error) {
	if cfg.Host == "" || cfg.Sender == "" || cfg.Recipient == "" {
		return nil, errors.New("mail host, sender and recipient must be configured")
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Sender),
		mail.WithPassword(cfg.Password),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create mail client: %w", err)
	}
	return newMailer(cfg, host, client, logger), nil
}

func newMailer(cfg config.MailConfig, host collector.HostSource, d Dialer, logger log.Logger) *Mailer {
	return &Mailer{
		cfg:    cfg,
		host:   host,
		dialer: d,
		now:    time.Now,
		log:    log.NewHelper(log.With(logger, "module", "sender")),
	}
}

// Compose builds the notification message for the report at path.
func (m *Mailer) Compose(path string, now time.Time, hostname, user string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.Sender); err != nil {
		return nil, fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(m.cfg.Recipient); err != nil {
		return nil, fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject("System report - " + now.Format("02/01/2006"))
	msg.SetMessageIDWithValue(uuid.NewString() + "@sysreport")
	msg.SetDateWithValue(now)

	data := bodyData{
		Date:     now.Format("02/01/2006"),
		Time:     now.Format("15:04:05"),
		Hostname: hostname,
		User:     user,
	}
	if err := msg.SetBodyHTMLTemplate(bodyTemplate, data); err != nil {
		return nil, fmt.Errorf("render body: %w", err)
	}
	msg.AttachFile(path, mail.WithFileName(filepath.Base(path)))
	return msg, nil
}

// Send mails the report at path in a single attempt.
func (m *Mailer) Send(ctx context.Context, path string) error {
	hostname, user := m.identity(ctx)
	msg, err := m.Compose(path, m.now(), hostname, user)
	if err != nil {
		return err
	}

	if err := m.dialer.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send report via %s:%d: %w", m.cfg.Host, m.cfg.Port, err)
	}
	m.log.Infof("report %s sent to %s", filepath.Base(path), m.cfg.Recipient)
	return nil
}

func (m *Mailer) identity(ctx context.Context) (hostname, user string) {
	hostname, user = unknown, unknown
	if m.host == nil {
		return hostname, user
	}
	if h, err := m.host.Info(ctx); err == nil && h.Hostname != "" {
		hostname = h.Hostname
	} else if err != nil {
		m.log.Debugf("hostname lookup: %v", err)
	}
	if u, err := m.host.User(ctx); err == nil && u != "" {
		user = u
	} else if err != nil {
		m.log.Debugf("user lookup: %v", err)
	}
	return hostname, user
}
