package mailing

import (
	"embed"
	"strings"
	"time"

	"html/template"

	"github.com/go-mail/mail"
	"github.com/jaytaylor/html2text"
	"github.com/providerdesk/providerdesk/config"
	"github.com/providerdesk/providerdesk/sanitize"
	"go.uber.org/zap"
)

//go:embed templates
var templates embed.FS

// Mailer sends the transactional emails of the dashboard, with SMTP
// disabled it degrades to a noop that only logs
type Mailer struct {
	noop          bool
	client        *mail.Dialer
	log           *zap.Logger
	cfg           *config.Configuration
	emailTemplate *template.Template
}

func (m *Mailer) baseModel(title string, message string) map[string]interface{} {
	b := make(map[string]interface{})
	b["service_name"] = m.cfg.SMTP.DisplayName
	b["date"] = time.Now().Format("2006-01-02 15:04")
	b["title"] = title
	b["message"] = message
	return b
}

// SendPasswordResetEmail sends the reset link to the account holder
func (m *Mailer) SendPasswordResetEmail(email string, name string, resetLink string) error {
	if m.noop {
		m.log.Info(
			"skipping email `PasswordReset` because noop is configured",
			sanitize.UserInputString("email", email),
		)
		return nil
	}
	base := m.baseModel(
		"Reset your password",
		"Hello "+name+", we received a request to reset the password of your account. "+
			"The link below is valid for one hour and can be used once. "+
			"If you did not request this, you can safely ignore this email.",
	)
	base["link_text"] = "Reset password"
	base["link"] = resetLink
	base["subject"] = "Password reset request"
	return m.send(email, "Password reset request", base)
}

// SendAccountCreatedEmail informs a freshly created staff member
func (m *Mailer) SendAccountCreatedEmail(email string, name string, loginLink string) error {
	if m.noop {
		m.log.Info(
			"skipping email `AccountCreated` because noop is configured",
			sanitize.UserInputString("email", email),
		)
		return nil
	}
	base := m.baseModel(
		"Your account is ready",
		"Hello "+name+", an administrator account has been created for you. "+
			"You can sign in with the credentials you received.",
	)
	base["link_text"] = "Sign in"
	base["link"] = loginLink
	base["subject"] = "Your account is ready"
	return m.send(email, "Your account is ready", base)
}

func (m *Mailer) SendTestEmail(email string) error {
	base := m.baseModel("This is a test", "hey your email confirugation seems to be fine.")
	base["subject"] = "Your test email is here!"
	base["link"] = ""
	base["link_text"] = ""
	return m.send(email, "Your test email is here!", base)
}

func (m *Mailer) send(email string, subject string, viewModel map[string]interface{}) error {
	buffer := new(strings.Builder)
	err := m.emailTemplate.Execute(buffer, viewModel)
	if err != nil {
		return err
	}
	html := buffer.String()
	text, err := html2text.FromString(html, html2text.Options{PrettyTables: true})
	if err != nil {
		return err
	}
	msg := mail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.SMTP.Address, m.cfg.SMTP.DisplayName)
	msg.SetAddressHeader("To", email, "")
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", html)
	return m.client.DialAndSend(msg)
}

func NewMailer(
	log *zap.Logger,
	cfg *config.Configuration,
) (*Mailer, error) {
	t, err := template.ParseFS(templates, "templates/template.html")
	if err != nil {
		return nil, err
	}
	s := &Mailer{
		noop:          !cfg.SMTP.Enabled,
		log:           log,
		emailTemplate: t,
		cfg:           cfg,
	}
	if !s.noop {
		s.client = mail.NewDialer(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Username,
			cfg.SMTP.Password,
		)
	}
	return s, nil
}

func NewNoOpMailer(log *zap.Logger, cfg *config.Configuration) *Mailer {
	s := &Mailer{
		noop: true,
		log:  log,
		cfg:  cfg,
	}
	return s
}
