package smtp

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"github.com/medtrack/medtrack-api/pkg/config"
)

// Mailer envía emails (con adjunto PDF opcional) vía SMTP.
type Mailer struct {
	host     string
	user     string
	password string
	from     string
	addr     string
}

// NewMailer construye el mailer con la configuración SMTP.
func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		host:     cfg.Host,
		user:     cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		addr:     cfg.Addr(),
	}
}

// Send envía un email de texto plano a los destinatarios indicados,
// adjuntando el archivo de pdfPath si no es vacío.
func (m *Mailer) Send(to []string, subject, body, pdfPath string) error {
	if len(to) == 0 {
		return fmt.Errorf("mailer: sin destinatarios")
	}
	e := email.NewEmail()
	e.From = m.from
	e.To = to
	e.Subject = subject
	e.Text = []byte(body)

	if pdfPath != "" {
		if _, err := e.AttachFile(pdfPath); err != nil {
			return fmt.Errorf("mailer: adjuntar PDF: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
