package mailer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

// SMTPMailer sends transactional mail over SMTP.
type SMTPMailer struct {
	host        string
	port        int
	username    string
	password    string
	from        string
	frontendURL string
}

func NewSMTPMailer(host string, port int, username, password, from, frontendURL string) *SMTPMailer {
	return &SMTPMailer{
		host:        host,
		port:        port,
		username:    username,
		password:    password,
		from:        from,
		frontendURL: frontendURL,
	}
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, name, token string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Reset your password")
	msg.SetBodyString(mail.TypeTextHTML, passwordResetHTML(name, m.frontendURL, token))

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Info().Str("to", to).Msg("sending password reset mail")
	return client.DialAndSendWithContext(ctx, msg)
}

func passwordResetHTML(name, frontendURL, token string) string {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", frontendURL, token)
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Password reset</h2>
		<p>Hi %s,</p>
		<p>We received a request to reset your password. The link below is valid for 24 hours:</p>
		<p><a href="%s" style="display: inline-block; padding: 10px 20px; background-color: #111; color: white; text-decoration: none; border-radius: 5px;">Reset password</a></p>
		<p style="color: #555;">If you did not request this, you can safely ignore this email.</p>
	</div>
</body>
</html>`, name, resetLink)
}
