// Package mailer sends the credentials email to a newly provisioned
// user. Delivery failures are reported but never undo the account
// creation that preceded them.
package mailer

import (
	"errors"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

var ErrDelivery = errors.New("credentials email delivery failed")

type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func New(host string, port int, username, password, from string) *Mailer {
	return &Mailer{host: host, port: port, username: username, password: password, from: from}
}

// SendCredentials emails the login credentials, including the
// plaintext password, to the new user.
func (m *Mailer) SendCredentials(to, firstName, email, password string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your Account Credentials")
	msg.SetBody("text/html", renderCredentialsBody(firstName, email, password))

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	return nil
}

func renderCredentialsBody(firstName, email, password string) string {
	return fmt.Sprintf(`<div style="max-width:600px;margin:0 auto;font-family:Arial,sans-serif;color:#333">
  <h2 style="color:#4F46E5">Hello %s,</h2>
  <p>You have been added as a member on our Asset System. Below are your login credentials:</p>
  <div style="background-color:#F3F4F6;border-radius:6px;padding:20px">
    <h3 style="margin-top:0;color:#4B5563">Your Login Information</h3>
    <p><strong>Email:</strong> %s</p>
    <p><strong>Password:</strong> %s</p>
  </div>
  <p style="background-color:#FFFBEB;border-left:4px solid #F59E0B;padding:15px;font-size:14px;color:#92400E">
    <strong>Security Notice:</strong> Please change your password immediately after your first login and keep your credentials secure.
  </p>
  <p>If you have any questions or need assistance, please contact our support team.</p>
</div>`,
		html.EscapeString(firstName),
		html.EscapeString(email),
		html.EscapeString(password),
	)
}
