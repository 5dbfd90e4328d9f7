package notify

import (
	"fmt"
	"net/smtp"

	"assessment-app/internal/domain/pricing"

	"github.com/jordan-wright/email"
	log "github.com/sirupsen/logrus"
)

// Mailer sends product emails. Every Send* method is fire-and-forget: the
// caller never waits on SMTP, failures are logged and dropped.
type Mailer struct {
	host     string
	port     string
	from     string
	password string
}

var Default *Mailer

func Init(host, port, from, password string) {
	Default = &Mailer{host: host, port: port, from: from, password: password}
}

func (m *Mailer) send(to, subject, body string) {
	go func() {
		e := email.NewEmail()
		e.From = m.from
		e.To = []string{to}
		e.Subject = subject
		e.Text = []byte(body)

		addr := m.host + ":" + m.port
		auth := smtp.PlainAuth("", m.from, m.password, m.host)
		if err := e.Send(addr, auth); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"to":      to,
				"subject": subject,
			}).Error("failed to send email")
			return
		}
		log.WithField("to", to).Debug("email sent")
	}()
}

func (m *Mailer) SendVerification(to, token string) {
	link := fmt.Sprintf("http://localhost:8080/verify?token=%s", token)
	m.send(to, "Verify Your Account",
		fmt.Sprintf("Click the following link to verify your account:\n\n%s", link))
}

func (m *Mailer) SendPasswordReset(to, link string) {
	m.send(to, "Reset Your Password",
		fmt.Sprintf("Click the following link to reset your password:\n\n%s", link))
}

func (m *Mailer) SendPaymentReceipt(to string, amount float64, assessmentType string) {
	m.send(to, "Payment Received",
		fmt.Sprintf("We received your payment of %s for the %s assessment.\nYour results will be ready shortly.",
			pricing.FormatCurrency(amount), assessmentType))
}

func (m *Mailer) SendResultsReady(to, resultPage string) {
	m.send(to, "Your Results Are Ready",
		fmt.Sprintf("Your assessment results are ready. View them here:\n\n%s", resultPage))
}
