package email

import "log"

// LogSender writes outbound mail to the process log instead of SMTP.
// Used in development when MAIL_* credentials are absent so the OTP flow
// stays usable locally.
type LogSender struct{}

func (LogSender) Send(to, subject, htmlBody string) error {
	log.Printf("email (log only) to=%s subject=%q body=%s", to, subject, htmlBody)
	return nil
}
