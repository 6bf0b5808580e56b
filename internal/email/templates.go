package email

import "fmt"

// OTPSubject is the verification email subject line.
const OTPSubject = "Código de verificação - Amparo"

// OTPBody renders the verification code email.
func OTPBody(code string, ttlMinutes int) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; line-height: 1.6;">
  <h2>Verificação de acesso</h2>
  <p>Use o código abaixo para concluir seu acesso:</p>
  <div style="font-size: 28px; font-weight: bold; letter-spacing: 6px; margin: 20px 0;">%s</div>
  <p>Este código expira em %d minutos.</p>
  <p style="color: #888; font-size: 12px;">
    Se você não solicitou este código, ignore este e-mail.
  </p>
</div>`, code, ttlMinutes)
}
