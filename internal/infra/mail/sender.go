package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
}

func NewEmailSender(host string, port int, user, password, from, to string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		To:       to,
	}
}

// SendLeadAlert avisa o operador que chegou lead novo no Direct.
func (s *EmailSender) SendLeadAlert(event, igID, text string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", fmt.Sprintf("📥 Novo lead no Direct (%s)", igID))
	m.SetBody("text/plain", fmt.Sprintf(
		"Evento: %s\nConta: %s\nMensagem: %s\n\nAbra o dashboard para responder.",
		event, igID, text,
	))

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
