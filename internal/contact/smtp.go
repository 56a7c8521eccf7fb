package contact

import (
	"context"
	"errors"
	"fmt"
	"net/textproto"
	"strings"
	"time"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the mailbox the portfolio sends through.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	To       string
	Timeout  time.Duration
}

// SMTP relays messages straight to a mailbox instead of a form service.
type SMTP struct {
	cfg  SMTPConfig
	send func(*gomail.Message) error
}

func NewSMTP(cfg SMTPConfig) *SMTP {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &SMTP{cfg: cfg, send: dialAndSend(d, cfg.Username, []string{cfg.To})}
}

// dialAndSend talks to the SendCloser directly. Dialer.DialAndSend flattens
// server replies into plain strings, which hides the *textproto.Error.
func dialAndSend(d *gomail.Dialer, from string, to []string) func(*gomail.Message) error {
	return func(m *gomail.Message) error {
		sc, err := d.Dial()
		if err != nil {
			return err
		}
		if err := sc.Send(from, to, m); err != nil {
			sc.Close()
			return err
		}
		// The message was accepted at DATA; a failed QUIT does not undo that.
		sc.Close()
		return nil
	}
}

func (s *SMTP) buildMessage(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.Username)
	m.SetHeader("To", s.cfg.To)
	m.SetHeader("Reply-To", msg.Email)
	m.SetHeader("Subject", fmt.Sprintf("%s: %s", FormName, strings.TrimSpace(msg.Subject)))
	m.SetBody("text/plain", fmt.Sprintf(`New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, msg.Body))
	return m
}

func (s *SMTP) Send(ctx context.Context, msg Message) error {
	if s.cfg.Username == "" || s.cfg.Password == "" {
		return &RejectedError{Message: "SMTP credentials not configured"}
	}

	m := s.buildMessage(msg)

	done := make(chan error, 1)
	go func() {
		done <- s.send(m)
	}()

	wait := s.cfg.Timeout
	if wait <= 0 {
		wait = 30 * time.Second
	}

	select {
	case err := <-done:
		return classifySMTP(err)
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrNetwork, ctx.Err())
	case <-time.After(wait):
		return fmt.Errorf("%w: smtp timeout after %s", ErrNetwork, wait)
	}
}

// classifySMTP separates server replies (the message was refused) from
// failures to reach the server at all.
func classifySMTP(err error) error {
	if err == nil {
		return nil
	}
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		return &RejectedError{StatusCode: protoErr.Code, Message: protoErr.Msg}
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}
