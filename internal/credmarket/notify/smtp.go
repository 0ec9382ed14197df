package notify

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/tls"
	"encoding/hex"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// SMTPConfig configures SMTPSender. Port 465 uses implicit TLS, anything
// else upgrades with STARTTLS when the server offers it.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender sends each message over a fresh SMTP connection.
type SMTPSender struct {
	cfg    SMTPConfig
	dialer net.Dialer
	now    func() time.Time
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTPSender{cfg: cfg, now: time.Now}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	from, err := mail.ParseAddress(s.cfg.From)
	if err != nil {
		return fmt.Errorf("notify: parse from address: %w", err)
	}

	client, conn, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	// net/smtp has no context support; the deadline bounds every round trip.
	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(dl)
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	if s.cfg.Username != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
			if err := client.Auth(auth); err != nil {
				return fmt.Errorf("notify: smtp auth: %w", err)
			}
		}
	}

	if err := client.Mail(from.Address); err != nil {
		return fmt.Errorf("notify: smtp MAIL FROM: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("notify: smtp RCPT TO: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("notify: smtp DATA: %w", err)
	}
	if _, err := w.Write(s.build(msg)); err != nil {
		_ = w.Close()
		return fmt.Errorf("notify: write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("notify: finish message: %w", err)
	}

	return client.Quit()
}

func (s *SMTPSender) connect(ctx context.Context) (*smtp.Client, net.Conn, error) {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}

	if s.cfg.Port == 465 {
		td := tls.Dialer{NetDialer: &s.dialer, Config: tlsCfg}
		conn, err := td.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, nil, fmt.Errorf("notify: dial %s: %w", addr, err)
		}
		client, err := smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("notify: smtp handshake: %w", err)
		}
		return client, conn, nil
	}

	conn, err := s.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("notify: dial %s: %w", addr, err)
	}
	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("notify: smtp handshake: %w", err)
	}
	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(tlsCfg); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("notify: starttls: %w", err)
		}
	}
	return client, conn, nil
}

// build renders RFC 5322 headers and a plain or multipart/alternative body.
func (s *SMTPSender) build(msg Message) []byte {
	var b bytes.Buffer

	header := func(k, v string) { fmt.Fprintf(&b, "%s: %s\r\n", k, v) }
	header("From", s.cfg.From)
	header("To", msg.To)
	header("Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	header("Date", s.now().Format(time.RFC1123Z))
	header("MIME-Version", "1.0")

	if msg.HTML == "" {
		header("Content-Type", `text/plain; charset="utf-8"`)
		b.WriteString("\r\n")
		b.WriteString(crlf(msg.Text))
		return b.Bytes()
	}

	boundary := newBoundary()
	header("Content-Type", `multipart/alternative; boundary="`+boundary+`"`)
	b.WriteString("\r\n")

	part := func(contentType, body string) {
		fmt.Fprintf(&b, "--%s\r\nContent-Type: %s; charset=\"utf-8\"\r\n\r\n", boundary, contentType)
		b.WriteString(crlf(body))
		b.WriteString("\r\n")
	}
	part("text/plain", msg.Text)
	part("text/html", msg.HTML)
	fmt.Fprintf(&b, "--%s--\r\n", boundary)

	return b.Bytes()
}

func crlf(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "\r\n")
}

func newBoundary() string {
	var buf [12]byte
	_, _ = rand.Read(buf[:])
	return "credmarket-" + hex.EncodeToString(buf[:])
}
