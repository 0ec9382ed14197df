package notify_test

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/notify"
	"github.com/stretchr/testify/require"
)

// fakeSMTP accepts one session and returns the envelope and DATA it saw.
func fakeSMTP(t *testing.T) (port int, got <-chan []string) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	out := make(chan []string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		var lines []string
		r := bufio.NewReader(conn)
		reply := func(s string) { _, _ = conn.Write([]byte(s + "\r\n")) }

		reply("220 localhost ESMTP fake")
		inData := false
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				out <- lines
				return
			}
			line = strings.TrimRight(line, "\r\n")

			if inData {
				if line == "." {
					inData = false
					reply("250 queued")
					continue
				}
				lines = append(lines, line)
				continue
			}

			cmd := strings.ToUpper(line)
			switch {
			case strings.HasPrefix(cmd, "EHLO"):
				reply("250-localhost")
				reply("250 8BITMIME")
			case strings.HasPrefix(cmd, "MAIL FROM"), strings.HasPrefix(cmd, "RCPT TO"):
				lines = append(lines, line)
				reply("250 ok")
			case cmd == "DATA":
				inData = true
				reply("354 go ahead")
			case cmd == "QUIT":
				reply("221 bye")
				out <- lines
				return
			default:
				reply("502 not implemented")
			}
		}
	}()

	return ln.Addr().(*net.TCPAddr).Port, out
}

func TestSMTPSenderPlainText(t *testing.T) {
	port, got := fakeSMTP(t)

	s := notify.NewSMTPSender(notify.SMTPConfig{
		Host: "127.0.0.1",
		Port: port,
		From: "CredMarket <noreply@credmarket.example>",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := s.Send(ctx, notify.OTPEmail("b@acme.com", "Bo", "654321", 10*time.Minute))
	require.NoError(t, err)

	lines := <-got
	joined := strings.Join(lines, "\n")
	require.Contains(t, joined, "MAIL FROM:<noreply@credmarket.example>")
	require.Contains(t, joined, "RCPT TO:<b@acme.com>")
	require.Contains(t, joined, "To: b@acme.com")
	require.Contains(t, joined, `Content-Type: text/plain; charset="utf-8"`)
	require.Contains(t, joined, "654321")
}

func TestSMTPSenderMultipart(t *testing.T) {
	port, got := fakeSMTP(t)

	s := notify.NewSMTPSender(notify.SMTPConfig{
		Host: "127.0.0.1",
		Port: port,
		From: "noreply@credmarket.example",
	})

	msg := notify.ApprovalEmail("http://localhost:8080", "c@newco.com", "Cara", "Newco")
	require.NoError(t, s.Send(context.Background(), msg))

	joined := strings.Join(<-got, "\n")
	require.Contains(t, joined, "multipart/alternative")
	require.Contains(t, joined, "Content-Type: text/html")
	require.Contains(t, joined, "http://localhost:8080/login")
}

func TestSMTPSenderDialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	s := notify.NewSMTPSender(notify.SMTPConfig{Host: "127.0.0.1", Port: port, From: "a@b.c"})
	err = s.Send(context.Background(), notify.Message{To: "x@y.z"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "127.0.0.1:"+strconv.Itoa(port))
}
