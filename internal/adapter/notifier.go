// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/clean-auth/internal/config"
	"github.com/MKhiriev/clean-auth/internal/logger"
)

// smtpsPort is the port on which SMTP is spoken over implicit TLS.
const smtpsPort = 465

// NewNotifier returns an SMTP notifier for cfg, or a notifier that writes
// redacted messages to the log when no mail host is configured.
func NewNotifier(cfg config.Mail, log *logger.Logger) Notifier {
	if cfg.Host == "" {
		log.Warn().Msg("MAIL_HOST is empty: mail will be logged without codes and never delivered")
		return NewLogNotifier(log)
	}

	return NewSMTPNotifier(cfg, log)
}

type smtpNotifier struct {
	host     string
	addr     string
	username string
	password string
	from     string

	implicitTLS bool
	tlsConfig   *tls.Config

	logger *logger.Logger
}

// NewSMTPNotifier sends plain-text mail through cfg.Host. STARTTLS is used
// whenever the server offers it, and PLAIN auth when a username is set.
func NewSMTPNotifier(cfg config.Mail, log *logger.Logger) Notifier {
	return &smtpNotifier{
		host:        cfg.Host,
		addr:        net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		username:    cfg.Username,
		password:    cfg.Password,
		from:        cfg.From,
		implicitTLS: cfg.Port == smtpsPort,
		tlsConfig:   &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12},
		logger:      log.WithComponent("smtp-notifier"),
	}
}

// Send delivers one message. The whole SMTP conversation is bounded by the
// deadline of ctx.
func (n *smtpNotifier) Send(ctx context.Context, to, subject, body string) error {
	if err := checkHeaderValues(n.from, to, subject); err != nil {
		return err
	}

	conn, err := n.dial(ctx)
	if err != nil {
		return fmt.Errorf("error connecting to smtp server %s: %w", n.addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, n.host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("error creating smtp client: %w", err)
	}
	defer client.Close()

	if err = n.handshake(client); err != nil {
		return err
	}

	if err = client.Mail(n.from); err != nil {
		return fmt.Errorf("smtp MAIL FROM: %w", err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp RCPT TO: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA: %w", err)
	}
	if _, err = w.Write(buildMessage(n.from, to, subject, body, time.Now())); err != nil {
		_ = w.Close()
		return fmt.Errorf("error writing message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("smtp message rejected: %w", err)
	}

	if err = client.Quit(); err != nil {
		n.logger.Debug().Err(err).Msg("smtp QUIT failed after delivery")
	}

	n.logger.Info().Str("to", to).Str("subject", subject).Msg("message delivered")
	return nil
}

func (n *smtpNotifier) dial(ctx context.Context) (net.Conn, error) {
	if n.implicitTLS {
		d := &tls.Dialer{Config: n.tlsConfig}
		return d.DialContext(ctx, "tcp", n.addr)
	}

	var d net.Dialer
	return d.DialContext(ctx, "tcp", n.addr)
}

func (n *smtpNotifier) handshake(client *smtp.Client) error {
	if !n.implicitTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(n.tlsConfig); err != nil {
				return fmt.Errorf("smtp STARTTLS: %w", err)
			}
		}
	}

	if n.username == "" {
		return nil
	}
	if ok, _ := client.Extension("AUTH"); !ok {
		return ErrSMTPAuthUnsupported
	}
	if err := client.Auth(smtp.PlainAuth("", n.username, n.password, n.host)); err != nil {
		return fmt.Errorf("smtp AUTH: %w", err)
	}

	return nil
}

func checkHeaderValues(values ...string) error {
	for _, v := range values {
		if strings.ContainsAny(v, "\r\n") {
			return ErrInvalidMessageHeader
		}
	}
	return nil
}

// buildMessage renders headers and body. Bare LF line endings in body are
// rewritten to CRLF by the smtp DATA writer.
func buildMessage(from, to, subject, body string, date time.Time) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", date.Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	buf.WriteString("\r\n")

	return buf.Bytes()
}

type logNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier returns a Notifier that writes every message to log with
// digit runs masked, so one-time codes never reach the log.
// It exists for local development and must not be used in production.
func NewLogNotifier(log *logger.Logger) Notifier {
	return &logNotifier{logger: log.WithComponent("log-notifier")}
}

func (n *logNotifier) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n.logger.Warn().
		Str("to", to).
		Str("subject", subject).
		Str("body", redactCodes(body)).
		Msg("mail delivery disabled, message logged")
	return nil
}

var codePattern = regexp.MustCompile(`[0-9]{4,}`)

func redactCodes(body string) string {
	return codePattern.ReplaceAllStringFunc(body, func(code string) string {
		return strings.Repeat("*", len(code))
	})
}
