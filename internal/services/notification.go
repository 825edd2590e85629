package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// Notifier внеполосное уведомление получателя о новом сообщении
type Notifier interface {
	NotifyNewMessage(ctx context.Context, recipientID, senderID uuid.UUID, content string) error
}

// EmailNotifier шлёт письмо через SMTP. Без настроенного SMTP_HOST работает
// в mock-режиме и только пишет в лог — удобно для локальной разработки.
type EmailNotifier struct {
	store Store
	from  string
	host  string
	port  int
	user  string
	pass  string
}

func NewEmailNotifier(store Store) *EmailNotifier {
	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		port = p
	}

	from := os.Getenv("FROM_EMAIL")
	if from == "" {
		from = "noreply@ugchub.io"
	}

	return &EmailNotifier{
		store: store,
		from:  from,
		host:  os.Getenv("SMTP_HOST"),
		port:  port,
		user:  os.Getenv("SMTP_USER"),
		pass:  os.Getenv("SMTP_PASSWORD"),
	}
}

func (n *EmailNotifier) configured() bool {
	return n.host != ""
}

func (n *EmailNotifier) NotifyNewMessage(ctx context.Context, recipientID, senderID uuid.UUID, content string) error {
	if !n.configured() {
		log.Printf("[Mock Email] New message notification would be sent to user %s", recipientID)
		return nil
	}

	recipient, err := n.store.GetUser(ctx, recipientID)
	if err != nil {
		return err
	}
	sender, err := n.store.GetUser(ctx, senderID)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", recipient.Email)
	m.SetHeader("Subject", fmt.Sprintf("New message from %s", sender.FullName()))
	m.SetBody("text/html", fmt.Sprintf(
		"<p><strong>%s</strong> sent you a message:</p><blockquote>%s</blockquote><p>Reply in your UGC Hub inbox.</p>",
		sender.FullName(), excerpt(content, 200),
	))

	d := gomail.NewDialer(n.host, n.port, n.user, n.pass)
	return d.DialAndSend(m)
}

func excerpt(content string, max int) string {
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max]) + "..."
}
