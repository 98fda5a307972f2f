package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/acagil/borsabot/pkg/config"
	"github.com/acagil/borsabot/pkg/httputil"
	"github.com/acagil/borsabot/pkg/logger"
)

// Mailer sends daily reports through the SendGrid v3 mail API.
// SSOT: outbound mail goes through this client only.
type Mailer struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	apiKey     string
	baseURL    string
	sender     string
	recipient  string
}

// NewMailer creates a SendGrid mailer from configuration.
func NewMailer(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Mailer {
	return &Mailer{
		httpClient: httpClient,
		logger:     log,
		apiKey:     cfg.SendGrid.APIKey,
		baseURL:    cfg.SendGrid.BaseURL,
		sender:     cfg.MailSender,
		recipient:  cfg.MailRecipient,
	}
}

// Enabled reports whether the mailer has everything it needs to send.
func (m *Mailer) Enabled() bool {
	return m.apiKey != "" && m.sender != "" && m.recipient != ""
}

// sendGridPayload is the SendGrid v3 /mail/send request shape.
type sendGridPayload struct {
	Personalizations []struct {
		To []mailAddress `json:"to"`
	} `json:"personalizations"`
	From    mailAddress `json:"from"`
	Subject string      `json:"subject"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

type mailAddress struct {
	Email string `json:"email"`
}

// Send delivers one mail with a plain-text part and an HTML part.
// SendGrid requires the text/plain part first.
func (m *Mailer) Send(ctx context.Context, subject, plainBody, htmlBody string) error {
	if !m.Enabled() {
		return fmt.Errorf("mailer not configured: missing api key, sender or recipient")
	}

	payload := sendGridPayload{
		From:    mailAddress{Email: m.sender},
		Subject: subject,
	}
	payload.Personalizations = []struct {
		To []mailAddress `json:"to"`
	}{
		{To: []mailAddress{{Email: m.recipient}}},
	}
	payload.Content = []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{
		{Type: "text/plain", Value: plainBody},
		{Type: "text/html", Value: htmlBody},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		m.baseURL+"/mail/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail request failed: %w", err)
	}
	defer resp.Body.Close()

	// SendGrid answers 202 Accepted on success.
	if resp.StatusCode != http.StatusAccepted {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sendgrid: unexpected status %d: %s", resp.StatusCode, string(detail))
	}

	m.logger.WithFields(map[string]interface{}{
		"subject":   subject,
		"recipient": m.recipient,
	}).Info("Report mail sent")

	return nil
}
