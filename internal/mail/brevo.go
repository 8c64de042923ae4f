package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	maxAttempts    = 3
	attemptTimeout = 10 * time.Second
)

// Client talks to the Brevo transactional-email REST API. Both emails of a
// contact submission go through Send; the caller decides what a failure
// means for the request.
type Client struct {
	baseURL     string
	apiKey      string
	senderName  string
	senderEmail string
	httpClient  *http.Client
}

func NewClient(baseURL, apiKey, senderName, senderEmail string) *Client {
	return &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		apiKey:      apiKey,
		senderName:  senderName,
		senderEmail: senderEmail,
		httpClient: &http.Client{
			Timeout: attemptTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendRequest struct {
	Sender      address   `json:"sender"`
	To          []address `json:"to"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"htmlContent"`
	TextContent string    `json:"textContent"`
	ReplyTo     *address  `json:"replyTo,omitempty"`
}

type sendResponse struct {
	MessageID string `json:"messageId"`
}

// Send delivers one email, retrying up to three times with a linearly
// increasing pause between attempts. Returns the provider's message id.
func (c *Client) Send(ctx context.Context, to, subject, html string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("mail: Brevo API key not configured")
	}
	if to == "" || subject == "" || html == "" {
		return "", fmt.Errorf("mail: invalid email parameters")
	}

	payload := sendRequest{
		Sender:      address{Email: c.senderEmail, Name: c.senderName},
		To:          []address{{Email: strings.ToLower(strings.TrimSpace(to)), Name: nameFromEmail(to)}},
		Subject:     subject,
		HTMLContent: html,
		TextContent: PlainText(html),
		ReplyTo:     &address{Email: c.senderEmail, Name: c.senderName},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("mail: marshal payload: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		id, err := c.attempt(ctx, body)
		if err == nil {
			return id, nil
		}
		lastErr = err

		// Unauthorized or rejected payloads will not get better on retry.
		var pe *PermanentError
		if errors.As(err, &pe) {
			return "", err
		}

		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}
	}

	return "", fmt.Errorf("mail: giving up after %d attempts: %w", maxAttempts, lastErr)
}

func (c *Client) attempt(ctx context.Context, body []byte) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.baseURL+"/v3/smtp/email", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("mail: create request: %w", err)
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("mail: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", &PermanentError{Msg: "mail: Brevo API key rejected"}
	}
	if resp.StatusCode == http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", &PermanentError{Msg: fmt.Sprintf("mail: invalid email parameters: %s", detail)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("mail: Brevo returned status %d", resp.StatusCode)
	}

	var result sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("mail: decode response: %w", err)
	}
	return result.MessageID, nil
}

type PermanentError struct{ Msg string }

func (e *PermanentError) Error() string { return e.Msg }

var (
	tagRe   = regexp.MustCompile(`<[^>]+>`)
	spaceRe = regexp.MustCompile(`\s+`)
)

// PlainText strips markup down to a text/plain alternative body.
func PlainText(html string) string {
	s := tagRe.ReplaceAllString(html, " ")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func nameFromEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return email
	}
	return email[:at]
}
