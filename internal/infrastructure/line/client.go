// Package line pushes notifications through the LINE Messaging API.
package line

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/itops-inc/itdesk/internal/application/notification"
	"github.com/itops-inc/itdesk/internal/shared/config"
	"github.com/itops-inc/itdesk/internal/shared/i18n"
)

const (
	pushPath = "/v2/bot/message/push"
	// LINE rejects text messages above 5000 characters.
	maxTextRunes = 5000
)

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type pushRequest struct {
	To       string        `json:"to"`
	Messages []textMessage `json:"messages"`
}

type Client struct {
	baseURL       string
	token         string
	targets       []string
	lang          i18n.Lang
	httpClient    *http.Client
	retryAttempts int
	newBackOff    func() backoff.BackOff
}

func NewClient(cfg config.LineConfig, targets []string, lang i18n.Lang) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &Client{
		baseURL:       strings.TrimRight(cfg.APIBaseURL, "/"),
		token:         cfg.ChannelAccessToken,
		targets:       targets,
		lang:          lang,
		httpClient:    &http.Client{Timeout: timeout},
		retryAttempts: attempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = time.Second
			b.MaxInterval = 10 * time.Second
			return b
		},
	}
}

func (c *Client) Name() string {
	return "line"
}

// Notify pushes the rendered message to every configured target. Message
// recipients are email addresses and are ignored here.
func (c *Client) Notify(ctx context.Context, msg notification.Message) error {
	if len(c.targets) == 0 {
		return nil
	}
	subject, body := notification.Render(c.lang, msg)
	text := truncateRunes(subject+"\n\n"+body, maxTextRunes)

	var errs []error
	for _, to := range c.targets {
		if err := c.push(ctx, to, text); err != nil {
			errs = append(errs, fmt.Errorf("target %s: %w", to, err))
		}
	}
	return errors.Join(errs...)
}

func (c *Client) push(ctx context.Context, to, text string) error {
	payload, err := json.Marshal(pushRequest{
		To:       to,
		Messages: []textMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	op := func() (struct{}, error) { return struct{}{}, c.send(ctx, payload) }
	_, err = backoff.Retry(ctx, op,
		backoff.WithBackOff(c.newBackOff()),
		backoff.WithMaxTries(uint(c.retryAttempts)),
	)
	if err != nil {
		return fmt.Errorf("push failed (max %d attempts): %w", c.retryAttempts, err)
	}
	return nil
}

// send marks failures that are not worth retrying as permanent: transport
// errors, 429 and 5xx are retried, other 4xx are not.
func (c *Client) send(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+pushPath, bytes.NewReader(payload))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	err = fmt.Errorf("line push returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return err
	}
	return backoff.Permanent(err)
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
