package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const telegramAPI = "https://api.telegram.org"

// Telegram sends messages through the Bot API sendMessage method.
type Telegram struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

// NewTelegram returns nil when no bot token is configured.
func NewTelegram(token string) *Telegram {
	if token == "" {
		return nil
	}
	return &Telegram{
		BaseURL: telegramAPI,
		Token:   token,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type telegramPayload struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// Send delivers text to the chat identified by destination.
func (t *Telegram) Send(ctx context.Context, destination, text string) error {
	if t == nil || t.Token == "" {
		return errors.New("telegram disabled")
	}
	if destination == "" {
		return errors.New("telegram: empty chat id")
	}
	body, err := json.Marshal(telegramPayload{ChatID: destination, Text: text})
	if err != nil {
		return fmt.Errorf("marshal telegram payload: %w", err)
	}
	endpoint := strings.TrimRight(t.BaseURL, "/") + "/bot" + t.Token + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		// url.Error embeds the request URL, which carries the token
		var ue *url.Error
		if errors.As(err, &ue) {
			return fmt.Errorf("telegram sendMessage: %w", ue.Err)
		}
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("telegram non-2xx: %d", resp.StatusCode)
	}
	return nil
}
