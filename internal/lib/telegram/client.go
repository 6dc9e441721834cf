// Package telegram реализует минимальный клиент Bot API для отправки
// уведомлений в канал: только sendMessage и sendPhoto.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultAPIURL = "https://api.telegram.org"

// Client отправляет сообщения от имени бота в заданный чат.
type Client struct {
	token      string
	chatID     string
	apiURL     string
	httpClient *http.Client
}

// InlineKeyboardButton — кнопка со ссылкой под сообщением.
type InlineKeyboardButton struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// ReplyMarkup — клавиатура, прикрепляемая к сообщению.
type ReplyMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

// New создает клиент Bot API для указанного бота и чата.
func New(token, chatID string) *Client {
	return &Client{
		token:      token,
		chatID:     chatID,
		apiURL:     defaultAPIURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWithAPIURL создает клиент с нестандартным адресом Bot API.
// Используется в тестах для подмены сервера.
func NewWithAPIURL(token, chatID, apiURL string) *Client {
	c := New(token, chatID)
	c.apiURL = apiURL
	return c
}

// SendMessage отправляет HTML-сообщение, опционально с клавиатурой.
func (c *Client) SendMessage(ctx context.Context, text string, markup *ReplyMarkup) error {
	const op = "telegram.SendMessage"
	payload := map[string]any{
		"chat_id":    c.chatID,
		"text":       text,
		"parse_mode": "HTML",
	}
	if markup != nil {
		payload["reply_markup"] = markup
	}
	if err := c.call(ctx, "sendMessage", payload); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SendPhoto отправляет фото по URL.
func (c *Client) SendPhoto(ctx context.Context, photoURL string) error {
	const op = "telegram.SendPhoto"
	payload := map[string]any{
		"chat_id": c.chatID,
		"photo":   photoURL,
	}
	if err := c.call(ctx, "sendPhoto", payload); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Client) call(ctx context.Context, method string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.apiURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram api status %d: %s", resp.StatusCode, data)
	}
	return nil
}
