package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/trackbot/internal/core/domain"
	"github.com/custodia-labs/trackbot/internal/core/ports/driven"
)

// DefaultAPIBaseURL is the public Bot API endpoint.
const DefaultAPIBaseURL = "https://api.telegram.org"

// requestTimeout covers send/edit calls. Long polling sets its own.
const requestTimeout = 30 * time.Second

// Ensure Client implements the interface.
var _ driven.Messenger = (*Client)(nil)

// Client is a minimal Telegram Bot API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	// pollClient has a timeout past the long-poll hold time.
	pollClient *http.Client
}

// NewClient creates a client. baseURL may be empty for the public API.
func NewClient(token, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: requestTimeout},
		pollClient: &http.Client{Timeout: (longPollTimeout + 10) * time.Second},
	}
}

// apiResponse is the Bot API envelope.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

// call performs one Bot API method call.
func (c *Client) call(ctx context.Context, method string, params, out any) error {
	return c.callWith(ctx, c.httpClient, method, params, out)
}

func (c *Client) callWith(ctx context.Context, httpClient *http.Client, method string, params, out any) error {
	payload, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decoding %s response: %w", method, err)
	}
	if !envelope.OK {
		return fmt.Errorf("%s: %s", method, envelope.Description)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Result, out); err != nil {
			return fmt.Errorf("decoding %s result: %w", method, err)
		}
	}
	return nil
}

// wireKeyboard maps a domain keyboard to reply_markup.
type wireKeyboard struct {
	InlineKeyboard [][]wireButton `json:"inline_keyboard"`
}

type wireButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data,omitempty"`
	URL          string `json:"url,omitempty"`
}

func mapKeyboard(kb *domain.InlineKeyboard) *wireKeyboard {
	if kb == nil {
		return nil
	}
	wire := &wireKeyboard{InlineKeyboard: make([][]wireButton, 0, len(kb.Rows))}
	for _, row := range kb.Rows {
		wireRow := make([]wireButton, 0, len(row))
		for _, btn := range row {
			wireRow = append(wireRow, wireButton{
				Text:         btn.Text,
				CallbackData: btn.CallbackData,
				URL:          btn.URL,
			})
		}
		wire.InlineKeyboard = append(wire.InlineKeyboard, wireRow)
	}
	return wire
}

// Send delivers a message and returns its address for later edits.
func (c *Client) Send(ctx context.Context, chat domain.ChatID, text string, kb *domain.InlineKeyboard) (domain.MessageRef, error) {
	params := struct {
		ChatID      int64         `json:"chat_id"`
		Text        string        `json:"text"`
		ParseMode   string        `json:"parse_mode"`
		ReplyMarkup *wireKeyboard `json:"reply_markup,omitempty"`
	}{
		ChatID:      int64(chat),
		Text:        text,
		ParseMode:   "Markdown",
		ReplyMarkup: mapKeyboard(kb),
	}
	var sent struct {
		MessageID int64 `json:"message_id"`
	}
	if err := c.call(ctx, "sendMessage", params, &sent); err != nil {
		return domain.MessageRef{}, err
	}
	return domain.MessageRef{Chat: chat, MessageID: sent.MessageID}, nil
}

// Edit replaces a sent message's text and keyboard in place.
func (c *Client) Edit(ctx context.Context, ref domain.MessageRef, text string, kb *domain.InlineKeyboard) error {
	params := struct {
		ChatID      int64         `json:"chat_id"`
		MessageID   int64         `json:"message_id"`
		Text        string        `json:"text"`
		ParseMode   string        `json:"parse_mode"`
		ReplyMarkup *wireKeyboard `json:"reply_markup,omitempty"`
	}{
		ChatID:      int64(ref.Chat),
		MessageID:   ref.MessageID,
		Text:        text,
		ParseMode:   "Markdown",
		ReplyMarkup: mapKeyboard(kb),
	}
	return c.call(ctx, "editMessageText", params, nil)
}

// ClearKeyboard removes a sent message's inline keyboard by editing the
// reply markup to an empty keyboard.
func (c *Client) ClearKeyboard(ctx context.Context, ref domain.MessageRef) error {
	params := struct {
		ChatID      int64        `json:"chat_id"`
		MessageID   int64        `json:"message_id"`
		ReplyMarkup wireKeyboard `json:"reply_markup"`
	}{
		ChatID:      int64(ref.Chat),
		MessageID:   ref.MessageID,
		ReplyMarkup: wireKeyboard{InlineKeyboard: [][]wireButton{}},
	}
	return c.call(ctx, "editMessageReplyMarkup", params, nil)
}

// AnswerCallback acknowledges a callback query so the client stops
// showing its progress spinner.
func (c *Client) AnswerCallback(ctx context.Context, callbackID string) error {
	params := struct {
		CallbackQueryID string `json:"callback_query_id"`
	}{CallbackQueryID: callbackID}
	return c.call(ctx, "answerCallbackQuery", params, nil)
}
