package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const apiURL = "https://api.telegram.org"

// HTTPClient реализует Client через HTTP API Telegram.
type HTTPClient struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient создаёт нового HTTP клиента Telegram по переданному токену
func NewHTTPClient(token string) *HTTPClient {
	return newHTTPClient(token, apiURL, &http.Client{})
}

func newHTTPClient(token, baseURL string, httpClient *http.Client) *HTTPClient {
	return &HTTPClient{
		token:      token,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// SendMessage отправляет сообщение text в чат chatID.
// Возвращает указатель на структуру Message в случае успеха.
func (c *HTTPClient) SendMessage(
	ctx context.Context,
	chatID int64,
	text string,
	opts *SendOptions,
) (*Message, error) {
	params := map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	}
	applySendOptions(params, opts)

	ctx, cancelFunc := context.WithTimeout(ctx, timeoutSend)
	defer cancelFunc()

	rawResp, err := c.doRequest(ctx, "sendMessage", params)
	if err != nil {
		return nil, err
	}

	var message Message
	if err = json.Unmarshal(rawResp, &message); err != nil {
		return nil, fmt.Errorf("failed to decode sendMessage result: %w", err)
	}

	return &message, nil
}

// SendPoll отправляет квиз-опрос в чат chatID.
// Идентификатор опроса находится в Message.Poll.ID.
func (c *HTTPClient) SendPoll(ctx context.Context, chatID int64, poll PollOptions) (*Message, error) {
	options := make([]map[string]string, 0, len(poll.Options))
	for _, option := range poll.Options {
		options = append(options, map[string]string{"text": option})
	}

	params := map[string]interface{}{
		"chat_id":           chatID,
		"question":          poll.Question,
		"options":           options,
		"type":              "quiz",
		"correct_option_id": poll.CorrectOptionID,
		"is_anonymous":      poll.IsAnonymous,
	}
	if poll.ReplyToMessageID != 0 {
		params["reply_to_message_id"] = poll.ReplyToMessageID
	}

	ctx, cancelFunc := context.WithTimeout(ctx, timeoutSend)
	defer cancelFunc()

	rawResp, err := c.doRequest(ctx, "sendPoll", params)
	if err != nil {
		return nil, err
	}

	var message Message
	if err = json.Unmarshal(rawResp, &message); err != nil {
		return nil, fmt.Errorf("failed to decode sendPoll result: %w", err)
	}

	if message.Poll == nil {
		return nil, fmt.Errorf("sendPoll result has no poll")
	}

	return &message, nil
}

// EditMessage изменяет сообщение messageID на text в чате chatID.
// Возвращает nil в случае успеха.
func (c *HTTPClient) EditMessage(
	ctx context.Context,
	chatID int64,
	messageID int,
	text string,
	opts *SendOptions,
) error {
	params := map[string]interface{}{
		"chat_id":    chatID,
		"text":       text,
		"message_id": messageID,
	}
	applySendOptions(params, opts)

	ctx, cancelFunc := context.WithTimeout(ctx, timeoutSend)
	defer cancelFunc()

	_, err := c.doRequest(ctx, "editMessageText", params)
	return err
}

// AnswerCallback отвечает уведомлением в верхней части экрана чата (см. документацию
// telegram api) на callback query с идентификатором callbackID.
// Возращает nil в случае успеха.
func (c *HTTPClient) AnswerCallback(ctx context.Context, callbackID string, text string) error {
	params := map[string]interface{}{
		"callback_query_id": callbackID,
	}
	if text != "" {
		params["text"] = text
	}

	ctx, cancelFunc := context.WithTimeout(ctx, timeoutSend)
	defer cancelFunc()

	_, err := c.doRequest(ctx, "answerCallbackQuery", params)
	return err
}

// GetUpdates получает обновления.
// Если новых обновлений нет, ждёт до timeout секунд.
// Возвращает слайс Update.
// Для продолжения обработки нужно передать offset = lastUpdateID + 1.
func (c *HTTPClient) GetUpdates(ctx context.Context, offset int, timeout int) ([]Update, error) {
	params := map[string]interface{}{
		"offset":          offset,
		"timeout":         timeout,
		"allowed_updates": AllowedUpdates,
	}

	ctx, cancelFunc := context.WithTimeout(ctx, time.Duration(timeout)*time.Second+pollingGrace)
	defer cancelFunc()

	rawResp, err := c.doRequest(ctx, "getUpdates", params)
	if err != nil {
		return nil, err
	}

	var updates []Update
	if err = json.Unmarshal(rawResp, &updates); err != nil {
		return nil, fmt.Errorf("failed to decode updates: %w", err)
	}

	return updates, nil
}

func applySendOptions(params map[string]interface{}, opts *SendOptions) {
	if opts == nil {
		return
	}

	if opts.ParseMode != "" {
		params["parse_mode"] = opts.ParseMode
	}

	if opts.ReplyMarkup != nil {
		params["reply_markup"] = opts.ReplyMarkup
	}

	if opts.ReplyToMessageID != 0 {
		params["reply_to_message_id"] = opts.ReplyToMessageID
	}
}

// doRequest выполняет запрос к Telegram API.
// Возвращает результат запроса в случае успеха.
func (c *HTTPClient) doRequest(
	ctx context.Context,
	method string,
	params map[string]interface{},
) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)

	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s params: %w", method, err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(request)
	if err != nil {
		// url содержит токен, поэтому в ошибку попадает только имя метода
		return nil, fmt.Errorf("failed to call %s: %w", method, unwrapURLError(err))
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body in %s: %w", method, err)
	}

	var result struct {
		OK        bool            `json:"ok"`
		Result    json.RawMessage `json:"result"`
		ErrorCode int             `json:"error_code"`
		Error     string          `json:"description"`
	}

	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("unexpected response for %s (status %d): %w", method, resp.StatusCode, err)
	}

	if !result.OK {
		return nil, fmt.Errorf("client api error in %s: %d %s", method, result.ErrorCode, result.Error)
	}

	return result.Result, nil
}

// unwrapURLError убирает из ошибки адрес запроса вместе с токеном бота.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
