// Package backend содержит HTTP-клиент к ресторанному API:
// каталог, витрина, оформление заказов и административные операции.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const defaultRequestTimeout = 10 * time.Second

// StatusError возвращается, когда бэкенд ответил не-2xx статусом.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.StatusCode, e.Body)
}

// Client — клиент ресторанного API. Все методы принимают контекст и
// возвращают доменные типы, DTO проводной формы наружу не выходят.
type Client struct {
	baseURL string
	apiKey  string
	hc      *http.Client
	logger  *log.Entry
}

// NewClient создаёт клиент. baseURL — корень API без завершающего слэша,
// apiKey подставляется в административные запросы.
func NewClient(baseURL, apiKey string, logger *log.Entry) *Client {
	if logger == nil {
		logger = log.New().WithField("component", "backend-client")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		hc:      &http.Client{Timeout: defaultRequestTimeout},
		logger:  logger,
	}
}

// doJSON выполняет запрос с JSON-телом (или без) и декодирует JSON-ответ
// в out. При не-2xx статусе возвращает *StatusError с прочитанным телом.
func (c *Client) doJSON(ctx context.Context, op, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
