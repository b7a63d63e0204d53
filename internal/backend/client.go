package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/skill-connector/internal/logger"
	"github.com/ignatzorin/skill-connector/internal/metrics"
	"github.com/ignatzorin/skill-connector/internal/pkg/apperror"
)

// maxErrorBody ограничивает чтение тела ошибки.
const maxErrorBody = 64 << 10

// Client — типизированный клиент REST API маркетплейса.
// Повторов и backoff нет: ошибка сразу возвращается вызывающему.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент с таймаутом на каждый запрос.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 32,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// NewClientWithHTTP создаёт клиент поверх готового http.Client (тесты, кастомный транспорт).
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// BaseURL возвращает адрес бэкенда.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request описывает один вызов бэкенда.
type request struct {
	method string
	path   string
	// endpoint — шаблон пути для метрик, без идентификаторов.
	endpoint string
	token    string
	body     any
}

// do выполняет запрос и декодирует JSON ответа в out (если out != nil).
func (c *Client) do(ctx context.Context, r request, out any) error {
	var payload io.Reader
	if r.body != nil {
		raw, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("backend: не удалось сериализовать тело %s: %w", r.endpoint, err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, payload)
	if err != nil {
		return fmt.Errorf("backend: не удалось собрать запрос %s: %w", r.endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	log := logger.WithComponent("backend").WithFields(logrus.Fields{
		"method":   r.method,
		"endpoint": r.endpoint,
	})

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(r.method, r.endpoint).Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(r.method, r.endpoint, "error").Inc()
		if ctxErr := ctx.Err(); ctxErr != nil {
			log.WithError(err).Debug("запрос отменён")
			return apperror.Wrap(ctxErr, apperror.ErrCodeUpstreamUnavailable, apperror.ErrBackendUnavailable.Message)
		}
		log.WithError(err).Warn("бэкенд недоступен")
		return apperror.Wrap(err, apperror.ErrCodeUpstreamUnavailable, apperror.ErrBackendUnavailable.Message)
	}
	defer resp.Body.Close()

	metrics.BackendRequestsTotal.WithLabelValues(r.method, r.endpoint, statusClass(resp.StatusCode)).Inc()
	log = log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(started).String(),
	})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		appErr := decodeError(resp)
		log.WithField("code", appErr.Code).Warn("бэкенд вернул ошибку")
		return appErr
	}
	log.Debug("запрос к бэкенду выполнен")

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperror.Wrap(
			fmt.Errorf("backend: некорректный JSON от %s: %w", r.endpoint, err),
			apperror.ErrCodeUpstream,
			"сервис вернул некорректный ответ",
		)
	}

	return nil
}

func (c *Client) get(ctx context.Context, path, endpoint, token string, out any) error {
	return c.do(ctx, request{method: http.MethodGet, path: path, endpoint: endpoint, token: token}, out)
}

func (c *Client) post(ctx context.Context, path, endpoint, token string, body, out any) error {
	return c.do(ctx, request{method: http.MethodPost, path: path, endpoint: endpoint, token: token, body: body}, out)
}

func (c *Client) put(ctx context.Context, path, endpoint, token string, body, out any) error {
	return c.do(ctx, request{method: http.MethodPut, path: path, endpoint: endpoint, token: token, body: body}, out)
}

func (c *Client) delete(ctx context.Context, path, endpoint, token string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: path, endpoint: endpoint, token: token}, nil)
}

func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}
