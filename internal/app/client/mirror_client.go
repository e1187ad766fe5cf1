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

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"licensekeeper/internal/app/client/config"
	"licensekeeper/internal/domain/license"
	"licensekeeper/internal/domain/mirror"
)

const maxErrorBody = 4 << 10

// MirrorClient реализует mirror.Remote поверх HTTP API зеркала
type MirrorClient struct {
	client     *http.Client
	log        *slog.Logger
	baseURL    string
	token      string
	adminToken string
	userAgent  string
}

var _ mirror.Remote = (*MirrorClient)(nil)

func NewMirrorClient(cfg *config.Config, log *slog.Logger) *MirrorClient {
	client := &http.Client{
		Timeout: cfg.MirrorTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 2,
		},
	}

	return &MirrorClient{
		client:     client,
		log:        log.With("component", "mirror_client"),
		baseURL:    cfg.MirrorURL(),
		token:      cfg.MirrorToken,
		adminToken: cfg.AdminToken,
		userAgent:  "LicenseKeeper-Client/1.0",
	}
}

// HealthCheck проверяет доступность зеркала
func (m *MirrorClient) HealthCheck(ctx context.Context) error {
	resp, err := m.doRequest(ctx, http.MethodGet, "/api/v1/health", nil)
	if err != nil {
		return err
	}
	return m.parseResponse(resp, nil)
}

// Lookup получает лицензию по ключу
func (m *MirrorClient) Lookup(ctx context.Context, key string) (*mirror.Entry, error) {
	resp, err := m.doRequest(ctx, http.MethodGet, licensePath(key), nil)
	if err != nil {
		return nil, err
	}

	var entry mirror.Entry
	if err := m.parseResponse(resp, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// SavePreferences перезаписывает настройки аккаунта целиком
func (m *MirrorClient) SavePreferences(ctx context.Context, key string, prefs mirror.Preferences) error {
	resp, err := m.doRequest(ctx, http.MethodPut, licensePath(key)+"/preferences", prefs)
	if err != nil {
		return err
	}
	return m.parseResponse(resp, nil)
}

// Upsert отправляет статус лицензии на зеркало
func (m *MirrorClient) Upsert(ctx context.Context, update mirror.StatusUpdate) error {
	resp, err := m.send(ctx, http.MethodPut, licensePath(update.LicenseKey), m.upsertToken(), update)
	if err != nil {
		return err
	}
	return m.parseResponse(resp, nil)
}

func licensePath(key string) string {
	return "/api/v1/licenses/" + url.PathEscape(license.NormalizeKey(key))
}

// upsertToken возвращает токен администратора, а без него общий токен
func (m *MirrorClient) upsertToken() string {
	if m.adminToken != "" {
		return m.adminToken
	}
	return m.token
}

func (m *MirrorClient) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	return m.send(ctx, method, path, m.token, body)
}

func (m *MirrorClient) send(ctx context.Context, method, path, token string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, m.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", m.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	m.log.Debug("Отправка запроса", "method", method, "path", path, "request_id", requestID)

	resp, err := m.client.Do(req)
	if err != nil {
		// сеть, таймаут, отмена контекста: всё это временные сбои
		return nil, fmt.Errorf("%w: %w", mirror.ErrUnavailable, err)
	}
	return resp, nil
}

func (m *MirrorClient) parseResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		m.log.Debug("Получен ответ с ошибкой", "status", resp.StatusCode)
		return statusError(resp.StatusCode, body)
	}

	if result == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: ошибка парсинга ответа: %w", mirror.ErrUnavailable, err)
	}
	return nil
}

func statusError(status int, body []byte) error {
	detail := serverDetail(body)
	switch {
	case status == http.StatusNotFound:
		return mirror.ErrNotFound
	case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
		return fmt.Errorf("%w: статус %d", mirror.ErrUnavailable, status)
	case status == http.StatusUnprocessableEntity || status == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", mirror.ErrInvalidInput, detail)
	}
	return fmt.Errorf("ошибка сервера: статус %d: %s", status, detail)
}

// serverDetail достаёт текст ошибки из ответа huma (application/problem+json)
func serverDetail(body []byte) string {
	var problem struct {
		Detail string `json:"detail"`
		Title  string `json:"title"`
	}
	if err := json.Unmarshal(body, &problem); err != nil {
		return ""
	}
	if problem.Detail != "" {
		return problem.Detail
	}
	return problem.Title
}

// IsTransient сообщает, стоит ли повторить запрос
func IsTransient(err error) bool {
	return errors.Is(err, mirror.ErrUnavailable)
}
