package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/sony/gobreaker"

	"golos/internal/i18n"
)

const (
	DefaultURL     = "https://fish-text.ru/get"
	DefaultType    = "paragraph"
	DefaultNumber  = 3
	DefaultTimeout = 5 * time.Second

	// maxBodySize ограничивает размер ответа сервиса.
	maxBodySize = 1 << 20
)

var errBadStatus = errors.New("API вернул ошибку")

// Config конфигурация провайдера текста.
type Config struct {
	URL     string
	Type    string
	Number  int
	Timeout time.Duration

	// BreakerFailures - число ошибок подряд, после которого сервис
	// не опрашивается в течение BreakerCooldown. 0 отключает защиту.
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

// DefaultConfig возвращает конфигурацию по умолчанию.
func DefaultConfig() Config {
	return Config{
		URL:             DefaultURL,
		Type:            DefaultType,
		Number:          DefaultNumber,
		Timeout:         DefaultTimeout,
		BreakerFailures: 3,
		BreakerCooldown: time.Minute,
	}
}

// apiResponse ответ сервиса генерации текста.
type apiResponse struct {
	Status    string `json:"status"`
	Text      string `json:"text"`
	ErrorCode int    `json:"errorCode,omitempty"`
}

// Provider получает текст из сети, а при ошибке генерирует его локально.
type Provider struct {
	cfg        Config
	store      *Store
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	local      func() string
}

// NewProvider создаёт провайдер, записывающий результат в store.
func NewProvider(cfg Config, store *Store) *Provider {
	defaults := DefaultConfig()
	if cfg.URL == "" {
		cfg.URL = defaults.URL
	}
	if cfg.Type == "" {
		cfg.Type = defaults.Type
	}
	if cfg.Number <= 0 {
		cfg.Number = defaults.Number
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaults.Timeout
	}

	p := &Provider{
		cfg:   cfg,
		store: store,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		local: LocalText,
	}

	if cfg.BreakerFailures > 0 {
		p.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "content",
			Timeout: cfg.BreakerCooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= cfg.BreakerFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Printf("Сервис текста: %s -> %s", from, to)
			},
		})
	}

	return p
}

// Generate получает новый текст и возвращает статус для озвучивания.
// Ошибки не возвращаются: при любой ошибке используется локальный текст.
func (p *Provider) Generate(ctx context.Context) string {
	text, err := p.fetch(ctx)
	if err != nil {
		log.Printf("Ошибка API: %v", err)
		p.store.Set(p.local())
		return i18n.T("status_created_local")
	}

	p.store.Set(text)
	return i18n.T("status_created")
}

func (p *Provider) fetch(ctx context.Context) (string, error) {
	if p.breaker == nil {
		return p.request(ctx)
	}

	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.request(ctx)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (p *Provider) request(ctx context.Context) (string, error) {
	params := url.Values{}
	params.Set("type", p.cfg.Type)
	params.Set("number", strconv.Itoa(p.cfg.Number))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.URL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP ошибка: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var result apiResponse
	if err := sonic.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if result.Status != "success" {
		return "", fmt.Errorf("%w: status=%q code=%d", errBadStatus, result.Status, result.ErrorCode)
	}

	return result.Text, nil
}
