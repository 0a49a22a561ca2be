package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/birrflow/birrflow/internal/config"
)

// Provider fetches current exchange rates from an external feed. The
// payload is passed through untouched so the frontend sees whatever the
// provider publishes.
type Provider interface {
	FetchRates(ctx context.Context) (json.RawMessage, error)
}

// BankFXProvider queries a bank FX aggregator, authenticating with an
// API key passed as a query parameter.
type BankFXProvider struct {
	url    string
	apiKey string
	client *http.Client
}

func NewBankFXProvider(cfg config.Rates) *BankFXProvider {
	return &BankFXProvider{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *BankFXProvider) FetchRates(ctx context.Context) (json.RawMessage, error) {
	url := p.url
	if p.apiKey != "" {
		url += "?api_key=" + p.apiKey
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		err := fmt.Errorf("could not build rates request: %w", err)
		log.Error(err)
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		err := fmt.Errorf("could not fetch exchange rates: %w", err)
		log.Error(err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("rates provider returned status %d", resp.StatusCode)
		log.Error(err)
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		err := fmt.Errorf("could not read rates response: %w", err)
		log.Error(err)
		return nil, err
	}
	if !json.Valid(body) {
		err := fmt.Errorf("rates provider returned malformed JSON")
		log.Error(err)
		return nil, err
	}
	return body, nil
}

// StubProvider serves a fixed payload in tests.
type StubProvider struct {
	Payload json.RawMessage
	Err     error
}

func (s *StubProvider) FetchRates(ctx context.Context) (json.RawMessage, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Payload, nil
}
