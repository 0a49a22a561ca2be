package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/birrflow/birrflow/internal/config"
)

// Gateway initiates payments with the external mobile-money provider.
type Gateway interface {
	// InitiatePayment registers the transaction with the provider and
	// returns the URL the user completes the payment at.
	InitiatePayment(ctx context.Context, transactionId string, amount float64, billerName string) (string, error)
}

// TelebirrGateway talks to the telebirr merchant API.
type TelebirrGateway struct {
	baseURL    string
	merchantID string
	apiKey     string
	client     *http.Client
}

func NewTelebirrGateway(cfg config.Payment) *TelebirrGateway {
	return &TelebirrGateway{
		baseURL:    cfg.BaseURL,
		merchantID: cfg.MerchantID,
		apiKey:     cfg.APIKey,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

type initiateRequest struct {
	MerchantID    string  `json:"merchantId"`
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
	Subject       string  `json:"subject"`
}

type initiateResponse struct {
	PaymentURL string `json:"paymentUrl"`
	ErrorMsg   string `json:"errorMsg"`
}

func (g *TelebirrGateway) InitiatePayment(ctx context.Context, transactionId string, amount float64, billerName string) (string, error) {
	body, err := json.Marshal(initiateRequest{
		MerchantID:    g.merchantID,
		TransactionID: transactionId,
		Amount:        amount,
		Subject:       billerName,
	})
	if err != nil {
		return "", fmt.Errorf("could not encode payment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/payments", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("could not build payment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("payment gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	var parsed initiateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("could not decode gateway response: %w", err)
	}
	if parsed.PaymentURL == "" {
		return "", fmt.Errorf("payment rejected by gateway: %s", parsed.ErrorMsg)
	}
	return parsed.PaymentURL, nil
}

// StubGateway accepts every payment. Used in tests and local development.
type StubGateway struct {
	// Initiated records every transaction id passed in.
	Initiated []string
	// Err, when set, is returned for every initiation.
	Err error
}

func (g *StubGateway) InitiatePayment(ctx context.Context, transactionId string, amount float64, billerName string) (string, error) {
	if g.Err != nil {
		return "", g.Err
	}
	g.Initiated = append(g.Initiated, transactionId)
	return "https://pay.example.test/" + transactionId, nil
}
