package rates

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/birrflow/birrflow/internal/config"
)

func TestBankFXProvider_FetchRates(t *testing.T) {
	t.Run("should pass the API key and return the provider payload", func(t *testing.T) {
		// given
		var gotKey string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotKey = r.URL.Query().Get("api_key")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"bank":"NBET","rates":{"USD":{"buying":140.65}}}`))
		}))
		defer server.Close()
		provider := NewBankFXProvider(config.Rates{URL: server.URL, APIKey: "secret"})

		// when
		payload, err := provider.FetchRates(context.Background())

		// then
		assert.NoError(t, err)
		assert.Equal(t, "secret", gotKey)
		assert.JSONEq(t, `{"bank":"NBET","rates":{"USD":{"buying":140.65}}}`, string(payload))
	})

	t.Run("should fail on a non-200 response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()
		provider := NewBankFXProvider(config.Rates{URL: server.URL})

		_, err := provider.FetchRates(context.Background())

		assert.Error(t, err)
	})

	t.Run("should reject malformed JSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>maintenance</html>"))
		}))
		defer server.Close()
		provider := NewBankFXProvider(config.Rates{URL: server.URL})

		_, err := provider.FetchRates(context.Background())

		assert.Error(t, err)
	})
}

func TestHandler_GetRates(t *testing.T) {
	t.Run("should proxy the payload through", func(t *testing.T) {
		handler := NewHandler(&StubProvider{Payload: json.RawMessage(`{"rates":{}}`)})
		recorder := httptest.NewRecorder()

		handler.GetRates(recorder, httptest.NewRequest(http.MethodGet, "/api/rates", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"rates":{}}`, recorder.Body.String())
	})

	t.Run("should answer bad gateway when the provider is down", func(t *testing.T) {
		handler := NewHandler(&StubProvider{Err: errors.New("provider down")})
		recorder := httptest.NewRecorder()

		handler.GetRates(recorder, httptest.NewRequest(http.MethodGet, "/api/rates", nil))

		assert.Equal(t, http.StatusBadGateway, recorder.Code)
	})
}
