package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAPIClient_FetchRates(t *testing.T) {
	t.Run("successful fetch", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/USD", r.URL.Path)
			w.Write([]byte(`{"result":"success","base_code":"USD","rates":{"EUR":0.92,"XOF":602.5}}`))
		}))
		defer server.Close()

		client := NewAPIClient(server.URL, time.Second)
		rates, err := client.FetchRates(context.Background(), "USD")

		assert.NoError(t, err)
		assert.Equal(t, 602.5, rates["XOF"])
		assert.Equal(t, 0.92, rates["EUR"])
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewAPIClient(server.URL, time.Second)
		rates, err := client.FetchRates(context.Background(), "USD")

		assert.Error(t, err)
		assert.Nil(t, rates)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("empty rates rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"result":"success","base_code":"USD","rates":{}}`))
		}))
		defer server.Close()

		client := NewAPIClient(server.URL, time.Second)
		_, err := client.FetchRates(context.Background(), "USD")

		assert.Error(t, err)
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		client := NewAPIClient(server.URL, time.Second)
		_, err := client.FetchRates(context.Background(), "USD")

		assert.Error(t, err)
	})

	t.Run("unreachable server", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := NewAPIClient(server.URL, time.Second)
		_, err := client.FetchRates(context.Background(), "USD")

		assert.Error(t, err)
	})
}
