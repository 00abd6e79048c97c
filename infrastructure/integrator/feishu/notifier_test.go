package feishu

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(url, secret, keyword string) *feishuService {
	return &feishuService{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		webhookURL: url,
		secret:     secret,
		keyword:    keyword,
		now:        func() time.Time { return time.Unix(1700000000, 0) },
	}
}

func TestFeishuService_SendText(t *testing.T) {
	t.Run("assina com o secret e inclui o timestamp", func(t *testing.T) {
		var received textPayload

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(body, &received))

			_, _ = w.Write([]byte(`{"code":0,"msg":"success"}`))
		}))
		defer server.Close()

		service := newTestService(server.URL, "segredo", "")

		err := service.SendText("olá")
		require.NoError(t, err)

		assert.Equal(t, "text", received.MsgType)
		assert.Equal(t, "olá", received.Content.Text)
		assert.Equal(t, "1700000000", received.Timestamp)

		mac := hmac.New(sha256.New, []byte("segredo"))
		mac.Write([]byte("1700000000\nsegredo"))
		expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
		assert.Equal(t, expected, received.Sign)
	})

	t.Run("prefixa a palavra-chave quando ausente", func(t *testing.T) {
		var received textPayload

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &received)
			_, _ = w.Write([]byte(`{"code":0}`))
		}))
		defer server.Close()

		service := newTestService(server.URL, "", "预警")

		require.NoError(t, service.SendText("saldo baixo"))
		assert.Equal(t, "预警 saldo baixo", received.Content.Text)

		require.NoError(t, service.SendText("【预警】saldo baixo"))
		assert.Equal(t, "【预警】saldo baixo", received.Content.Text)
	})

	t.Run("corpo com code diferente de zero é falha", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"code":19021,"msg":"sign match fail"}`))
		}))
		defer server.Close()

		service := newTestService(server.URL, "segredo", "")

		err := service.SendText("olá")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "19021")
	})

	t.Run("HTTP fora de 2xx é falha", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		service := newTestService(server.URL, "", "")

		err := service.SendText("olá")
		require.Error(t, err)
	})

	t.Run("webhook ausente é falha imediata", func(t *testing.T) {
		service := newTestService("", "", "")

		err := service.SendText("olá")
		require.Error(t, err)
	})
}
