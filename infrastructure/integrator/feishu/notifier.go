package feishu

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/ad-monitor-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Notifier entrega mensagens de texto no webhook de bot customizado.
// O envio só é considerado confirmado com resposta 2xx e code/StatusCode
// zero no corpo; qualquer outra coisa é falha e nada deve ser marcado
// como notificado.
type Notifier interface {
	SendText(text string) error
}

type feishuService struct {
	httpClient *http.Client
	webhookURL string
	secret     string
	keyword    string

	// now é trocável em teste para assinar com timestamp fixo.
	now func() time.Time
}

func New(cfg *config.Config) Notifier {
	return &feishuService{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Feishu.TimeoutSeconds) * time.Second,
		},
		webhookURL: cfg.Feishu.WebhookURL,
		secret:     cfg.Feishu.Secret,
		keyword:    cfg.Feishu.Keyword,
		now:        time.Now,
	}
}

type textPayload struct {
	MsgType   string      `json:"msg_type"`
	Content   textContent `json:"content"`
	Timestamp string      `json:"timestamp,omitempty"`
	Sign      string      `json:"sign,omitempty"`
}

type textContent struct {
	Text string `json:"text"`
}

type webhookResponse struct {
	Code       *int   `json:"code"`
	StatusCode *int   `json:"StatusCode"`
	Msg        string `json:"msg"`
}

func (s *feishuService) SendText(text string) error {
	if s.webhookURL == "" {
		return fmt.Errorf("webhook do Feishu não configurado")
	}

	// O bot pode exigir uma palavra-chave no corpo da mensagem.
	if s.keyword != "" && !strings.Contains(text, s.keyword) {
		text = s.keyword + " " + text
	}

	payload := textPayload{
		MsgType: "text",
		Content: textContent{Text: text},
	}

	if s.secret != "" {
		timestamp := strconv.FormatInt(s.now().Unix(), 10)
		payload.Timestamp = timestamp
		payload.Sign = sign(s.secret, timestamp)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao serializar o payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "erro ao enviar para o webhook")
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("webhook respondeu HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed webhookResponse
	if err := json.Unmarshal(respBody, &parsed); err == nil {
		if parsed.Code != nil && *parsed.Code != 0 {
			return fmt.Errorf("webhook recusou a mensagem code=%d msg=%s", *parsed.Code, parsed.Msg)
		}
		if parsed.StatusCode != nil && *parsed.StatusCode != 0 {
			return fmt.Errorf("webhook recusou a mensagem StatusCode=%d", *parsed.StatusCode)
		}
	}

	return nil
}

// sign calcula a assinatura do bot customizado: HMAC-SHA256 sobre
// "{timestamp}\n{secret}", codificada em base64.
func sign(secret, timestamp string) string {
	stringToSign := timestamp + "\n" + secret

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(stringToSign))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
