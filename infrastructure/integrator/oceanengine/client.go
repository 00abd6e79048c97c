package oceanengine

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-monitor-api/internal/config"
)

const apiV3Path = "/open_api/v3.0"

// MaxHideBatch é o limite de IDs por chamada de ocultação imposto pela API.
const MaxHideBatch = 20

// MaxPageDepth é o teto de page * page_size aceito pelo comment/get.
const MaxPageDepth = 10000

type Integrator interface {
	ListComments(params ListCommentsParams) (*CommentPage, error)
	HideComments(advertiserID int64, commentIDs []int64) (*HideResult, error)
}

type oceanEngineService struct {
	httpClient  *resty.Client
	accessToken string
	maxRetries  int
}

func New(cfg *config.Config) Integrator {
	client := resty.New().
		SetBaseURL(cfg.OceanEngine.BaseURL).
		SetTimeout(time.Duration(cfg.OceanEngine.TimeoutSeconds) * time.Second).
		SetHeader("Accept", "application/json")

	return &oceanEngineService{
		httpClient:  client,
		accessToken: cfg.OceanEngine.AccessToken,
		maxRetries:  cfg.OceanEngine.MaxRetries,
	}
}

// ListComments consulta GET /tools/comment/get/ com paginação explícita.
// A profundidade page * page_size é limitada pela API; o chamador controla
// o corte.
func (s *oceanEngineService) ListComments(params ListCommentsParams) (*CommentPage, error) {
	if params.Page*params.PageSize > MaxPageDepth {
		return nil, fmt.Errorf("profundidade de página excede o limite da API: page=%d page_size=%d", params.Page, params.PageSize)
	}

	hideStatus := params.HideStatus
	if hideStatus == "" {
		hideStatus = "NOT_HIDE"
	}

	queryParams := map[string]string{
		"advertiser_id": fmt.Sprintf("%d", params.AdvertiserID),
		"start_time":    params.StartDate.Format(time.DateOnly),
		"end_time":      params.EndDate.Format(time.DateOnly),
		"order_field":   "CREATE_TIME",
		"order_type":    "DESC",
		"hide_status":   hideStatus,
		"page":          fmt.Sprintf("%d", params.Page),
		"page_size":     fmt.Sprintf("%d", params.PageSize),
	}

	resp, err := s.requestWithRetry("qc_comment_get", func() (*resty.Response, error) {
		return s.httpClient.R().
			SetHeader("Access-Token", s.accessToken).
			SetQueryParams(queryParams).
			Get(apiV3Path + "/tools/comment/get/")
	})
	if err != nil {
		return nil, err
	}

	var data struct {
		CommentList []json.RawMessage `json:"comment_list"`
	}
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			return nil, fmt.Errorf("erro ao decodificar a lista de comentários: %w", err)
		}
	}

	page := &CommentPage{
		Comments:  make([]*CommentItem, 0, len(data.CommentList)),
		RequestID: resp.RequestID,
	}
	for _, raw := range data.CommentList {
		item := &CommentItem{}
		if err := json.Unmarshal(raw, item); err != nil {
			logrus.Warnf("Comentário ignorado por payload inválido: %v", err)
			continue
		}
		item.Raw = raw
		page.Comments = append(page.Comments, item)
	}

	return page, nil
}

// HideComments executa POST /tools/comment/hide/ para um lote de até
// MaxHideBatch IDs. O resultado é parcial: somente success_comment_ids
// foram de fato ocultados.
func (s *oceanEngineService) HideComments(advertiserID int64, commentIDs []int64) (*HideResult, error) {
	if len(commentIDs) == 0 {
		return &HideResult{}, nil
	}
	if len(commentIDs) > MaxHideBatch {
		return nil, fmt.Errorf("lote de ocultação excede o limite da API: %d > %d", len(commentIDs), MaxHideBatch)
	}

	payload := map[string]interface{}{
		"advertiser_id": advertiserID,
		"comment_ids":   commentIDs,
	}

	resp, err := s.requestWithRetry("qc_comment_hide", func() (*resty.Response, error) {
		return s.httpClient.R().
			SetHeader("Access-Token", s.accessToken).
			SetHeader("Content-Type", "application/json").
			SetBody(payload).
			Post(apiV3Path + "/tools/comment/hide/")
	})
	if err != nil {
		return nil, err
	}

	var data struct {
		SuccessCommentIDs []int64 `json:"success_comment_ids"`
	}
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			return nil, fmt.Errorf("erro ao decodificar o resultado de ocultação: %w", err)
		}
	}

	rawResp, _ := json.Marshal(resp)

	return &HideResult{
		SuccessCommentIDs: data.SuccessCommentIDs,
		RequestID:         resp.RequestID,
		Raw:               rawResp,
	}, nil
}

// requestWithRetry executa a chamada com retry em códigos transientes da
// plataforma, com backoff exponencial e jitter limitado a 60s.
func (s *oceanEngineService) requestWithRetry(apiName string, call func() (*resty.Response, error)) (*envelope, error) {
	maxAttempts := s.maxRetries
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := call()
		if err != nil {
			lastErr = errors.Wrapf(err, "[%s] erro ao executar a requisição", apiName)
			if attempt < maxAttempts {
				s.sleepBackoff(apiName, attempt, maxAttempts, lastErr)
				continue
			}
			break
		}

		env := &envelope{}
		if err := json.Unmarshal(resp.Body(), env); err != nil {
			lastErr = fmt.Errorf("[%s] resposta não-JSON status=%d: %w", apiName, resp.StatusCode(), err)
			if attempt < maxAttempts {
				s.sleepBackoff(apiName, attempt, maxAttempts, lastErr)
				continue
			}
			break
		}

		code, _ := env.Code.Int64()
		if code == 0 {
			return env, nil
		}

		apiErr := &APIError{
			API:       apiName,
			Code:      int(code),
			Message:   env.Message,
			RequestID: env.RequestID,
		}

		if isRetryableCode(int(code)) && attempt < maxAttempts {
			lastErr = apiErr
			s.sleepBackoff(apiName, attempt, maxAttempts, apiErr)
			continue
		}

		return nil, apiErr
	}

	return nil, lastErr
}

func (s *oceanEngineService) sleepBackoff(apiName string, attempt, maxAttempts int, cause error) {
	sleep := 0.6*math.Pow(2, float64(attempt-1)) + rand.Float64()*0.8
	if sleep > 60 {
		sleep = 60
	}

	logrus.Warnf("Requisição falhou, aguardando retry api=%s attempt=%d/%d sleep=%.1fs err=%v",
		apiName, attempt, maxAttempts, sleep, cause)

	time.Sleep(time.Duration(sleep * float64(time.Second)))
}

func isRetryableCode(code int) bool {
	switch code {
	case CodeRateLimited, CodeSystemBusy, CodeInternalError:
		return true
	}
	return false
}
