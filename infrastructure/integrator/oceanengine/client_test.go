package oceanengine

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(url string, maxRetries int) *oceanEngineService {
	return &oceanEngineService{
		httpClient:  resty.New().SetBaseURL(url).SetTimeout(5 * time.Second),
		accessToken: "token-teste",
		maxRetries:  maxRetries,
	}
}

func TestOceanEngineService_ListComments(t *testing.T) {
	t.Run("decodifica a página e preserva o payload bruto", func(t *testing.T) {
		var gotQuery map[string]string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, apiV3Path+"/tools/comment/get/", r.URL.Path)
			assert.Equal(t, "token-teste", r.Header.Get("Access-Token"))

			gotQuery = map[string]string{
				"advertiser_id": r.URL.Query().Get("advertiser_id"),
				"hide_status":   r.URL.Query().Get("hide_status"),
				"page":          r.URL.Query().Get("page"),
			}

			_, _ = w.Write([]byte(`{
				"code": 0,
				"message": "OK",
				"request_id": "req-1",
				"data": {
					"comment_list": [
						{"comment_id": 9001, "text": "ruim demais", "emotion_type": "NEGATIVE"},
						{"comment_id": 9002, "content": "bom"}
					]
				}
			}`))
		}))
		defer server.Close()

		service := newTestService(server.URL, 1)

		page, err := service.ListComments(ListCommentsParams{
			AdvertiserID: 42,
			StartDate:    time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
			Page:         1,
			PageSize:     100,
		})
		require.NoError(t, err)

		assert.Equal(t, "42", gotQuery["advertiser_id"])
		assert.Equal(t, "NOT_HIDE", gotQuery["hide_status"])
		assert.Equal(t, "1", gotQuery["page"])

		require.Len(t, page.Comments, 2)
		assert.Equal(t, "req-1", page.RequestID)
		assert.Equal(t, int64(9001), page.Comments[0].CommentID)
		assert.Equal(t, "ruim demais", page.Comments[0].Body())
		assert.Equal(t, "bom", page.Comments[1].Body())
		assert.JSONEq(t, `{"comment_id": 9001, "text": "ruim demais", "emotion_type": "NEGATIVE"}`, string(page.Comments[0].Raw))
	})

	t.Run("recusa profundidade de página acima do limite", func(t *testing.T) {
		service := newTestService("http://unused", 1)

		_, err := service.ListComments(ListCommentsParams{Page: 101, PageSize: 100})
		require.Error(t, err)
	})

	t.Run("código sem permissão vira APIError sem retry", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			_, _ = w.Write([]byte(`{"code": 40002, "message": "no permission", "request_id": "req-2"}`))
		}))
		defer server.Close()

		service := newTestService(server.URL, 3)

		_, err := service.ListComments(ListCommentsParams{Page: 1, PageSize: 100})
		require.Error(t, err)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.True(t, apiErr.IsNoPermission())
		assert.Equal(t, 1, calls)
	})

	t.Run("código transiente é retentado até suceder", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls == 1 {
				_, _ = w.Write([]byte(`{"code": 40100, "message": "rate limited"}`))
				return
			}
			_, _ = w.Write([]byte(`{"code": 0, "data": {"comment_list": []}}`))
		}))
		defer server.Close()

		service := newTestService(server.URL, 2)

		page, err := service.ListComments(ListCommentsParams{Page: 1, PageSize: 100})
		require.NoError(t, err)
		assert.Empty(t, page.Comments)
		assert.Equal(t, 2, calls)
	})
}

func TestOceanEngineService_HideComments(t *testing.T) {
	t.Run("resultado parcial expõe apenas os IDs confirmados", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, apiV3Path+"/tools/comment/hide/", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)

			_, _ = w.Write([]byte(`{
				"code": 0,
				"request_id": "req-3",
				"data": {"success_comment_ids": [9001]}
			}`))
		}))
		defer server.Close()

		service := newTestService(server.URL, 1)

		result, err := service.HideComments(42, []int64{9001, 9002})
		require.NoError(t, err)

		assert.Equal(t, []int64{9001}, result.SuccessCommentIDs)
		assert.Equal(t, "req-3", result.RequestID)
	})

	t.Run("lote acima do limite é recusado sem chamada", func(t *testing.T) {
		service := newTestService("http://unused", 1)

		ids := make([]int64, MaxHideBatch+1)
		_, err := service.HideComments(42, ids)
		require.Error(t, err)
	})

	t.Run("lote vazio é no-op", func(t *testing.T) {
		service := newTestService("http://unused", 1)

		result, err := service.HideComments(42, nil)
		require.NoError(t, err)
		assert.Empty(t, result.SuccessCommentIDs)
	})
}
