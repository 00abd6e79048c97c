package oceanengine

import (
	"encoding/json"
	"fmt"
	"time"
)

// Códigos de negócio retornados pela plataforma.
const (
	// Transientes: limitação de taxa e instabilidade, elegíveis a retry.
	CodeRateLimited   = 40100
	CodeSystemBusy    = 51010
	CodeInternalError = 50000

	// CodeNoPermission marca uma conta sem autorização para o endpoint;
	// o chamador pula a conta em vez de falhar o ciclo.
	CodeNoPermission = 40002
)

// APIError é o erro estruturado de uma resposta com code != 0.
type APIError struct {
	API       string
	Code      int
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] falha na API code=%d msg=%s request_id=%s", e.API, e.Code, e.Message, e.RequestID)
}

// IsNoPermission responde se o erro é falta de permissão da conta.
func (e *APIError) IsNoPermission() bool {
	return e.Code == CodeNoPermission
}

// envelope é o formato comum de resposta da plataforma.
type envelope struct {
	Code      json.Number     `json:"code"`
	Message   string          `json:"message"`
	RequestID string          `json:"request_id"`
	Data      json.RawMessage `json:"data"`
}

// CommentItem é o objeto de comentário como retornado pela API. Os campos
// não mapeados sobrevivem em Raw.
type CommentItem struct {
	CommentID   int64   `json:"comment_id"`
	CreateTime  string  `json:"create_time"`
	Text        string  `json:"text"`
	Content     string  `json:"content"`
	EmotionType *string `json:"emotion_type"`
	HideStatus  *string `json:"hide_status"`
	LevelType   *string `json:"level_type"`
	IsReplied   *bool   `json:"is_replied"`
	ReplyCount  int     `json:"reply_count"`
	LikeCount   int     `json:"like_count"`
	UserID      *string `json:"user_id"`
	UserName    *string `json:"user_name"`
	AwemeID     *string `json:"aweme_id"`
	AwemeName   *string `json:"aweme_name"`
	AdID        *string `json:"ad_id"`
	AdName      *string `json:"ad_name"`
	CreativeID  *string `json:"creative_id"`
	ItemID      *string `json:"item_id"`
	ItemTitle   *string `json:"item_title"`

	Raw json.RawMessage `json:"-"`
}

// Body devolve o texto do comentário (a API alterna entre text e content).
func (c *CommentItem) Body() string {
	if c.Text != "" {
		return c.Text
	}
	return c.Content
}

// ParsedCreateTime interpreta create_time no fuso da plataforma.
func (c *CommentItem) ParsedCreateTime(loc *time.Location) *time.Time {
	if c.CreateTime == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, c.CreateTime, loc); err == nil {
			return &t
		}
	}
	return nil
}

// ListCommentsParams parametriza GET /tools/comment/get/.
type ListCommentsParams struct {
	AdvertiserID int64
	StartDate    time.Time
	EndDate      time.Time
	HideStatus   string
	Page         int
	PageSize     int
}

// CommentPage é uma página de comentários.
type CommentPage struct {
	Comments  []*CommentItem
	RequestID string
}

// HideResult é o desfecho parcial de POST /tools/comment/hide/: a
// plataforma confirma item a item quais IDs foram de fato ocultados.
type HideResult struct {
	SuccessCommentIDs []int64
	RequestID         string
	Raw               json.RawMessage
}
