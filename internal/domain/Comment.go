package domain

import (
	"encoding/json"
	"time"
)

// Classificações fornecidas pelo classificador da plataforma.
const (
	EmotionNegative = "NEGATIVE"

	HideStatusHidden    = "HIDE"
	HideStatusNotHidden = "NOT_HIDE"
)

// Comment é o fato de identidade/classificação de um comentário, chaveado
// por (anunciante, comment_id). Criado no primeiro avistamento; os campos
// mutáveis de classificação são atualizados a cada novo avistamento.
// HiddenAt é marcado exatamente uma vez, quando a primeira ação de
// ocultação bem-sucedida acontece.
type Comment struct {
	AdvertiserID int64
	CommentID    int64
	CommentTime  *time.Time
	Text         string
	EmotionType  *string
	HideStatus   *string
	LevelType    *string
	IsReplied    *bool
	ReplyCount   int
	LikeCount    int
	UserID       *string
	UserName     *string
	AwemeID      *string
	AwemeName    *string
	AdID         *string
	AdName       *string
	CreativeID   *string
	ItemID       *string
	ItemTitle    *string
	Raw          json.RawMessage
	FirstSeenAt  time.Time
	LastSeenAt   time.Time
	HiddenAt     *time.Time
}

// IsNegativeVisible responde se o comentário é candidato à ocultação
// automática: classificação negativa e ainda visível.
func (c *Comment) IsNegativeVisible() bool {
	if c.EmotionType == nil || *c.EmotionType != EmotionNegative {
		return false
	}
	return c.HideStatus == nil || *c.HideStatus != HideStatusHidden
}
