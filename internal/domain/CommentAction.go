package domain

import (
	"encoding/json"
	"time"
)

// Tipos de ação executadas contra a plataforma.
const (
	ActionHide = "hide"
)

// ActionStatus é o desfecho de uma ação: sucesso ou falha, sempre gravado.
type ActionStatus string

const (
	ActionStatusSuccess ActionStatus = "success"
	ActionStatusFailed  ActionStatus = "failed"
)

// CommentAction é o registro de desfecho de uma ação, chaveado por
// (anunciante, comentário, ação). No máximo um desfecho de "hide" por
// comentário, para sempre: um comentário já acionado nunca é reacionado.
// NotifiedAt começa nulo e é marcado uma única vez, de forma atômica para
// o lote inteiro, somente após entrega confirmada.
type CommentAction struct {
	AdvertiserID int64
	CommentID    int64
	Action       string
	ActionTime   time.Time
	Status       ActionStatus
	RequestID    *string
	ErrorCode    *int
	ErrorMessage *string
	NotifiedAt   *time.Time
	Raw          json.RawMessage
}

// CommentActionKey identifica uma ação para marcação de notificação.
type CommentActionKey struct {
	AdvertiserID int64
	CommentID    int64
}

// HiddenCommentReport é a linha desnormalizada usada no rollup de
// notificação (junta ação, comentário e nome do anunciante).
type HiddenCommentReport struct {
	AdvertiserID   int64
	AdvertiserName string
	CommentID      int64
	ActionTime     time.Time
	CommentText    string
	EmotionType    *string
	AwemeName      *string
	AdName         *string
}
