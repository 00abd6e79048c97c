package moderating

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-monitor-api/infrastructure/integrator/oceanengine"
	"github.com/vfg2006/ad-monitor-api/infrastructure/repository"
	"github.com/vfg2006/ad-monitor-api/internal/config"
	"github.com/vfg2006/ad-monitor-api/internal/domain"
)

// Summary é o resultado de um ciclo de moderação.
type Summary struct {
	Advertisers     int
	SkippedNoAccess int
	Upserted        int
	AlreadyActioned int
	HideSuccess     int
	HideFailed      int
}

// Moderator sincroniza comentários da plataforma e oculta os negativos
// ainda visíveis. Um comentário com desfecho gravado nunca é reacionado,
// mesmo que a plataforma volte a reportá-lo como visível.
type Moderator interface {
	SyncAndHide() (*Summary, error)
}

type moderationService struct {
	cfg            *config.Config
	oe             oceanengine.Integrator
	advertiserRepo repository.AdvertiserRepository
	commentRepo    repository.CommentRepository
	actionRepo     repository.CommentActionRepository

	now func() time.Time
}

func NewService(
	cfg *config.Config,
	oe oceanengine.Integrator,
	advertiserRepo repository.AdvertiserRepository,
	commentRepo repository.CommentRepository,
	actionRepo repository.CommentActionRepository,
) Moderator {
	return &moderationService{
		cfg:            cfg,
		oe:             oe,
		advertiserRepo: advertiserRepo,
		commentRepo:    commentRepo,
		actionRepo:     actionRepo,
		now:            time.Now,
	}
}

// SyncAndHide processa cada anunciante isoladamente: falha em um não
// derruba o ciclo, e conta sem permissão é pulada sem erro.
func (s *moderationService) SyncAndHide() (*Summary, error) {
	advertiserIDs, err := s.advertiserRepo.ListIDs()
	if err != nil {
		return nil, fmt.Errorf("erro ao listar anunciantes: %w", err)
	}

	now := s.now().In(s.cfg.Location)
	endDate := now
	startDate := now.AddDate(0, 0, -s.cfg.CommentSync.LookbackDays)

	summary := &Summary{}

	for _, advertiserID := range advertiserIDs {
		comments, toHide, err := s.fetchComments(advertiserID, startDate, endDate, now)
		if err != nil {
			var apiErr *oceanengine.APIError
			if errors.As(err, &apiErr) && apiErr.IsNoPermission() {
				summary.SkippedNoAccess++
				logrus.Warnf("Conta sem permissão pulada advertiser_id=%d request_id=%s", advertiserID, apiErr.RequestID)
				continue
			}
			return summary, err
		}

		if err := s.commentRepo.SaveOrUpdate(comments); err != nil {
			return summary, fmt.Errorf("erro ao gravar comentários do anunciante %d: %w", advertiserID, err)
		}
		summary.Upserted += len(comments)

		if err := s.hideComments(advertiserID, toHide, now, summary); err != nil {
			return summary, err
		}

		summary.Advertisers++
	}

	logrus.Infof("Moderação concluída anunciantes=%d upsert=%d hide_ok=%d hide_fail=%d ja_acionados=%d sem_permissao=%d",
		summary.Advertisers, summary.Upserted, summary.HideSuccess, summary.HideFailed,
		summary.AlreadyActioned, summary.SkippedNoAccess)

	return summary, nil
}

// fetchComments pagina o comment/get do anunciante dentro da janela,
// respeitando o teto de profundidade da API.
func (s *moderationService) fetchComments(advertiserID int64, startDate, endDate, now time.Time) ([]*domain.Comment, []int64, error) {
	pageSize := s.cfg.CommentSync.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	maxPages := oceanengine.MaxPageDepth / pageSize
	if maxPages < 1 {
		maxPages = 1
	}

	comments := make([]*domain.Comment, 0)
	toHide := make([]int64, 0)

	for page := 1; page <= maxPages; page++ {
		result, err := s.oe.ListComments(oceanengine.ListCommentsParams{
			AdvertiserID: advertiserID,
			StartDate:    startDate,
			EndDate:      endDate,
			HideStatus:   "NOT_HIDE",
			Page:         page,
			PageSize:     pageSize,
		})
		if err != nil {
			return nil, nil, err
		}

		for _, item := range result.Comments {
			if item.CommentID == 0 {
				continue
			}

			comment := commentFromItem(advertiserID, item, now, s.cfg.Location)
			comments = append(comments, comment)

			if comment.IsNegativeVisible() {
				toHide = append(toHide, comment.CommentID)
			}
		}

		if len(result.Comments) < pageSize {
			break
		}
	}

	return comments, toHide, nil
}

// hideComments oculta os negativos em lotes do tamanho aceito pela API,
// descontando antes os comentários que já têm desfecho gravado. O
// resultado da plataforma é parcial e cada desfecho é gravado write-once.
func (s *moderationService) hideComments(advertiserID int64, toHide []int64, now time.Time, summary *Summary) error {
	if len(toHide) == 0 {
		return nil
	}

	toHide = dedupSorted(toHide)

	actioned, err := s.actionRepo.ActionedCommentIDs(advertiserID, domain.ActionHide, toHide)
	if err != nil {
		return fmt.Errorf("erro ao consultar ações existentes do anunciante %d: %w", advertiserID, err)
	}

	pending := make([]int64, 0, len(toHide))
	for _, commentID := range toHide {
		if _, ok := actioned[commentID]; ok {
			summary.AlreadyActioned++
			continue
		}
		pending = append(pending, commentID)
	}

	for start := 0; start < len(pending); start += oceanengine.MaxHideBatch {
		end := start + oceanengine.MaxHideBatch
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[start:end]

		result, err := s.oe.HideComments(advertiserID, batch)
		if err != nil {
			// Falha do lote inteiro: grava o desfecho failed de cada um e
			// segue para o próximo lote.
			message := err.Error()
			for _, commentID := range batch {
				s.recordAction(advertiserID, commentID, domain.ActionStatusFailed, now, nil, &message, nil)
			}
			summary.HideFailed += len(batch)
			logrus.Warnf("Falha ao ocultar lote advertiser_id=%d lote=%d err=%v", advertiserID, len(batch), err)
			continue
		}

		successSet := make(map[int64]struct{}, len(result.SuccessCommentIDs))
		for _, commentID := range result.SuccessCommentIDs {
			successSet[commentID] = struct{}{}
		}

		for _, commentID := range batch {
			if _, ok := successSet[commentID]; ok {
				s.recordAction(advertiserID, commentID, domain.ActionStatusSuccess, now, &result.RequestID, nil, result.Raw)
				summary.HideSuccess++
				continue
			}

			message := "hide failed"
			s.recordAction(advertiserID, commentID, domain.ActionStatusFailed, now, &result.RequestID, &message, result.Raw)
			summary.HideFailed++
		}

		if len(result.SuccessCommentIDs) > 0 {
			if err := s.commentRepo.MarkHidden(advertiserID, result.SuccessCommentIDs); err != nil {
				return fmt.Errorf("erro ao carimbar comentários ocultados do anunciante %d: %w", advertiserID, err)
			}
		}
	}

	return nil
}

// recordAction grava o desfecho de uma ação; a colisão write-once é um
// no-op esperado e erros aqui não interrompem o ciclo.
func (s *moderationService) recordAction(
	advertiserID, commentID int64,
	status domain.ActionStatus,
	now time.Time,
	requestID, errorMessage *string,
	raw json.RawMessage,
) {
	action := &domain.CommentAction{
		AdvertiserID: advertiserID,
		CommentID:    commentID,
		Action:       domain.ActionHide,
		ActionTime:   now,
		Status:       status,
		RequestID:    requestID,
		ErrorMessage: errorMessage,
		Raw:          raw,
	}

	if _, err := s.actionRepo.Insert(action); err != nil {
		logrus.Warnf("Falha ao gravar desfecho advertiser_id=%d comment_id=%d status=%s: %v",
			advertiserID, commentID, status, err)
	}
}

func commentFromItem(advertiserID int64, item *oceanengine.CommentItem, now time.Time, loc *time.Location) *domain.Comment {
	return &domain.Comment{
		AdvertiserID: advertiserID,
		CommentID:    item.CommentID,
		CommentTime:  item.ParsedCreateTime(loc),
		Text:         item.Body(),
		EmotionType:  item.EmotionType,
		HideStatus:   item.HideStatus,
		LevelType:    item.LevelType,
		IsReplied:    item.IsReplied,
		ReplyCount:   item.ReplyCount,
		LikeCount:    item.LikeCount,
		UserID:       item.UserID,
		UserName:     item.UserName,
		AwemeID:      item.AwemeID,
		AwemeName:    item.AwemeName,
		AdID:         item.AdID,
		AdName:       item.AdName,
		CreativeID:   item.CreativeID,
		ItemID:       item.ItemID,
		ItemTitle:    item.ItemTitle,
		Raw:          item.Raw,
		FirstSeenAt:  now,
		LastSeenAt:   now,
	}
}

func dedupSorted(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
