package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	_ "github.com/lib/pq"
	"github.com/vfg2006/ad-monitor-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-monitor-api/internal/domain"
)

const commentActionsTable = "comment_actions ca"

type CommentActionRepository interface {
	Insert(action *domain.CommentAction) (bool, error)
	ActionedCommentIDs(advertiserID int64, action string, commentIDs []int64) (map[int64]struct{}, error)
	ListUnnotified(window time.Duration) ([]*domain.HiddenCommentReport, error)
	MarkNotified(keys []domain.CommentActionKey) error
	CountUnnotified() (int, error)
}

type commentActionRepository struct {
	conn postgres.Queryer
}

func NewCommentActionRepository(conn postgres.Queryer) CommentActionRepository {
	return &commentActionRepository{
		conn: conn,
	}
}

// Insert grava o desfecho de uma ação. A linha é write-once: conflitar com
// (advertiser_id, comment_id, action) é um no-op e devolve false, o que
// preserva o primeiro desfecho para sempre.
func (r *commentActionRepository) Insert(action *domain.CommentAction) (bool, error) {
	sqlQuery, args, err := squirrel.StatementBuilder.
		Insert("comment_actions").
		Columns(
			"advertiser_id", "comment_id", "action", "action_ts",
			"status", "request_id", "error_code", "error_message", "raw",
		).
		Values(
			action.AdvertiserID,
			action.CommentID,
			action.Action,
			action.ActionTime,
			action.Status,
			action.RequestID,
			action.ErrorCode,
			action.ErrorMessage,
			[]byte(action.Raw),
		).
		Suffix("ON CONFLICT (advertiser_id, comment_id, action) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return false, fmt.Errorf("erro de banco: %w (code: %s)", pqErr, pqErr.Code)
		}
		return false, fmt.Errorf("erro ao executar a query: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// ActionedCommentIDs devolve, dentre os IDs informados, os comentários que
// já possuem desfecho gravado para a ação. O chamador usa o conjunto como
// pré-filtro para nunca reacionar um comentário.
func (r *commentActionRepository) ActionedCommentIDs(advertiserID int64, action string, commentIDs []int64) (map[int64]struct{}, error) {
	if len(commentIDs) == 0 {
		return map[int64]struct{}{}, nil
	}

	sqlQuery, args, err := squirrel.
		Select("ca.comment_id").
		From(commentActionsTable).
		Where(squirrel.Eq{"ca.advertiser_id": advertiserID, "ca.action": action}).
		Where(squirrel.Expr("ca.comment_id = ANY(?)", pq.Array(commentIDs))).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(sqlQuery, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return map[int64]struct{}{}, nil
		}
		return nil, err
	}
	defer rows.Close()

	actioned := make(map[int64]struct{})
	for rows.Next() {
		var commentID int64
		if err := rows.Scan(&commentID); err != nil {
			return nil, err
		}
		actioned[commentID] = struct{}{}
	}

	return actioned, rows.Err()
}

// ListUnnotified devolve as ocultações bem-sucedidas ainda não notificadas
// dentro da janela, já juntadas com comentário e anunciante para o rollup.
func (r *commentActionRepository) ListUnnotified(window time.Duration) ([]*domain.HiddenCommentReport, error) {
	sqlQuery, args, err := squirrel.
		Select(`ca.advertiser_id, COALESCE(adv.name, ''), ca.comment_id, ca.action_ts,
			COALESCE(c.text, ''), c.emotion_type, c.aweme_name, c.ad_name`).
		From(commentActionsTable).
		LeftJoin("comments c ON c.advertiser_id = ca.advertiser_id AND c.comment_id = ca.comment_id").
		LeftJoin("advertisers adv ON adv.advertiser_id = ca.advertiser_id").
		Where(squirrel.Eq{"ca.action": domain.ActionHide, "ca.status": domain.ActionStatusSuccess}).
		Where("ca.notified_at IS NULL").
		Where(squirrel.Expr("ca.action_ts >= NOW() - (? * interval '1 second')", int64(window.Seconds()))).
		OrderBy("ca.action_ts ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(sqlQuery, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	reports := make([]*domain.HiddenCommentReport, 0)
	for rows.Next() {
		report := &domain.HiddenCommentReport{}
		if err := rows.Scan(
			&report.AdvertiserID,
			&report.AdvertiserName,
			&report.CommentID,
			&report.ActionTime,
			&report.CommentText,
			&report.EmotionType,
			&report.AwemeName,
			&report.AdName,
		); err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

// MarkNotified carimba notified_at do lote inteiro em um único statement,
// somente após entrega confirmada. Entrega e marcação nunca são parciais:
// ou o lote inteiro é carimbado, ou nada é.
func (r *commentActionRepository) MarkNotified(keys []domain.CommentActionKey) error {
	if len(keys) == 0 {
		return nil
	}

	pairs := make([]string, 0, len(keys))
	args := make([]interface{}, 0, len(keys)*2)
	for i, key := range keys {
		pairs = append(pairs, fmt.Sprintf("($%d::bigint, $%d::bigint)", i*2+1, i*2+2))
		args = append(args, key.AdvertiserID, key.CommentID)
	}

	sqlQuery := fmt.Sprintf(`
		UPDATE comment_actions SET notified_at = NOW()
		FROM (VALUES %s) AS batch(advertiser_id, comment_id)
		WHERE comment_actions.advertiser_id = batch.advertiser_id
			AND comment_actions.comment_id = batch.comment_id
			AND comment_actions.action = '%s'
			AND comment_actions.notified_at IS NULL
	`, strings.Join(pairs, ", "), domain.ActionHide)

	if _, err := r.conn.Exec(sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// CountUnnotified conta o backlog de ocultações bem-sucedidas ainda não
// notificadas. Alimenta o healthcheck.
func (r *commentActionRepository) CountUnnotified() (int, error) {
	sqlQuery, args, err := squirrel.
		Select("COUNT(*)").
		From(commentActionsTable).
		Where(squirrel.Eq{"ca.action": domain.ActionHide, "ca.status": domain.ActionStatusSuccess}).
		Where("ca.notified_at IS NULL").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var total int
	if err := r.conn.QueryRow(sqlQuery, args...).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}
