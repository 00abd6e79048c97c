package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	_ "github.com/lib/pq"
	"github.com/vfg2006/ad-monitor-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-monitor-api/internal/domain"
)

const commentsTable = "comments c"

type CommentRepository interface {
	SaveOrUpdate(comments []*domain.Comment) error
	MarkHidden(advertiserID int64, commentIDs []int64) error
	LatestSeenAt() (*time.Time, error)
}

type commentRepository struct {
	conn postgres.Queryer
}

func NewCommentRepository(conn postgres.Queryer) CommentRepository {
	return &commentRepository{
		conn: conn,
	}
}

// SaveOrUpdate insere ou atualiza comentários em lote. first_seen_at e
// hidden_at nunca regridem; os campos de classificação seguem o último
// avistamento, pois o classificador da plataforma revisa os rótulos.
func (r *commentRepository) SaveOrUpdate(comments []*domain.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("comments").
		Columns(
			"advertiser_id", "comment_id", "comment_ts", "text",
			"emotion_type", "hide_status", "level_type", "is_replied",
			"reply_count", "like_count",
			"user_id", "user_name", "aweme_id", "aweme_name",
			"ad_id", "ad_name", "creative_id", "item_id", "item_title",
			"raw", "first_seen_at", "last_seen_at",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, comment := range comments {
		query = query.Values(
			comment.AdvertiserID,
			comment.CommentID,
			comment.CommentTime,
			comment.Text,
			comment.EmotionType,
			comment.HideStatus,
			comment.LevelType,
			comment.IsReplied,
			comment.ReplyCount,
			comment.LikeCount,
			comment.UserID,
			comment.UserName,
			comment.AwemeID,
			comment.AwemeName,
			comment.AdID,
			comment.AdName,
			comment.CreativeID,
			comment.ItemID,
			comment.ItemTitle,
			[]byte(comment.Raw),
			comment.FirstSeenAt,
			comment.LastSeenAt,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (advertiser_id, comment_id) DO UPDATE SET
			text = EXCLUDED.text,
			emotion_type = COALESCE(EXCLUDED.emotion_type, comments.emotion_type),
			hide_status = COALESCE(EXCLUDED.hide_status, comments.hide_status),
			level_type = COALESCE(EXCLUDED.level_type, comments.level_type),
			is_replied = COALESCE(EXCLUDED.is_replied, comments.is_replied),
			reply_count = EXCLUDED.reply_count,
			like_count = EXCLUDED.like_count,
			raw = EXCLUDED.raw,
			last_seen_at = EXCLUDED.last_seen_at
	`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro de banco: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// MarkHidden carimba hidden_at e o status de ocultação dos comentários
// confirmados pela plataforma. O filtro hidden_at IS NULL garante que o
// primeiro carimbo nunca é sobrescrito.
func (r *commentRepository) MarkHidden(advertiserID int64, commentIDs []int64) error {
	if len(commentIDs) == 0 {
		return nil
	}

	sqlQuery, args, err := squirrel.StatementBuilder.
		Update("comments").
		Set("hide_status", domain.HideStatusHidden).
		Set("hidden_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"advertiser_id": advertiserID}).
		Where("hidden_at IS NULL").
		Where(squirrel.Expr("comment_id = ANY(?)", pq.Array(commentIDs))).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// LatestSeenAt devolve o último avistamento de comentário gravado, ou nil
// quando a tabela está vazia. Alimenta o healthcheck de atraso.
func (r *commentRepository) LatestSeenAt() (*time.Time, error) {
	sqlQuery, args, err := squirrel.
		Select("MAX(c.last_seen_at)").
		From(commentsTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var latest sql.NullTime
	if err := r.conn.QueryRow(sqlQuery, args...).Scan(&latest); err != nil {
		return nil, err
	}

	if !latest.Valid {
		return nil, nil
	}

	return &latest.Time, nil
}
