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

const alertEventsTable = "alert_events ae"

const alertEventColumns = `ae.id, ae.alert_ts, ae.advertiser_id, COALESCE(adv.name, ''), ae.rule_id,
	ae.severity, ae.balance_valid, ae.baseline_spend, ae.threshold_multiplier, ae.ratio,
	ae.snapshot_ts, ae.period_bucket, ae.dedup_key, ae.status, ae.notified_at, ae.detail`

type AlertEventRepository interface {
	Insert(event *domain.AlertEvent) (bool, error)
	ListOpen(limit uint64) ([]*domain.AlertEvent, error)
	ListUnnotified(ruleID string, window time.Duration) ([]*domain.AlertEvent, error)
	MarkNotified(dedupKeys []string) error
	UpdateStatus(dedupKey string, status domain.AlertStatus) (bool, error)
	CountNotifiedSince(since time.Time) (map[int64]int, error)
}

type alertEventRepository struct {
	conn postgres.Queryer
}

func NewAlertEventRepository(conn postgres.Queryer) AlertEventRepository {
	return &alertEventRepository{
		conn: conn,
	}
}

// Insert grava um evento de alerta. O dedup_key carrega a unicidade: dentro
// de um period_bucket só o primeiro insert sobrevive. Devolve true quando a
// linha foi criada e false quando a chave já existia (no-op esperado).
func (r *alertEventRepository) Insert(event *domain.AlertEvent) (bool, error) {
	sqlQuery, args, err := squirrel.StatementBuilder.
		Insert("alert_events").
		Columns(
			"alert_ts", "advertiser_id", "rule_id", "severity",
			"balance_valid", "baseline_spend", "threshold_multiplier", "ratio",
			"snapshot_ts", "period_bucket", "dedup_key", "status", "detail",
		).
		Values(
			event.AlertTime,
			event.AdvertiserID,
			event.RuleID,
			event.Severity,
			event.BalanceValid,
			event.BaselineSpend,
			event.ThresholdMultiplier,
			event.Ratio,
			event.SnapshotTime,
			event.PeriodBucket,
			event.DedupKey,
			event.Status,
			[]byte(event.Detail),
		).
		Suffix("ON CONFLICT (dedup_key) DO NOTHING").
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

func (r *alertEventRepository) ListOpen(limit uint64) ([]*domain.AlertEvent, error) {
	queryBuilder := squirrel.
		Select(alertEventColumns).
		From(alertEventsTable).
		LeftJoin("advertisers adv ON adv.advertiser_id = ae.advertiser_id").
		Where(squirrel.Eq{"ae.status": domain.AlertStatusOpen}).
		OrderBy("ae.alert_ts DESC").
		PlaceholderFormat(squirrel.Dollar)

	if limit > 0 {
		queryBuilder = queryBuilder.Limit(limit)
	}

	return r.listEvents(queryBuilder)
}

// ListUnnotified devolve os alertas da regra ainda não notificados dentro
// da janela, do mais antigo para o mais novo, para o rollup de notificação.
// O filtro por regra mantém cada rollup dono dos próprios eventos.
func (r *alertEventRepository) ListUnnotified(ruleID string, window time.Duration) ([]*domain.AlertEvent, error) {
	queryBuilder := squirrel.
		Select(alertEventColumns).
		From(alertEventsTable).
		LeftJoin("advertisers adv ON adv.advertiser_id = ae.advertiser_id").
		Where(squirrel.Eq{"ae.rule_id": ruleID}).
		Where("ae.notified_at IS NULL").
		Where(squirrel.Expr("ae.alert_ts >= NOW() - (? * interval '1 second')", int64(window.Seconds()))).
		OrderBy("ae.alert_ts ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.listEvents(queryBuilder)
}

func (r *alertEventRepository) listEvents(queryBuilder squirrel.SelectBuilder) ([]*domain.AlertEvent, error) {
	sqlQuery, args, err := queryBuilder.ToSql()
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

	events := make([]*domain.AlertEvent, 0)
	for rows.Next() {
		event := &domain.AlertEvent{}
		var detail []byte

		if err := rows.Scan(
			&event.ID,
			&event.AlertTime,
			&event.AdvertiserID,
			&event.AdvertiserName,
			&event.RuleID,
			&event.Severity,
			&event.BalanceValid,
			&event.BaselineSpend,
			&event.ThresholdMultiplier,
			&event.Ratio,
			&event.SnapshotTime,
			&event.PeriodBucket,
			&event.DedupKey,
			&event.Status,
			&event.NotifiedAt,
			&detail,
		); err != nil {
			return nil, err
		}

		event.Detail = detail
		events = append(events, event)
	}

	return events, rows.Err()
}

// MarkNotified carimba notified_at do lote inteiro em um único statement,
// somente após entrega confirmada. Chamar de novo com as mesmas chaves é
// inócuo: o filtro notified_at IS NULL preserva o primeiro carimbo.
func (r *alertEventRepository) MarkNotified(dedupKeys []string) error {
	if len(dedupKeys) == 0 {
		return nil
	}

	sqlQuery, args, err := squirrel.StatementBuilder.
		Update("alert_events").
		Set("notified_at", squirrel.Expr("NOW()")).
		Where("notified_at IS NULL").
		Where(squirrel.Expr("dedup_key = ANY(?)", pq.Array(dedupKeys))).
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

// UpdateStatus transiciona o ciclo de vida de um alerta por ação de
// operador. Devolve false quando o dedup_key não existe.
func (r *alertEventRepository) UpdateStatus(dedupKey string, status domain.AlertStatus) (bool, error) {
	sqlQuery, args, err := squirrel.StatementBuilder.
		Update("alert_events").
		Set("status", status).
		Where(squirrel.Eq{"dedup_key": dedupKey}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao executar a query: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// CountNotifiedSince conta, por anunciante, quantos alertas já foram
// notificados desde o instante dado. Alimenta o teto diário de notificações.
func (r *alertEventRepository) CountNotifiedSince(since time.Time) (map[int64]int, error) {
	sqlQuery, args, err := squirrel.
		Select("ae.advertiser_id, COUNT(*)").
		From(alertEventsTable).
		Where(squirrel.GtOrEq{"ae.notified_at": since}).
		GroupBy("ae.advertiser_id").
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

	counts := make(map[int64]int)
	for rows.Next() {
		var (
			advertiserID int64
			total        int
		)
		if err := rows.Scan(&advertiserID, &total); err != nil {
			return nil, err
		}
		counts[advertiserID] = total
	}

	return counts, rows.Err()
}
