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

const balanceSnapshotsTable = "balance_snapshots bs"

// uniqueViolation é o código SQLSTATE do Postgres para violação de
// constraint de unicidade.
const uniqueViolation = pq.ErrorCode("23505")

type BalanceSnapshotRepository interface {
	Append(snapshot *domain.BalanceSnapshot) error
	LatestPerAdvertiser() ([]*domain.BalanceReading, error)
	LatestSnapshotTime() (*time.Time, error)
}

type balanceSnapshotRepository struct {
	conn postgres.Queryer
}

func NewBalanceSnapshotRepository(conn postgres.Queryer) BalanceSnapshotRepository {
	return &balanceSnapshotRepository{
		conn: conn,
	}
}

// Append grava um fato de saldo. A tabela é append-only: colidir com um
// período já gravado devolve domain.ErrPeriodoDuplicado e nunca sobrescreve.
func (r *balanceSnapshotRepository) Append(snapshot *domain.BalanceSnapshot) error {
	sqlQuery, args, err := squirrel.StatementBuilder.
		Insert("balance_snapshots").
		Columns(
			"advertiser_id", "snapshot_ts",
			"account_total", "account_valid", "account_frozen",
			"general_total", "general_valid", "general_frozen",
			"bidding_total", "bidding_valid", "bidding_frozen",
			"raw",
		).
		Values(
			snapshot.AdvertiserID,
			snapshot.SnapshotTime,
			snapshot.Account.Total, snapshot.Account.Valid, snapshot.Account.Frozen,
			snapshot.General.Total, snapshot.General.Valid, snapshot.General.Frozen,
			snapshot.Bidding.Total, snapshot.Bidding.Valid, snapshot.Bidding.Frozen,
			[]byte(snapshot.Raw),
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == uniqueViolation {
				return domain.ErrPeriodoDuplicado
			}
			return fmt.Errorf("erro de banco: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// LatestPerAdvertiser devolve a leitura de saldo mais recente de cada
// anunciante, na granularidade que o avaliador de regras consome.
func (r *balanceSnapshotRepository) LatestPerAdvertiser() ([]*domain.BalanceReading, error) {
	sqlQuery, args, err := squirrel.
		Select("bs.advertiser_id, bs.snapshot_ts, bs.account_valid").
		Options("DISTINCT ON (bs.advertiser_id)").
		From(balanceSnapshotsTable).
		OrderBy("bs.advertiser_id ASC", "bs.snapshot_ts DESC").
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

	readings := make([]*domain.BalanceReading, 0)
	for rows.Next() {
		reading := &domain.BalanceReading{}
		if err := rows.Scan(&reading.AdvertiserID, &reading.SnapshotTime, &reading.Valid); err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}

	return readings, rows.Err()
}

// LatestSnapshotTime devolve o instante do snapshot mais recente gravado,
// ou nil quando a tabela está vazia. Alimenta o healthcheck de atraso.
func (r *balanceSnapshotRepository) LatestSnapshotTime() (*time.Time, error) {
	sqlQuery, args, err := squirrel.
		Select("MAX(bs.snapshot_ts)").
		From(balanceSnapshotsTable).
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
