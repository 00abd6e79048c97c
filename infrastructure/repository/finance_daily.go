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

const financeDailyTable = "finance_daily fd"

type FinanceDailyRepository interface {
	SaveOrUpdate(record *domain.FinanceDailyRecord) error
	CostByDay(day time.Time) (map[int64]float64, error)
	CostBetween(start, end time.Time) (map[int64]float64, error)
}

type financeDailyRepository struct {
	conn postgres.Queryer
}

func NewFinanceDailyRepository(conn postgres.Queryer) FinanceDailyRepository {
	return &financeDailyRepository{
		conn: conn,
	}
}

// SaveOrUpdate grava o fato diário de consumo. A plataforma revisa os
// totais intradiários, então a última escrita do dia vence.
func (r *financeDailyRepository) SaveOrUpdate(record *domain.FinanceDailyRecord) error {
	query := squirrel.StatementBuilder.
		Insert("finance_daily").
		Columns(
			"advertiser_id", "date",
			"cost", "cash_cost", "grant_cost", "income",
			"transfer_in", "transfer_out",
			"cash_balance", "grant_balance", "total_balance",
			"raw",
		).
		Values(
			record.AdvertiserID,
			record.Date,
			record.Cost, record.CashCost, record.GrantCost, record.Income,
			record.TransferIn, record.TransferOut,
			record.CashBalance, record.GrantBalance, record.TotalBalance,
			[]byte(record.Raw),
		).
		PlaceholderFormat(squirrel.Dollar).
		Suffix(`
			ON CONFLICT (advertiser_id, date) DO UPDATE SET
				cost = EXCLUDED.cost,
				cash_cost = EXCLUDED.cash_cost,
				grant_cost = EXCLUDED.grant_cost,
				income = EXCLUDED.income,
				transfer_in = EXCLUDED.transfer_in,
				transfer_out = EXCLUDED.transfer_out,
				cash_balance = EXCLUDED.cash_balance,
				grant_balance = EXCLUDED.grant_balance,
				total_balance = EXCLUDED.total_balance,
				raw = EXCLUDED.raw
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

// CostByDay devolve o consumo registrado de cada anunciante no dia
// informado. Anunciantes sem registro simplesmente não aparecem no mapa.
func (r *financeDailyRepository) CostByDay(day time.Time) (map[int64]float64, error) {
	return r.costWhere(squirrel.Eq{"fd.date": day})
}

// CostBetween devolve o consumo somado de cada anunciante no intervalo
// [start, end], inclusivo nas duas pontas.
func (r *financeDailyRepository) CostBetween(start, end time.Time) (map[int64]float64, error) {
	return r.costWhere(squirrel.And{
		squirrel.GtOrEq{"fd.date": start},
		squirrel.LtOrEq{"fd.date": end},
	})
}

func (r *financeDailyRepository) costWhere(whereClause squirrel.Sqlizer) (map[int64]float64, error) {
	sqlQuery, args, err := squirrel.
		Select("fd.advertiser_id, COALESCE(SUM(fd.cost), 0)").
		From(financeDailyTable).
		Where(whereClause).
		GroupBy("fd.advertiser_id").
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

	costs := make(map[int64]float64)
	for rows.Next() {
		var (
			advertiserID int64
			cost         float64
		)
		if err := rows.Scan(&advertiserID, &cost); err != nil {
			return nil, err
		}
		costs[advertiserID] = cost
	}

	return costs, rows.Err()
}
