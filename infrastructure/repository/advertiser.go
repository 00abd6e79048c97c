package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	_ "github.com/lib/pq"
	"github.com/vfg2006/ad-monitor-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-monitor-api/internal/domain"
)

const advertisersTable = "advertisers adv"

type AdvertiserRepository interface {
	SaveOrUpdate(advertisers []*domain.Advertiser) error
	ListIDs() ([]int64, error)
	GetNameMap(advertiserIDs []int64) (map[int64]string, error)
}

type advertiserRepository struct {
	conn postgres.Queryer
}

func NewAdvertiserRepository(conn postgres.Queryer) AdvertiserRepository {
	return &advertiserRepository{
		conn: conn,
	}
}

// SaveOrUpdate insere ou atualiza a dimensão de anunciantes em lote.
// first_seen_at nunca regride; os demais campos seguem o último avistamento.
func (r *advertiserRepository) SaveOrUpdate(advertisers []*domain.Advertiser) error {
	if len(advertisers) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("advertisers").
		Columns("advertiser_id", "name", "company", "first_industry", "second_industry", "status", "first_seen_at", "last_seen_at").
		PlaceholderFormat(squirrel.Dollar)

	for _, adv := range advertisers {
		query = query.Values(
			adv.ID,
			adv.Name,
			adv.Company,
			adv.FirstIndustry,
			adv.SecondIndustry,
			adv.Status,
			adv.FirstSeenAt,
			adv.LastSeenAt,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (advertiser_id) DO UPDATE SET
			name = EXCLUDED.name,
			company = COALESCE(EXCLUDED.company, advertisers.company),
			first_industry = COALESCE(EXCLUDED.first_industry, advertisers.first_industry),
			second_industry = COALESCE(EXCLUDED.second_industry, advertisers.second_industry),
			status = EXCLUDED.status,
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

func (r *advertiserRepository) ListIDs() ([]int64, error) {
	sqlQuery, args, err := squirrel.
		Select("adv.advertiser_id").
		From(advertisersTable).
		OrderBy("adv.advertiser_id ASC").
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

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *advertiserRepository) GetNameMap(advertiserIDs []int64) (map[int64]string, error) {
	queryBuilder := squirrel.
		Select("adv.advertiser_id, adv.name").
		From(advertisersTable).
		PlaceholderFormat(squirrel.Dollar)

	if len(advertiserIDs) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"adv.advertiser_id": advertiserIDs})
	}

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

	names := make(map[int64]string)
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}

	return names, rows.Err()
}
