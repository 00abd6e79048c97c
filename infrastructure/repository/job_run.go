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

const jobRunsTable = "job_runs jr"

type JobRunRepository interface {
	Begin(run *domain.JobRun) error
	Finish(jobName, runID string, status domain.JobRunStatus, exitCode int, message string) error
	CountsSince(since time.Time) (map[string]map[domain.JobRunStatus]int, error)
	ListStuck(olderThan time.Duration) ([]*domain.JobRun, error)
}

type jobRunRepository struct {
	conn postgres.Queryer
}

func NewJobRunRepository(conn postgres.Queryer) JobRunRepository {
	return &jobRunRepository{
		conn: conn,
	}
}

// Begin abre um registro running no ledger de execuções. run_id é único por
// invocação, então o conflito só acontece em retry do próprio chamador e é
// ignorado.
func (r *jobRunRepository) Begin(run *domain.JobRun) error {
	sqlQuery, args, err := squirrel.StatementBuilder.
		Insert("job_runs").
		Columns("job_name", "run_id", "status", "started_at").
		Values(run.JobName, run.RunID, run.Status, run.StartedAt).
		Suffix("ON CONFLICT (job_name, run_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
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

// Finish fecha o registro com o desfecho da invocação.
func (r *jobRunRepository) Finish(jobName, runID string, status domain.JobRunStatus, exitCode int, message string) error {
	query := squirrel.StatementBuilder.
		Update("job_runs").
		Set("status", status).
		Set("finished_at", squirrel.Expr("NOW()")).
		Set("exit_code", exitCode).
		Where(squirrel.Eq{"job_name": jobName, "run_id": runID}).
		PlaceholderFormat(squirrel.Dollar)

	if message != "" {
		query = query.Set("message", message)
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// CountsSince agrega o ledger por job e status desde o instante dado.
// Alimenta o healthcheck das últimas 24h.
func (r *jobRunRepository) CountsSince(since time.Time) (map[string]map[domain.JobRunStatus]int, error) {
	sqlQuery, args, err := squirrel.
		Select("jr.job_name, jr.status, COUNT(*)").
		From(jobRunsTable).
		Where(squirrel.GtOrEq{"jr.started_at": since}).
		GroupBy("jr.job_name", "jr.status").
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

	counts := make(map[string]map[domain.JobRunStatus]int)
	for rows.Next() {
		var (
			jobName string
			status  domain.JobRunStatus
			total   int
		)
		if err := rows.Scan(&jobName, &status, &total); err != nil {
			return nil, err
		}

		if _, ok := counts[jobName]; !ok {
			counts[jobName] = make(map[domain.JobRunStatus]int)
		}
		counts[jobName][status] = total
	}

	return counts, rows.Err()
}

// ListStuck devolve registros presos em running além da janela esperada.
// Um registro preso é sempre anomalia: ou o processo morreu sem fechar o
// ledger, ou o job está travado.
func (r *jobRunRepository) ListStuck(olderThan time.Duration) ([]*domain.JobRun, error) {
	sqlQuery, args, err := squirrel.
		Select("jr.job_name, jr.run_id, jr.status, jr.started_at, jr.finished_at, jr.exit_code, jr.message").
		From(jobRunsTable).
		Where(squirrel.Eq{"jr.status": domain.JobRunStatusRunning}).
		Where(squirrel.Expr("jr.started_at < NOW() - (? * interval '1 second')", int64(olderThan.Seconds()))).
		OrderBy("jr.started_at ASC").
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

	runs := make([]*domain.JobRun, 0)
	for rows.Next() {
		run := &domain.JobRun{}
		if err := rows.Scan(
			&run.JobName,
			&run.RunID,
			&run.Status,
			&run.StartedAt,
			&run.FinishedAt,
			&run.ExitCode,
			&run.Message,
		); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
