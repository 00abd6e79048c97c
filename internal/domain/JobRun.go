package domain

import "time"

// JobRunStatus é o estado de uma invocação física de job.
type JobRunStatus string

const (
	JobRunStatusRunning JobRunStatus = "running"
	JobRunStatusSuccess JobRunStatus = "success"
	JobRunStatusFail    JobRunStatus = "fail"
)

// JobRun é um registro do ledger de execuções, chaveado por (job_name,
// run_id). O run_id é gerado pelo chamador e único por invocação, então
// invocações concorrentes do mesmo job nunca colidem. Um registro preso em
// running além da janela esperada é uma anomalia visível ao operador.
type JobRun struct {
	JobName    string
	RunID      string
	Status     JobRunStatus
	StartedAt  time.Time
	FinishedAt *time.Time
	ExitCode   *int
	Message    *string
}
