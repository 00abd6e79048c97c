package runlog

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-monitor-api/infrastructure/repository"
	"github.com/vfg2006/ad-monitor-api/internal/domain"
	"github.com/vfg2006/ad-monitor-api/pkg/utils"
)

// ExitError associa um código de saída ao erro de negócio de um job.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Recorder envolve a execução de um job com o ledger de invocações: abre
// um registro running antes e fecha com success/fail depois. As escritas
// no ledger são melhor-esforço e nunca mascaram o desfecho de negócio.
type Recorder interface {
	Run(jobName string, fn func() error) error
}

type recorderService struct {
	jobRunRepository repository.JobRunRepository

	now func() time.Time
}

func NewRecorder(jobRunRepo repository.JobRunRepository) Recorder {
	return &recorderService{
		jobRunRepository: jobRunRepo,
		now:              time.Now,
	}
}

func (s *recorderService) Run(jobName string, fn func() error) error {
	startedAt := s.now()

	runID, err := utils.GenerateRunID(startedAt)
	if err != nil {
		// Sem run_id não há registro no ledger, mas o job ainda roda.
		logrus.Warnf("Falha ao gerar run_id para o job %s: %v", jobName, err)
		return fn()
	}

	run := &domain.JobRun{
		JobName:   jobName,
		RunID:     runID,
		Status:    domain.JobRunStatusRunning,
		StartedAt: startedAt,
	}
	if err := s.jobRunRepository.Begin(run); err != nil {
		logrus.Warnf("Falha ao abrir registro no ledger job=%s run_id=%s: %v", jobName, runID, err)
	}

	businessErr := fn()

	status := domain.JobRunStatusSuccess
	exitCode := 0
	message := ""

	if businessErr != nil {
		status = domain.JobRunStatusFail
		exitCode = 1
		message = businessErr.Error()

		var exitErr *ExitError
		if errors.As(businessErr, &exitErr) {
			exitCode = exitErr.Code
		}
	}

	if err := s.jobRunRepository.Finish(jobName, runID, status, exitCode, message); err != nil {
		logrus.Warnf("Falha ao fechar registro no ledger job=%s run_id=%s: %v", jobName, runID, err)
	}

	return businessErr
}
