package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-monitor-api/infrastructure/repository"
	"github.com/vfg2006/ad-monitor-api/internal/config"
)

const (
	healthStatusOK   = "ok"
	healthStatusWarn = "warn"
	healthStatusCrit = "crit"

	snapshotWarnLag = 2 * time.Hour
	snapshotCritLag = 6 * time.Hour
	commentWarnLag  = 2 * time.Hour
	stuckRunAfter   = 30 * time.Minute
	jobWindow       = 24 * time.Hour
)

// HealthDependencies agrupa os repositórios consultados pelo healthcheck.
type HealthDependencies struct {
	Config            *config.Config
	BalanceRepo       repository.BalanceSnapshotRepository
	CommentRepo       repository.CommentRepository
	CommentActionRepo repository.CommentActionRepository
	JobRunRepo        repository.JobRunRepository
}

type healthCheck struct {
	Status     string `json:"status"`
	LagSeconds *int64 `json:"lag_seconds,omitempty"`
	Count      *int   `json:"count,omitempty"`
	Detail     string `json:"detail,omitempty"`
}

type healthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]healthCheck `json:"checks"`
	Jobs      map[string]any         `json:"jobs_24h,omitempty"`
}

// HealthcheckHandler responde com a saúde operacional do processo:
// atraso do último snapshot, atraso da varredura de comentários, backlog
// de rollup e execuções de job presas ou falhas nas últimas 24h.
func HealthcheckHandler(deps HealthDependencies) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{
			Status:    healthStatusOK,
			Timestamp: time.Now(),
			Checks:    make(map[string]healthCheck),
		}

		resp.addCheck("balance_snapshot", snapshotCheck(deps))
		resp.addCheck("comment_sync", commentCheck(deps))
		resp.addCheck("comment_notify_backlog", backlogCheck(deps))
		resp.addCheck("job_runs", stuckRunsCheck(deps))

		if counts, err := deps.JobRunRepo.CountsSince(time.Now().Add(-jobWindow)); err == nil {
			jobs := make(map[string]any, len(counts))
			for name, byStatus := range counts {
				jobs[name] = byStatus
			}
			resp.Jobs = jobs
		} else {
			logrus.WithError(err).Warn("Healthcheck não conseguiu ler o ledger de execuções")
		}

		w.Header().Set("Content-Type", "application/json")
		if resp.Status == healthStatusCrit {
			w.WriteHeader(http.StatusServiceUnavailable)
		}

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logrus.WithError(err).Warn("Erro ao responder o healthcheck")
		}
	})
}

// addCheck agrega o pior status entre os checks individuais.
func (r *healthResponse) addCheck(name string, check healthCheck) {
	r.Checks[name] = check

	switch check.Status {
	case healthStatusCrit:
		r.Status = healthStatusCrit
	case healthStatusWarn:
		if r.Status == healthStatusOK {
			r.Status = healthStatusWarn
		}
	}
}

func snapshotCheck(deps HealthDependencies) healthCheck {
	if !deps.Config.IngestionSync.Enabled {
		return healthCheck{Status: healthStatusOK, Detail: "ingestão desabilitada"}
	}

	latest, err := deps.BalanceRepo.LatestSnapshotTime()
	if err != nil {
		return healthCheck{Status: healthStatusCrit, Detail: err.Error()}
	}
	if latest == nil {
		return healthCheck{Status: healthStatusWarn, Detail: "nenhum snapshot gravado"}
	}

	lag := time.Since(*latest)
	lagSeconds := int64(lag.Seconds())

	status := healthStatusOK
	switch {
	case lag > snapshotCritLag:
		status = healthStatusCrit
	case lag > snapshotWarnLag:
		status = healthStatusWarn
	}

	return healthCheck{Status: status, LagSeconds: &lagSeconds}
}

func commentCheck(deps HealthDependencies) healthCheck {
	if !deps.Config.CommentSync.Enabled {
		return healthCheck{Status: healthStatusOK, Detail: "moderação desabilitada"}
	}

	latest, err := deps.CommentRepo.LatestSeenAt()
	if err != nil {
		return healthCheck{Status: healthStatusCrit, Detail: err.Error()}
	}
	if latest == nil {
		return healthCheck{Status: healthStatusWarn, Detail: "nenhum comentário gravado"}
	}

	lag := time.Since(*latest)
	lagSeconds := int64(lag.Seconds())

	status := healthStatusOK
	if lag > commentWarnLag {
		status = healthStatusWarn
	}

	return healthCheck{Status: status, LagSeconds: &lagSeconds}
}

func backlogCheck(deps HealthDependencies) healthCheck {
	backlog, err := deps.CommentActionRepo.CountUnnotified()
	if err != nil {
		return healthCheck{Status: healthStatusCrit, Detail: err.Error()}
	}

	// Backlog não nulo é esperado entre rollups; só vira aviso quando o
	// volume sugere rollup parado.
	status := healthStatusOK
	if backlog > 200 {
		status = healthStatusWarn
	}

	return healthCheck{Status: status, Count: &backlog}
}

func stuckRunsCheck(deps HealthDependencies) healthCheck {
	stuck, err := deps.JobRunRepo.ListStuck(stuckRunAfter)
	if err != nil {
		return healthCheck{Status: healthStatusCrit, Detail: err.Error()}
	}
	if len(stuck) == 0 {
		return healthCheck{Status: healthStatusOK}
	}

	names := make([]string, 0, len(stuck))
	for _, run := range stuck {
		names = append(names, run.JobName)
	}

	return healthCheck{
		Status: healthStatusWarn,
		Detail: "execuções presas em running: " + strings.Join(names, ", "),
	}
}
